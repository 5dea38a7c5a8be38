package tmpl

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzCompile checks that compilation never panics and that every plan it
// returns is well formed.
func FuzzCompile(f *testing.F) {
	f.Add("plain text\n")
	f.Add("{{ x }} and {{ y }}\n")
	f.Add("%% if x {\na\n%% } else {\nb\n%% }\n")
	f.Add("%% if x {\n%% }\n%% else {\n%% }\n")
	f.Add("%% }\n")
	f.Add("{{ unterminated\n")
	f.Add("  $$ self.Body\n\n\n")
	f.Add("%% for {\n%% switch {\n%% case 1:\n%% }\n%% }")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		plan, err := Compile(NewSource("fuzz.html", input))
		if err != nil {
			return
		}

		if !plan.Balanced() {
			t.Fatalf("unbalanced plan for %q", input)
		}

		for begin, end := range plan.Blocks() {
			if end <= begin {
				t.Fatalf("block %d closes at %d for %q", begin, end, input)
			}
		}

		if strings.Contains(input, DirectiveMarker) ||
			strings.Contains(input, InterpolationMarker) ||
			strings.Contains(input, OpenDelim) {
			return
		}

		var b strings.Builder
		for _, in := range plan {
			b.WriteString(in.Text)
		}

		if b.String() != input {
			t.Fatalf("literal template changed: %q became %q", input, b.String())
		}
	})
}
