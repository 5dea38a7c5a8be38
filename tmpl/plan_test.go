package tmpl

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func compile(t *testing.T, name, src string) Plan {
	t.Helper()

	plan, err := Compile(NewSource(name, src))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	return plan
}

func TestFlatten_IfElse(t *testing.T) {
	plan := compile(t, "t.txt",
		"%% if self.x {\nYes: {{ self.n }}\n%% } else {\nNo\n%% }\n")

	want := Plan{
		{Op: OpBegin, Text: "if self.x", Line: 1},
		{Op: OpLiteral, Text: "Yes: ", Line: 2},
		{Op: OpExpr, Text: "self.n", Line: 2},
		{Op: OpLiteral, Text: "\n", Line: 2},
		{Op: OpEnd, Line: 1},
		{Op: OpBegin, Text: "else", Arm: true, Line: 3},
		{Op: OpLiteral, Text: "No", Line: 4},
		{Op: OpLiteral, Text: "\n", Line: 4},
		{Op: OpEnd, Line: 3},
	}

	if !reflect.DeepEqual(plan, want) {
		t.Errorf("plan mismatch\ngot:  %+v\nwant: %+v", plan, want)
	}
}

func TestFlatten_Escape(t *testing.T) {
	tests := []struct {
		name   string
		escape bool
	}{
		{name: "page.html", escape: true},
		{name: "page.xml", escape: true},
		{name: "page.txt", escape: false},
		{name: "page.json", escape: false},
		{name: "page", escape: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := compile(t, tt.name, "{{ a }} and {{ b }}\n")

			for _, in := range plan {
				if in.Op == OpExpr && in.Escape != tt.escape {
					t.Errorf("expr %q escape = %v, want %v", in.Text, in.Escape, tt.escape)
				}
			}
		})
	}
}

// Only the escape flag differs between the same template under two
// content types.
func TestFlatten_EscapeOnlyDifference(t *testing.T) {
	src := "%% for _, x := range self.X {\n<b>{{ x }}</b>\n%% }\n"

	html := compile(t, "list.html", src)
	text := compile(t, "list.txt", src)

	if len(html) != len(text) {
		t.Fatalf("plan lengths differ: %d, %d", len(html), len(text))
	}

	for i := range html {
		h, p := html[i], text[i]
		h.Escape, p.Escape = false, false

		if h != p {
			t.Errorf("instruction %d differs: %+v vs %+v", i, html[i], text[i])
		}
	}
}

func TestFlatten_PureLiteral(t *testing.T) {
	sources := []string{
		"",
		"a",
		"a\n",
		"a\n\n\nb\n",
		"  indented\n\ttabbed\n   \n",
		"braces { and } are text\n",
	}

	for _, src := range sources {
		plan := compile(t, "lit.txt", src)

		var b strings.Builder

		for _, in := range plan {
			if in.Op != OpLiteral {
				t.Fatalf("%q: unexpected %v instruction", src, in.Op)
			}

			b.WriteString(in.Text)
		}

		if b.String() != src {
			t.Errorf("reconstructed %q, want %q", b.String(), src)
		}
	}
}

func TestFlatten_BracketCount(t *testing.T) {
	src := strings.Join([]string{
		"%% switch self.Kind {",
		"%% case 1:",
		"one",
		"%% default:",
		"%% if self.Loud {",
		"LOUD",
		"%% } else if self.Quiet {",
		"quiet",
		"%% }",
		"%% else {",
		"other",
		"%% }",
		"%% }",
	}, "\n")

	lines, err := Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	delims := 0

	for _, l := range lines {
		if l.Kind != LineDirective {
			continue
		}

		d := parseDirective(l.Stmt)
		if d.opens {
			delims++
		}

		if d.closes {
			delims++
		}
	}

	plan := compile(t, "t.txt", src)

	controls := 0

	for _, in := range plan {
		if in.Op == OpBegin || in.Op == OpEnd {
			controls++
		}
	}

	if controls != delims {
		t.Errorf("got %d control instructions, want %d", controls, delims)
	}

	if !plan.Balanced() {
		t.Error("plan is not balanced")
	}

	for begin, end := range plan.Blocks() {
		if end < 0 || plan[begin].Op != OpBegin || plan[end].Op != OpEnd {
			t.Errorf("bad block pair (%d, %d)", begin, end)
		}
	}
}

func TestPlan_Balanced(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want bool
	}{
		{name: "empty", plan: nil, want: true},
		{name: "pair", plan: Plan{{Op: OpBegin}, {Op: OpEnd}}, want: true},
		{name: "open", plan: Plan{{Op: OpBegin}}, want: false},
		{name: "close first", plan: Plan{{Op: OpEnd}, {Op: OpBegin}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.plan.Balanced(); got != tt.want {
				t.Errorf("Balanced() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompile_ErrorPosition(t *testing.T) {
	_, err := Compile(NewSource("views/bad.html", "a\n%% if self.X {\nb\n"))

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want *Error", err)
	}

	want := Position{File: "views/bad.html", Line: 2}
	if e.Position() != want {
		t.Errorf("position = %v, want %v", e.Position(), want)
	}

	if got := e.Error(); got != "views/bad.html:2: unbalanced block" {
		t.Errorf("message = %q", got)
	}
}

func TestOp_Text(t *testing.T) {
	for op := OpLiteral; op <= OpExec; op++ {
		text, err := op.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", op, err)
		}

		var got Op
		if err := got.UnmarshalText(text); err != nil || got != op {
			t.Errorf("round trip %q = %v, %v", text, got, err)
		}
	}

	var op Op
	if err := op.UnmarshalText([]byte("jump")); err == nil {
		t.Error("expected error for unknown op")
	}
}
