package reload

import (
	"go/token"
	"strings"
)

// scanTop calls fn with the index of every byte of s that lies outside
// brackets and literals, stopping at the first index fn accepts.
// It returns -1 when fn accepts none.
func scanTop(s string, fn func(i int) bool) int {
	var (
		depth int
		quote byte
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case c == '\\' && quote != '`':
				i++

			case c == quote:
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c

			continue

		case '(', '[', '{':
			depth++

			continue

		case ')', ']', '}':
			depth--

			continue
		}

		if depth == 0 && fn(i) {
			return i
		}
	}

	return -1
}

// indexTop returns the index of the first top-level occurrence of sub in s.
func indexTop(s, sub string) int {
	return scanTop(s, func(i int) bool { return strings.HasPrefix(s[i:], sub) })
}

// splitTop splits s around every top-level sep and trims each part.
func splitTop(s string, sep byte) []string {
	var parts []string

	for {
		i := scanTop(s, func(i int) bool { return s[i] == sep })
		if i < 0 {
			return append(parts, strings.TrimSpace(s))
		}

		parts = append(parts, strings.TrimSpace(s[:i]))
		s = s[i+1:]
	}
}

// assignment is a parsed simple statement of the form "lhs op rhs".
type assignment struct {
	lhs    []string
	rhs    []string
	op     string // operator of a compound assignment
	define bool
}

// assignOps are the operators of Go compound assignments, longest first.
//
//nolint:gochecknoglobals
var assignOps = []string{"<<", ">>", "&^", "+", "-", "*", "/", "%", "&", "|", "^"}

// parseAssign recognizes short variable declarations, plain and compound
// assignments, and increment/decrement statements.
func parseAssign(s string) (assignment, bool) {
	s = strings.TrimSpace(s)

	for _, suffix := range []string{"++", "--"} {
		if name, ok := strings.CutSuffix(s, suffix); ok {
			return assignment{
				lhs: []string{strings.TrimSpace(name)},
				rhs: []string{"1"},
				op:  suffix[:1],
			}, true
		}
	}

	if i := indexTop(s, ":="); i >= 0 {
		return assignment{
			lhs:    splitTop(s[:i], ','),
			rhs:    splitTop(s[i+2:], ','),
			define: true,
		}, true
	}

	i := scanTop(s, func(i int) bool {
		if s[i] != '=' || strings.HasPrefix(s[i+1:], "=") {
			return false
		}

		if i == 0 {
			return true
		}

		switch s[i-1] {
		case '=', '!':
			return false

		case '<', '>':
			return i >= 2 && s[i-2] == s[i-1] // <<= and >>=
		}

		return true
	})
	if i <= 0 {
		return assignment{}, false
	}

	a := assignment{rhs: splitTop(s[i+1:], ',')}

	for _, op := range assignOps {
		if strings.HasSuffix(s[:i], op) {
			a.op = op
			i -= len(op)

			break
		}
	}

	a.lhs = splitTop(s[:i], ',')

	return a, true
}

// identifiers reports whether every name is an identifier or the blank
// identifier.
func identifiers(names []string) bool {
	for _, n := range names {
		if !token.IsIdentifier(n) && n != "_" {
			return false
		}
	}

	return len(names) > 0
}

// keyword splits the leading word from the rest of a control head.
func keyword(head string) (string, string) {
	kw, rest, _ := strings.Cut(strings.TrimSpace(head), " ")

	return kw, strings.TrimSpace(rest)
}
