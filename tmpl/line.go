package tmpl

import (
	"strings"
)

// Template language delimiters.
const (
	DirectiveMarker     = "%%"
	InterpolationMarker = "$$"
	OpenDelim           = "{{"
	CloseDelim          = "}}"
)

// LineKind classifies a physical template line.
type LineKind int

const (
	// LineText is literal output with zero or more embedded expression spans.
	LineText LineKind = iota

	// LineDirective is a line of control flow, introduced by
	// [DirectiveMarker].
	LineDirective

	// LineBlank is an empty line.
	LineBlank
)

// String returns a string representation of the line kind.
func (k LineKind) String() string {
	switch k {
	case LineText:
		return "text"

	case LineDirective:
		return "directive"

	case LineBlank:
		return "blank"

	default:
		return "unknown"
	}
}

// Span is an expression embedded in a Text line.
//
// Start and End are byte offsets into [Line.Text] covering the delimiters.
// Expr is the opaque text between the delimiters.
type Span struct {
	Start int
	End   int
	Expr  string
}

// Line is one classified physical line of template source.
type Line struct {
	Number  int      // 1-based
	Kind    LineKind //
	Text    string   // raw text without the line terminator
	Stmt    string   // directive statement text (LineDirective only)
	Spans   []Span   // expression spans in source order (LineText only)
	Newline bool     // line was terminated by '\n' in the source
}

// Runs returns the literal text surrounding the line's expression spans.
// The result always has len(l.Spans)+1 elements; runs may be empty.
func (l Line) Runs() []string {
	runs := make([]string, 0, len(l.Spans)+1)
	prev := 0

	for _, span := range l.Spans {
		runs = append(runs, l.Text[prev:span.Start])
		prev = span.End
	}

	return append(runs, l.Text[prev:])
}

// Tokenize splits src into classified lines.
//
// A trailing line terminator does not start a new line, so "a\n" yields one
// line and "" yields none.
func Tokenize(src string) ([]Line, error) {
	var lines []Line

	for number := 1; src != ""; number++ {
		text, rest, newline := strings.Cut(src, "\n")
		src = rest

		line, err := classify(number, text)
		if err != nil {
			return nil, err
		}

		line.Newline = newline
		lines = append(lines, line)
	}

	return lines, nil
}

// classify builds the Line for a single physical line of text.
func classify(number int, text string) (Line, error) {
	line := Line{Number: number, Text: text}

	trimmed := strings.TrimSpace(text)

	switch {
	case text == "":
		line.Kind = LineBlank

	case strings.HasPrefix(trimmed, DirectiveMarker):
		line.Kind = LineDirective
		line.Stmt = strings.TrimSpace(trimmed[len(DirectiveMarker):])

	case strings.HasPrefix(trimmed, InterpolationMarker):
		// The whole remainder is one expression; indentation stays literal.
		start := strings.Index(text, InterpolationMarker)
		line.Kind = LineText
		line.Spans = []Span{{
			Start: start,
			End:   len(text),
			Expr:  text[start+len(InterpolationMarker):],
		}}

	default:
		spans, err := scanSpans(text)
		if err != nil {
			return Line{}, err.AtLine(number)
		}

		line.Kind = LineText
		line.Spans = spans
	}

	return line, nil
}

// scanSpans finds the expression spans of a Text line from left to right.
func scanSpans(text string) ([]Span, *Error) {
	var spans []Span

	for pos := 0; ; {
		open := strings.Index(text[pos:], OpenDelim)
		if open < 0 {
			return spans, nil
		}

		open += pos
		after := open + len(OpenDelim)

		end := strings.Index(text[after:], CloseDelim)
		if end < 0 {
			return nil, ErrUnterminated
		}

		end += after

		spans = append(spans, Span{
			Start: open,
			End:   end + len(CloseDelim),
			Expr:  text[after:end],
		})

		pos = end + len(CloseDelim)
	}
}
