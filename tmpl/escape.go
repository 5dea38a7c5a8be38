package tmpl

import (
	"mime"
	"strings"
)

// Policy decides how interpolated values are appended to the output.
type Policy int

const (
	// Verbatim appends the textual conversion of a value unchanged.
	Verbatim Policy = iota

	// Escape neutralizes markup characters before appending.
	Escape
)

// String returns a string representation of the policy.
func (p Policy) String() string {
	switch p {
	case Verbatim:
		return "verbatim"

	case Escape:
		return "escape"

	default:
		return "unknown"
	}
}

// Escaper maps media types to a [Policy].
//
// Rules match, in order of precedence, the exact media type ("text/html"),
// a structured syntax suffix ("+xml"), or a top-level wildcard ("text/*").
// Media types matching no rule are [Verbatim].
type Escaper struct {
	rules map[string]Policy
}

// DefaultEscaper returns an Escaper that escapes the HTML and XML families.
func DefaultEscaper() *Escaper {
	return NewEscaper().
		Register("text/html", Escape).
		Register("application/xhtml+xml", Escape).
		Register("text/xml", Escape).
		Register("application/xml", Escape).
		Register("+xml", Escape)
}

// NewEscaper returns an Escaper without rules.
func NewEscaper() *Escaper {
	return &Escaper{rules: make(map[string]Policy)}
}

// Register adds or replaces the rule for pattern and returns the receiver.
func (e *Escaper) Register(pattern string, p Policy) *Escaper {
	e.rules[strings.ToLower(strings.TrimSpace(pattern))] = p

	return e
}

// Policy returns the policy for a content type such as
// "text/html; charset=utf-8".
func (e *Escaper) Policy(contentType string) Policy {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	if p, ok := e.rules[mediaType]; ok {
		return p
	}

	if i := strings.LastIndexByte(mediaType, '+'); i >= 0 {
		if p, ok := e.rules[mediaType[i:]]; ok {
			return p
		}
	}

	if top, _, ok := strings.Cut(mediaType, "/"); ok {
		if p, ok := e.rules[top+"/*"]; ok {
			return p
		}
	}

	return Verbatim
}
