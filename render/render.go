// Package render is the runtime imported by code that boil generates.
//
// Generated AppendTemplate methods call [AppendValue] or [AppendEscaped] for
// every interpolated expression, depending on the template's content type.
package render

import (
	"fmt"
	"html"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// Template is implemented by every generated context type.
type Template interface {
	AppendTemplate(b []byte) []byte
	ContentType() string
}

// Trusted is text appended without escaping.
type Trusted string

// AppendValue appends the textual conversion of v to b, as formatted by
// the %v verb. A nested [Template] appends its rendering.
func AppendValue(b []byte, v any) []byte {
	switch v := v.(type) {
	case string:
		return append(b, v...)

	case []byte:
		return append(b, v...)

	case Trusted:
		return append(b, v...)

	case safehtml.HTML:
		return append(b, v.String()...)

	case Template:
		return v.AppendTemplate(b)

	case bool:
		return strconv.AppendBool(b, v)

	case int:
		return strconv.AppendInt(b, int64(v), 10)

	case int64:
		return strconv.AppendInt(b, v, 10)

	case int32:
		return strconv.AppendInt(b, int64(v), 10)

	case uint:
		return strconv.AppendUint(b, uint64(v), 10)

	case uint64:
		return strconv.AppendUint(b, v, 10)

	case float64:
		return strconv.AppendFloat(b, v, 'g', -1, 64)

	case float32:
		return strconv.AppendFloat(b, float64(v), 'g', -1, 32)

	default:
		return fmt.Appendf(b, "%v", v)
	}
}

// AppendEscaped appends the textual conversion of v to b with the markup
// characters < > & ' and " replaced by entities. All other bytes, including
// control characters and invalid UTF-8, are appended as [AppendValue] would.
//
// [Trusted] and [safehtml.HTML] values are appended as is, as is a nested
// [Template] whose own content type is markup.
func AppendEscaped(b []byte, v any) []byte {
	switch v := v.(type) {
	case Trusted:
		return append(b, v...)

	case safehtml.HTML:
		return append(b, v.String()...)

	case Template:
		if IsMarkup(v.ContentType()) {
			return v.AppendTemplate(b)
		}
	}

	return append(b, html.EscapeString(string(AppendValue(nil, v)))...)
}

// IsMarkup reports whether contentType names HTML or an XML dialect.
func IsMarkup(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	switch mediaType {
	case "text/html", "application/xhtml+xml", "text/xml", "application/xml":
		return true
	}

	return strings.HasSuffix(mediaType, "+xml")
}

// String renders t.
func String(t Template) string { return string(t.AppendTemplate(nil)) }

// Write renders t to w with its Content-Type header.
func Write(w http.ResponseWriter, t Template) error {
	body := t.AppendTemplate(nil)

	w.Header().Set("Content-Type", t.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))

	_, err := w.Write(body)

	return err
}

// Handler returns an http.Handler that serves t.
func Handler(t Template) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = Write(w, t)
	})
}
