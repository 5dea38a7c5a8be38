package tmpl

import (
	"mime"
	"path"
	"strings"
)

// DefaultContentType is used when a template's suffix cannot be resolved.
const DefaultContentType = "text/plain; charset=utf-8"

// Source is the text of one template and its resolved content type.
type Source struct {
	Path        string
	Text        string
	ContentType string
}

// NewSource returns a Source whose content type is resolved from the suffix
// of name. An empty name yields [DefaultContentType].
func NewSource(name, text string) Source {
	return Source{
		Path:        name,
		Text:        text,
		ContentType: ResolveContentType(name),
	}
}

// contentTypes resolves common template suffixes without consulting the
// platform MIME tables, so results do not vary between machines.
var contentTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".xhtml": "application/xhtml+xml",
	".xml":   "text/xml",
	".svg":   "image/svg+xml",
	".txt":   "text/plain",
	".text":  "text/plain",
	".md":    "text/markdown",
	".csv":   "text/csv",
	".css":   "text/css",
	".js":    "text/javascript",
	".json":  "application/json",
	".yaml":  "application/yaml",
	".yml":   "application/yaml",
	".toml":  "application/toml",
	".go":    "text/x-go",
	".sh":    "text/x-shellscript",
}

// ResolveContentType maps the suffix of a file name to a media type.
// Textual types without an explicit charset get "; charset=utf-8".
func ResolveContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return DefaultContentType
	}

	ct, ok := contentTypes[ext]
	if !ok {
		ct = mime.TypeByExtension(ext)
	}

	if ct == "" {
		return DefaultContentType
	}

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return DefaultContentType
	}

	if strings.HasPrefix(mediaType, "text/") && params["charset"] == "" {
		if params == nil {
			params = map[string]string{}
		}

		params["charset"] = "utf-8"
	}

	return mime.FormatMediaType(mediaType, params)
}
