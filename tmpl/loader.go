package tmpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"unicode"

	"github.com/klauspost/readahead"
	"github.com/sahilm/fuzzy"
)

// maxSuggestions limits the alternatives offered for a missing template.
const maxSuggestions = 3

// FileName returns the template file name for the context type name.
//
// Without a suffix, the last word of the camel-cased name is the file
// extension: "QuickStartTxt" is "quick-start.txt" and "ABCHtml" is
// "a-b-c.html". A single word has no extension. With a suffix, every word is
// part of the base name: ("Page", "html") is "page.html".
func FileName(name, suffix string) string {
	words := splitWords(name)
	suffix = strings.TrimPrefix(suffix, ".")

	if suffix == "" && len(words) > 1 {
		suffix = words[len(words)-1]
		words = words[:len(words)-1]
	}

	base := strings.Join(words, "-")
	if suffix == "" {
		return base
	}

	return base + "." + suffix
}

// splitWords breaks an identifier before each upper-case letter and at every
// character that is neither a letter nor a digit. Words are lower-cased.
func splitWords(name string) []string {
	var (
		words []string
		word  strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			flush()
			word.WriteRune(unicode.ToLower(r))

		case unicode.IsLetter(r), unicode.IsDigit(r):
			word.WriteRune(r)

		default:
			flush()
		}
	}

	flush()

	return words
}

// Load reads the template for the context type name from dir in fsys.
// See [FileName] for how name and suffix select the file.
//
// A missing template fails with [ErrNotFound], naming the closest matches
// found in dir.
func Load(
	ctx context.Context,
	fsys fs.FS,
	dir, name, suffix string,
	opts ...Option,
) (Source, error) {
	o := makeOptions(opts...)

	file := path.Join(dir, FileName(name, suffix))

	f, err := fsys.Open(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Source{}, ErrReadTemplate.InFile(file).Wrap(err)
		}

		e := ErrNotFound.InFile(file).With(slog.String("context", name))
		if alt := suggest(fsys, dir, path.Base(file)); len(alt) > 0 {
			e = e.Wrap(fmt.Errorf("did you mean %s?", strings.Join(alt, ", ")))
		}

		return Source{}, e
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return Source{}, ErrReadTemplate.InFile(file).Wrap(err)
	}

	src := NewSource(file, string(data))

	o.logger.TraceContext(ctx, "template loaded",
		slog.String("context", name),
		slog.String("path", file),
		slog.String("content_type", src.ContentType),
		slog.Int("bytes", len(data)))

	return src, nil
}

// suggest returns the regular files in dir whose names best match file.
func suggest(fsys fs.FS, dir, file string) []string {
	if dir == "" {
		dir = "."
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	stem := strings.TrimSuffix(file, path.Ext(file))

	matches := fuzzy.Find(file, names)
	if len(matches) == 0 && stem != "" {
		matches = fuzzy.Find(stem, names)
	}

	alt := make([]string, 0, maxSuggestions)

	for _, m := range matches {
		if len(alt) == maxSuggestions {
			break
		}

		alt = append(alt, m.Str)
	}

	return alt
}
