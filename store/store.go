// Package store keeps a manifest of generated files so that unchanged
// templates are not regenerated.
//
// Each generated output is recorded with a digest of everything that went
// into it: template paths and text, content types and generator options.
// The manifest is a SQLite database. The default build uses the pure-Go
// driver; build with the cgo_sqlite tag to use the cgo driver instead.
package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/boil/log"
	"github.com/ardnew/boil/tmpl"
)

// DefaultFile is the manifest file name used when none is configured.
const DefaultFile = ".boil.db"

// ErrManifest reports a failure to read or write the manifest.
var ErrManifest = tmpl.NewError("manifest error")

const schema = `
CREATE TABLE IF NOT EXISTS outputs (
	path      TEXT PRIMARY KEY,
	digest    TEXT NOT NULL,
	templates INTEGER NOT NULL,
	generated INTEGER NOT NULL
);`

// Entry describes one generated file.
type Entry struct {
	Path      string
	Digest    string
	Templates int
	Generated time.Time
}

// Manifest is an open manifest database.
type Manifest struct {
	db     *sql.DB
	logger log.Logger
}

// Open opens or creates the manifest at path.
func Open(ctx context.Context, path string, logger log.Logger) (*Manifest, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, ErrManifest.InFile(path).Wrap(err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()

		return nil, ErrManifest.InFile(path).Wrap(err)
	}

	logger.DebugContext(ctx, "manifest opened", slog.String("path", path))

	return &Manifest{db: db, logger: logger}, nil
}

// Close releases the database.
func (m *Manifest) Close() error { return m.db.Close() }

// Lookup returns the entry recorded for the output path. The boolean is
// false when the path was never recorded.
func (m *Manifest) Lookup(ctx context.Context, path string) (Entry, bool, error) {
	var (
		e    = Entry{Path: path}
		unix int64
	)

	err := m.db.QueryRowContext(ctx,
		`SELECT digest, templates, generated FROM outputs WHERE path = ?`, path).
		Scan(&e.Digest, &e.Templates, &unix)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Entry{}, false, nil

	case err != nil:
		return Entry{}, false, ErrManifest.Wrap(err).With(slog.String("output", path))
	}

	e.Generated = time.Unix(0, unix).UTC()

	return e, true, nil
}

// Record inserts or replaces the entry for e.Path.
func (m *Manifest) Record(ctx context.Context, e Entry) error {
	if e.Generated.IsZero() {
		e.Generated = time.Now()
	}

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO outputs (path, digest, templates, generated) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   digest = excluded.digest,
		   templates = excluded.templates,
		   generated = excluded.generated`,
		e.Path, e.Digest, e.Templates, e.Generated.UnixNano())
	if err != nil {
		return ErrManifest.Wrap(err).With(slog.String("output", e.Path))
	}

	m.logger.TraceContext(ctx, "manifest recorded",
		slog.String("output", e.Path),
		slog.String("digest", e.Digest))

	return nil
}

// Fresh reports whether path was last generated from inputs with digest.
func (m *Manifest) Fresh(ctx context.Context, path, digest string) (bool, error) {
	e, ok, err := m.Lookup(ctx, path)
	if err != nil || !ok {
		return false, err
	}

	return e.Digest == digest, nil
}

// Digest hashes parts into a hex string. Each part is length-prefixed so
// that moving bytes between adjacent parts changes the digest.
func Digest(parts ...string) string {
	h := xxh3.New()

	var n [20]byte

	for _, p := range parts {
		_, _ = h.Write(strconv.AppendInt(n[:0], int64(len(p)), 10))
		_, _ = h.WriteString(":")
		_, _ = h.WriteString(p)
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
