package cmd

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/boil/log"
	"github.com/ardnew/boil/pkg"
	"github.com/ardnew/boil/store"
	"github.com/ardnew/boil/tmpl"
)

// Gen generates AppendTemplate, String and ContentType methods for context
// types from their templates.
type Gen struct {
	Types    []string `help:"Context types, each TYPE or TYPE:SUFFIX."                  name:"type"       required:"" sep:","   short:"t"`
	Dir      string   `default:"templates" help:"Template directory."                                                           short:"d"`
	Suffix   string   `help:"Template suffix for types that do not declare one."`
	Package  string   `env:"GOPACKAGE"      help:"Package of the generated file (default: output directory name)." short:"p"`
	Output   string   `default:"boil_gen.go" help:"Generated file, or '-' for stdout."                                       short:"o"`
	Receiver string   `default:"self"       help:"Receiver name of the generated methods."`
	Pointer  bool     `help:"Declare methods on pointer receivers."`
	Imports  bool     `default:"true"       help:"Fix imports with goimports."                       negatable:""`
	Line     bool     `default:"true"       help:"Emit //line directives."                           negatable:""`
	Force    bool     `help:"Regenerate even when the templates are unchanged."                                             short:"f"`
	Manifest string   `default:"${manifest}" help:"Manifest of generated files (empty disables it)."`
}

// target is a parsed --type value.
type target struct {
	typ, suffix string
}

func parseTargets(values []string, suffix string) ([]target, error) {
	targets := make([]target, 0, len(values))

	for _, v := range values {
		typ, sfx, ok := strings.Cut(strings.TrimSpace(v), ":")
		if !ok {
			sfx = suffix
		}

		if !token.IsIdentifier(typ) || (ok && sfx == "") {
			return nil, ErrInvalidTarget.With(slog.String("type", v)).
				Wrap(fmt.Errorf("%q", v))
		}

		targets = append(targets, target{typ: typ, suffix: sfx})
	}

	return targets, nil
}

// packageName derives a package identifier from the output directory.
func packageName(output string) string {
	abs, err := filepath.Abs(output)
	if err != nil {
		return "main"
	}

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}

		return -1
	}, filepath.Base(filepath.Dir(abs)))

	if !token.IsIdentifier(name) {
		return "main"
	}

	return name
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	targets, err := parseTargets(g.Types, g.Suffix)
	if err != nil {
		return err
	}

	pkgName := g.Package
	if pkgName == "" {
		pkgName = packageName(g.Output)
	}

	opts := []tmpl.Option{
		tmpl.WithLogger(log.Default()),
		tmpl.WithReceiver(g.Receiver),
		tmpl.WithPointer(g.Pointer),
		tmpl.WithImports(g.Imports),
		tmpl.WithLineDirectives(g.Line),
		tmpl.WithOutputPath(g.Output),
	}

	sources, err := g.load(ctx, targets, opts)
	if err != nil {
		return err
	}

	digest := g.digest(pkgName, sources)

	manifest, err := g.openManifest(ctx)
	if err != nil {
		return err
	}

	if manifest != nil {
		defer manifest.Close()

		if g.fresh(ctx, manifest, digest) {
			log.InfoContext(ctx, "generated file is up to date",
				slog.String("output", g.Output))

			return nil
		}
	}

	code, err := tmpl.Generate(pkgName, sources, opts...)
	if err != nil {
		return err
	}

	if err := writeOutput(ctx, g.Output, code); err != nil {
		return err
	}

	log.InfoContext(ctx, "generated",
		slog.String("output", g.Output),
		slog.String("package", pkgName),
		slog.Int("types", len(sources)))

	if manifest == nil || g.Output == stdio {
		return nil
	}

	return manifest.Record(ctx, store.Entry{
		Path:      g.outputKey(),
		Digest:    digest,
		Templates: len(sources),
	})
}

// load reads every target's template. Source paths are made relative to
// the output file so that //line directives resolve from its directory.
func (g *Gen) load(ctx context.Context, targets []target, opts []tmpl.Option) ([]tmpl.Target, error) {
	dir, err := filepath.Abs(g.Dir)
	if err != nil {
		return nil, ErrReadInput.With(slog.String("dir", g.Dir)).Wrap(err)
	}

	outDir := "."
	if g.Output != stdio {
		if outDir, err = filepath.Abs(filepath.Dir(g.Output)); err != nil {
			return nil, ErrReadInput.Wrap(err)
		}
	} else if outDir, err = os.Getwd(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	fsys := os.DirFS(dir)
	sources := make([]tmpl.Target, 0, len(targets))

	for _, t := range targets {
		src, err := tmpl.Load(ctx, fsys, ".", t.typ, t.suffix, opts...)
		if err != nil {
			var e *tmpl.Error
			if errors.As(err, &e) {
				return nil, e.InFile(filepath.Join(g.Dir, e.Position().File))
			}

			return nil, err
		}

		if rel, err := filepath.Rel(outDir, filepath.Join(dir, src.Path)); err == nil {
			src.Path = filepath.ToSlash(rel)
		}

		sources = append(sources, tmpl.Target{Type: t.typ, Source: src})
	}

	return sources, nil
}

// digest hashes everything that affects the generated file.
func (g *Gen) digest(pkgName string, sources []tmpl.Target) string {
	parts := []string{
		pkg.Version, pkgName, g.Receiver,
		strconv.FormatBool(g.Pointer),
		strconv.FormatBool(g.Imports),
		strconv.FormatBool(g.Line),
	}

	for _, t := range sources {
		parts = append(parts, t.Type, t.Source.Path, t.Source.ContentType, t.Source.Text)
	}

	return store.Digest(parts...)
}

func (g *Gen) openManifest(ctx context.Context) (*store.Manifest, error) {
	if g.Manifest == "" || g.Output == stdio {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(g.Manifest), 0o700); err != nil {
		return nil, ErrManifest.With(slog.String("file", g.Manifest)).Wrap(err)
	}

	m, err := store.Open(ctx, g.Manifest, log.Default())
	if err != nil {
		return nil, ErrManifest.With(slog.String("file", g.Manifest)).Wrap(err)
	}

	return m, nil
}

// fresh reports whether the output exists and was generated from the same
// inputs.
func (g *Gen) fresh(ctx context.Context, m *store.Manifest, digest string) bool {
	if g.Force {
		return false
	}

	if _, err := os.Stat(g.Output); errors.Is(err, fs.ErrNotExist) {
		return false
	}

	ok, err := m.Fresh(ctx, g.outputKey(), digest)
	if err != nil {
		log.WarnContext(ctx, "manifest lookup failed", slog.Any("error", err))

		return false
	}

	return ok
}

// outputKey identifies the output in the manifest.
func (g *Gen) outputKey() string {
	abs, err := filepath.Abs(g.Output)
	if err != nil {
		return g.Output
	}

	return abs
}
