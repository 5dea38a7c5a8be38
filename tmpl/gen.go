package tmpl

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

const (
	// DefaultReceiver is the receiver name bound in generated methods.
	DefaultReceiver = "self"

	// RuntimePackage is imported by generated code that appends expressions.
	RuntimePackage = "github.com/ardnew/boil/render"

	// GeneratedHeader marks generated files per the Go convention.
	GeneratedHeader = "// Code generated by boil; DO NOT EDIT."
)

// Target pairs a context type with the template rendered by its methods.
type Target struct {
	Type   string
	Source Source
}

// Generate compiles every target and returns one Go source file in package
// pkg declaring AppendTemplate, String and ContentType methods on each
// target type.
//
// Expression fragments are copied into the output unmodified. When they do
// not parse, formatting is skipped and the unformatted source is returned so
// the Go compiler reports the error at the template line.
func Generate(pkg string, targets []Target, opts ...Option) ([]byte, error) {
	o := makeOptions(opts...)

	if !token.IsIdentifier(pkg) {
		return nil, ErrInvalidName.Wrap(fmt.Errorf("package %q", pkg))
	}

	if !token.IsIdentifier(o.receiver) {
		return nil, ErrInvalidName.Wrap(fmt.Errorf("receiver %q", o.receiver))
	}

	g := &generator{options: o}
	seen := make(map[string]bool, len(targets))

	for _, t := range targets {
		if !token.IsIdentifier(t.Type) || seen[t.Type] {
			return nil, ErrInvalidName.InFile(t.Source.Path).
				Wrap(fmt.Errorf("type %q", t.Type))
		}

		seen[t.Type] = true

		plan, err := Compile(t.Source, opts...)
		if err != nil {
			return nil, err
		}

		g.methods(t, plan)
	}

	return g.format(g.file(pkg)), nil
}

type generator struct {
	options

	body    bytes.Buffer
	runtime bool // body references RuntimePackage
}

func (g *generator) file(pkg string) []byte {
	var buf bytes.Buffer

	buf.WriteString(GeneratedHeader + "\n\npackage " + pkg + "\n")

	if g.runtime {
		fmt.Fprintf(&buf, "\nimport %q\n", RuntimePackage)
	}

	buf.Write(g.body.Bytes())

	return buf.Bytes()
}

func (g *generator) format(src []byte) []byte {
	var (
		out []byte
		err error
	)

	if g.imports {
		out, err = imports.Process(g.output, src, &imports.Options{
			Comments:  true,
			TabIndent: true,
			TabWidth:  8,
		})
	} else {
		out, err = format.Source(src)
	}

	if err != nil {
		g.logger.Warn("generated code left unformatted",
			slog.String("output", g.output),
			slog.String("error", err.Error()))

		return src
	}

	return out
}

func (g *generator) methods(t Target, plan Plan) {
	recv := g.receiver + " " + t.Type
	if g.pointer {
		recv = g.receiver + " *" + t.Type
	}

	fmt.Fprintf(&g.body,
		"\n// AppendTemplate appends the rendered %s template to b.\n"+
			"func (%s) AppendTemplate(b []byte) []byte {\n",
		path.Base(filepath.ToSlash(t.Source.Path)), recv)

	g.plan(filepath.ToSlash(t.Source.Path), plan)

	fmt.Fprintf(&g.body, "\treturn b\n}\n"+
		"\n// String returns the rendered template.\n"+
		"func (%s) String() string {\n\treturn string(%s.AppendTemplate(nil))\n}\n"+
		"\n// ContentType returns the media type of the rendered template.\n"+
		"func (%s) ContentType() string {\n\treturn %s\n}\n",
		recv, g.receiver, recv, strconv.Quote(t.Source.ContentType))

	g.logger.Debug("methods generated",
		slog.String("type", t.Type),
		slog.String("path", t.Source.Path),
		slog.Int("instructions", len(plan)))
}

// plan serializes one Render Plan into the body of AppendTemplate.
func (g *generator) plan(file string, plan Plan) {
	depth := 1

	for i := 0; i < len(plan); i++ {
		in := plan[i]

		switch in.Op {
		case OpLiteral:
			var text strings.Builder

			text.WriteString(in.Text)

			for i+1 < len(plan) && plan[i+1].Op == OpLiteral {
				i++
				text.WriteString(plan[i].Text)
			}

			g.line(file, in.Line)
			g.stmt(depth, "b = append(b, "+strconv.Quote(text.String())+"...)")

		case OpExpr:
			fn := "AppendValue"
			if in.Escape {
				fn = "AppendEscaped"
			}

			g.runtime = true
			g.line(file, in.Line)
			g.stmt(depth, "b = render."+fn+"(b, "+in.Text+")")

		case OpExec:
			g.line(file, in.Line)
			g.stmt(depth, in.Text)

		case OpBegin:
			g.line(file, in.Line)
			g.stmt(depth, in.Text+" {")
			depth++

		case OpEnd:
			depth--

			if i+1 < len(plan) && plan[i+1].Op == OpBegin && plan[i+1].Arm {
				i++
				g.line(file, plan[i].Line)
				g.stmt(depth, "} "+plan[i].Text+" {")
				depth++

				continue
			}

			g.stmt(depth, "}"+in.Text)
		}
	}
}

// line emits a //line directive for the statement that follows. Every
// statement gets its own directive since the compiler advances the mapped
// line with each physical line after one.
func (g *generator) line(file string, line int) {
	if !g.lineDirective || file == "" {
		return
	}

	g.body.WriteString("//line " + Position{File: file, Line: line}.String() + "\n")
}

func (g *generator) stmt(depth int, s string) {
	g.body.WriteString(strings.Repeat("\t", depth) + s + "\n")
}
