package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/boil/tmpl"
)

func TestParseTargets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []string
		suffix  string
		want    []target
		wantErr bool
	}{
		{
			name:   "type_only",
			values: []string{"Greeting"},
			want:   []target{{typ: "Greeting"}},
		},
		{
			name:   "default_suffix",
			values: []string{"Greeting", "Page:html"},
			suffix: "txt",
			want:   []target{{typ: "Greeting", suffix: "txt"}, {typ: "Page", suffix: "html"}},
		},
		{
			name:   "whitespace",
			values: []string{" Page:html "},
			want:   []target{{typ: "Page", suffix: "html"}},
		},
		{
			name:    "empty_suffix",
			values:  []string{"Page:"},
			wantErr: true,
		},
		{
			name:    "not_identifier",
			values:  []string{"my-page:html"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseTargets(tt.values, tt.suffix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTargets() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTarget) {
					t.Errorf("parseTargets() error = %v, want ErrInvalidTarget", err)
				}

				return
			}

			if len(got) != len(tt.want) {
				t.Fatalf("parseTargets() = %v, want %v", got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseTargets()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPackageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		output string
		want   string
	}{
		{output: "views/boil_gen.go", want: "views"},
		{output: "My-Views/boil_gen.go", want: "myviews"},
		{output: "9lives/boil_gen.go", want: "main"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			t.Parallel()

			if got := packageName(tt.output); got != tt.want {
				t.Errorf("packageName(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := WithStdout(context.Background(), &buf)

	if err := writeOutput(ctx, stdio, []byte("hello")); err != nil {
		t.Fatalf("writeOutput(stdout) error = %v", err)
	}

	if buf.String() != "hello" {
		t.Errorf("stdout = %q, want %q", buf.String(), "hello")
	}

	path := filepath.Join(t.TempDir(), "out.txt")

	if err := writeOutput(ctx, path, []byte("file")); err != nil {
		t.Fatalf("writeOutput(file) error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != "file" {
		t.Errorf("file = %q, want %q", got, "file")
	}

	err = writeOutput(ctx, filepath.Join(t.TempDir(), "missing", "out.txt"), nil)
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("writeOutput(missing dir) error = %v, want ErrWriteOutput", err)
	}
}

func writeFile(t *testing.T, path, text string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGen_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "greeting.txt"),
		"%% if self.Formal {\nGood day, {{ self.Name }}.\n%% } else {\nHi {{ self.Name }}!\n%% }\n")

	output := filepath.Join(dir, "boil_gen.go")

	gen := Gen{
		Types:    []string{"Greeting:txt"},
		Dir:      filepath.Join(dir, "templates"),
		Package:  "views",
		Output:   output,
		Receiver: "self",
		Line:     true,
		Manifest: filepath.Join(dir, "cache", "manifest.db"),
	}

	ctx := context.Background()

	if err := gen.Run(ctx); err != nil {
		t.Fatalf("Gen.Run() error = %v", err)
	}

	code, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		tmpl.GeneratedHeader,
		"package views",
		"func (self Greeting) AppendTemplate(b []byte) []byte {",
		"//line templates/greeting.txt:2",
	} {
		if !strings.Contains(string(code), want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}

	// An unchanged template leaves the output alone.
	writeFile(t, output, "stale")

	if err := gen.Run(ctx); err != nil {
		t.Fatalf("Gen.Run() second error = %v", err)
	}

	if got, _ := os.ReadFile(output); string(got) != "stale" {
		t.Errorf("Gen.Run() rewrote an up-to-date output")
	}

	gen.Force = true

	if err := gen.Run(ctx); err != nil {
		t.Fatalf("Gen.Run() forced error = %v", err)
	}

	if got, _ := os.ReadFile(output); string(got) != string(code) {
		t.Errorf("Gen.Run(--force) = %q, want regenerated code", got)
	}
}

func TestGen_RunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		types    []string
		want     error
	}{
		{
			name:     "unbalanced",
			template: "%% if self.Formal {\nhi\n",
			types:    []string{"Greeting:txt"},
			want:     tmpl.ErrUnbalanced,
		},
		{
			name:     "missing_template",
			template: "hi\n",
			types:    []string{"Farewell:txt"},
			want:     tmpl.ErrNotFound,
		},
		{
			name:  "invalid_target",
			types: []string{"-"},
			want:  ErrInvalidTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "templates", "greeting.txt"), tt.template)

			gen := Gen{
				Types:    tt.types,
				Dir:      filepath.Join(dir, "templates"),
				Package:  "views",
				Output:   filepath.Join(dir, "boil_gen.go"),
				Receiver: "self",
			}

			err := gen.Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Gen.Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRender_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	data := filepath.Join(dir, "data.yaml")

	writeFile(t, page, "<h1>{{ self.title }}</h1>\n%% for _, x := range self.items {\n<p>{{ x }}</p>\n%% }\n")
	writeFile(t, data, "title: A & B\nitems: [one, two]\n")

	tests := []struct {
		name   string
		render Render
		want   string
	}{
		{
			name:   "data_file",
			render: Render{Template: page, Data: data, Receiver: "self", Output: stdio},
			want:   "<h1>A &amp; B</h1>\n<p>one</p>\n<p>two</p>\n",
		},
		{
			name: "set_overrides",
			render: Render{
				Template: page, Data: data, Receiver: "self", Output: stdio,
				Set: map[string]string{"title": "<b>"},
			},
			want: "<h1>&lt;b&gt;</h1>\n<p>one</p>\n<p>two</p>\n",
		},
		{
			name: "plain_type",
			render: Render{
				Template: page, Data: data, Receiver: "self", Output: stdio,
				Type: "text/plain",
			},
			want: "<h1>A & B</h1>\n<p>one</p>\n<p>two</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			if err := tt.render.Run(WithStdout(context.Background(), &buf)); err != nil {
				t.Fatalf("Render.Run() error = %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Render.Run() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRender_RunBadData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "page.txt")
	data := filepath.Join(dir, "data.yaml")

	writeFile(t, page, "{{ self.x }}\n")
	writeFile(t, data, "x: [unterminated\n")

	r := Render{Template: page, Data: data, Receiver: "self", Output: stdio}

	err := r.Run(WithStdout(context.Background(), &bytes.Buffer{}))
	if !errors.Is(err, ErrDecodeData) {
		t.Errorf("Render.Run() error = %v, want ErrDecodeData", err)
	}
}

func TestPlan_Run(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")
	writeFile(t, path, "%% if ok {\n<p>{{ x }}</p>\n%% }\n")

	tests := []struct {
		format string
		want   []string
	}{
		{format: "text", want: []string{"begin   if ok", "x (escape)", "end"}},
		{format: "json", want: []string{`"op": "begin"`, `"text": "if ok"`}},
		{format: "yaml", want: []string{"op: begin", "text: if ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			p := Plan{Format: tt.format, Indent: 2, Template: path}
			if err := p.Run(WithStdout(context.Background(), &buf)); err != nil {
				t.Fatalf("Plan.Run() error = %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Plan.Run(%s) missing %q:\n%s", tt.format, want, buf.String())
				}
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.txt")
	writeFile(t, path, "line one\n%% if x {\nline three\n")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "plain",
			err:  errors.New("boom"),
			want: []string{"error: boom"},
		},
		{
			name: "positioned",
			err:  tmpl.ErrUnbalanced.At(tmpl.Position{File: path, Line: 2}),
			want: []string{
				"error: " + tmpl.ErrUnbalanced.Message(),
				path + ":2",
				"2 | %% if x {",
			},
		},
		{
			name: "cause",
			err:  tmpl.ErrUnbalanced.At(tmpl.Position{File: path, Line: 3}).Wrap(errors.New("opened here")),
			want: []string{"3 | line three", "= opened here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			Diagnose(&buf, tt.err)

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Diagnose() missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	err := ErrReadInput.With().Wrap(os.ErrNotExist)

	if !errors.Is(err, ErrReadInput) {
		t.Error("errors.Is(wrapped, ErrReadInput) = false")
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is(wrapped, os.ErrNotExist) = false")
	}

	if errors.Is(err, ErrWriteOutput) {
		t.Error("errors.Is(wrapped, ErrWriteOutput) = true")
	}

	if got, want := err.Error(), "read input: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
