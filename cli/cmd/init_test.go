package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				writeFile(t, path, "existing content")
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				writeFile(t, path, "existing content")
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				Level  string   `default:"warn"`
				Caller bool     `default:"true"`
				Quiet  bool     `hidden:""`
				Types  []string `default:"Page:html" sep:","`
				Empty  string
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), ktx)

			initCmd := &Init{Force: tt.force}
			err = initCmd.Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if got["level"] != "warn" {
				t.Errorf("level = %v, want warn", got["level"])
			}

			if got["caller"] != true {
				t.Errorf("caller = %v, want true", got["caller"])
			}

			for _, key := range []string{"help", "quiet", "empty"} {
				if _, ok := got[key]; ok {
					t.Errorf("config contains %q:\n%s", key, content)
				}
			}

			if !strings.Contains(string(content), "- Page:html") {
				t.Errorf("config missing types sequence:\n%s", content)
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  any
		want any
	}{
		{name: "nil", val: nil, want: nil},
		{name: "bool", val: false, want: false},
		{name: "int", val: 3, want: 3},
		{name: "empty_string", val: "", want: nil},
		{name: "string", val: "x", want: "x"},
		{name: "stringer", val: levelName("debug"), want: "debug"},
		{name: "other", val: struct{ A int }{1}, want: "{1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := flagValue(tt.val); got != tt.want {
				t.Errorf("flagValue(%v) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}

	if got := flagValue([]string{}); got != nil {
		t.Errorf("flagValue(empty slice) = %v, want nil", got)
	}
}

type levelName string

func (l levelName) String() string { return string(l) }
