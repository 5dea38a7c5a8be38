package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func loadConfig(t *testing.T, text string) kong.Resolver {
	t.Helper()

	resolver, err := resolve(context.Background())(strings.NewReader(text))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	return resolver
}

func flagNamed(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve_TopLevel(t *testing.T) {
	resolver := loadConfig(t, "log_level: debug\nlog-format: text\nlog-pretty: false\n")

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log_level", "debug"},
		{"log-format", "text"},
		{"log-pretty", false},
		{"missing", nil},
	}

	for _, tt := range tests {
		got, err := resolver.Resolve(nil, nil, flagNamed(tt.flag))
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", tt.flag, err)
		}

		if got != tt.want {
			t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
		}
	}
}

func TestResolve_CommandSection(t *testing.T) {
	resolver := loadConfig(t, "receiver: top\ngen:\n  receiver: v\n  indent: 4\n")

	gen := &kong.Path{Command: &kong.Command{Name: "gen"}}
	plan := &kong.Path{Command: &kong.Command{Name: "plan"}}

	if got, _ := resolver.Resolve(nil, gen, flagNamed("receiver")); got != "v" {
		t.Errorf("gen receiver = %#v, want v", got)
	}

	if got, _ := resolver.Resolve(nil, plan, flagNamed("receiver")); got != "top" {
		t.Errorf("plan receiver = %#v, want top", got)
	}

	if got, _ := resolver.Resolve(nil, gen, flagNamed("indent")); got != "4" {
		t.Errorf("indent = %#v, want the string 4", got)
	}
}

func TestResolve_InvalidIgnored(t *testing.T) {
	resolver := loadConfig(t, "log-level: [unclosed\n")

	got, err := resolver.Resolve(nil, nil, flagNamed("log-level"))
	if err != nil || got != nil {
		t.Errorf("Resolve on invalid config = %#v, %v", got, err)
	}
}

func TestResolve_Empty(t *testing.T) {
	resolver := loadConfig(t, "")

	if got, _ := resolver.Resolve(nil, nil, flagNamed("log-level")); got != nil {
		t.Errorf("Resolve on empty config = %#v", got)
	}
}

func TestNormalize(t *testing.T) {
	got, ok := normalize([]any{uint64(1), 2.5, "x"}).([]any)
	if !ok || len(got) != 3 || got[0] != "1" || got[1] != "2.5" || got[2] != "x" {
		t.Errorf("normalize = %#v", got)
	}
}
