package tmpl

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCompileCached(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()
	src := NewSource("c.txt", "a {{ self.X }}\n")

	first, err := CompileCached(ctx, src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	second, err := CompileCached(ctx, src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if &first[0] != &second[0] {
		t.Error("second compile did not reuse the cached plan")
	}

	changed, err := CompileCached(ctx, NewSource("c.txt", "b {{ self.X }}\n"))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if changed[0].Text != "b " {
		t.Errorf("changed template served stale plan: %+v", changed[0])
	}

	// The same text under another content type compiles separately.
	html, err := CompileCached(ctx, NewSource("c.html", "a {{ self.X }}\n"))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if !html[1].Escape || first[1].Escape {
		t.Errorf("escape flags = %v, %v", html[1].Escape, first[1].Escape)
	}
}

// Editing a template replaces its cached plan rather than adding one.
func TestCompileCached_Replace(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	for i := range 5 {
		text := strings.Repeat("x", i) + "{{ self.X }}\n"

		plan, err := CompileCached(ctx, NewSource("edit.txt", text))
		if err != nil {
			t.Fatalf("compile error: %v", err)
		}

		if plan[0].Op != OpExpr && plan[0].Text != strings.Repeat("x", i) {
			t.Errorf("edit %d served stale plan: %+v", i, plan[0])
		}
	}

	if _, err := CompileCached(ctx, NewSource("other.txt", "y\n")); err != nil {
		t.Fatalf("compile error: %v", err)
	}

	cacheMu.Lock()
	n := len(planCache)
	cacheMu.Unlock()

	if n != 2 {
		t.Errorf("cache holds %d plans, want 2", n)
	}
}

func TestCompileCached_Error(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := NewSource("bad.txt", "%% if x {\n")

	for range 2 {
		_, err := CompileCached(context.Background(), src)
		if !errors.Is(err, ErrUnbalanced) {
			t.Fatalf("error = %v, want ErrUnbalanced", err)
		}
	}
}
