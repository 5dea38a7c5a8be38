package tmpl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

//nolint:gochecknoglobals
var (
	cacheMu sync.Mutex
	// planCache holds the latest compilation of each template path under
	// each set of options. A changed text replaces the entry.
	planCache = make(map[string]*cached)
)

// cached is a plan compiled at most once.
type cached struct {
	once sync.Once
	sum  uint64 // of the source text
	plan Plan
	err  error
}

// cacheKey identifies a template path compiled under o. The returned sum
// identifies its text.
func cacheKey(src Source, o options) (string, uint64) {
	key := xxh3.HashString(strings.Join([]string{
		src.Path,
		src.ContentType,
		o.escaper.Policy(src.ContentType).String(),
		strings.Join(o.continuations, " "),
	}, "\x00"))

	return strconv.FormatUint(key, 36), xxh3.HashString(src.Text)
}

// CompileCached is [Compile] with results memoized per template path.
// A template whose text changes is recompiled and replaces the earlier
// plan. Errors are cached too.
//
// The returned Plan is shared and must not be modified.
func CompileCached(ctx context.Context, src Source, opts ...Option) (Plan, error) {
	o := makeOptions(opts...)
	key, sum := cacheKey(src, o)

	cacheMu.Lock()

	entry, found := planCache[key]
	hit := found && entry.sum == sum

	if !hit {
		entry = &cached{sum: sum}
		planCache[key] = entry
	}

	cacheMu.Unlock()

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("path", src.Path),
		slog.String("key", key),
		slog.Bool("cache_hit", hit),
		slog.Bool("replaced", found && !hit))

	entry.once.Do(func() {
		entry.plan, entry.err = Compile(src, opts...)
	})

	return entry.plan, entry.err
}

// ClearCache removes all cached plans.
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	clear(planCache)
}
