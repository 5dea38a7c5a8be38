// Package profile wraps [github.com/pkg/profile] for the boil command.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o boil .
//	boil --pprof-mode cpu gen -t Page:html
//
// Without the tag, [Config.Start] returns a no-op [Profiler] and [Modes] is empty.
// Profiles are written to the directory given by --pprof-dir, which defaults
// to $XDG_CACHE_HOME/boil/pprof, and can be inspected with go tool pprof.
//
// Code generation for a large template set spends most of its time in
// goimports; a cpu profile of boil gen makes that visible.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
