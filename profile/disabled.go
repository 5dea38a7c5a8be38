//go:build !pprof

package profile

// Modes returns the supported profiling modes, none without the pprof tag.
func Modes() []string { return nil }

func supported(string) bool { return false }

func start(Config) Profiler { return nop{} }
