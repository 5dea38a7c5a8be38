package profile

// Profiler is a running profile. Stop flushes it to disk.
type Profiler interface {
	Stop()
}

// Config selects what to profile and where the profile is written.
// The zero Config profiles nothing.
type Config struct {
	Mode  string // one of [Modes], or "" to disable
	Dir   string // output directory, or "" for a temporary one
	Quiet bool   // suppress the profiler's own log lines
}

// Enabled reports whether Start will run a profiler.
func (c Config) Enabled() bool {
	return c.Mode != "" && supported(c.Mode)
}

// Start begins profiling. Without the pprof build tag, or for an empty or
// unknown mode, it returns a Profiler whose Stop does nothing.
func (c Config) Start() Profiler {
	if !c.Enabled() {
		return nop{}
	}

	return start(c)
}

type nop struct{}

func (nop) Stop() {}
