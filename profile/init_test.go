package profile

import (
	"slices"
	"testing"
)

func TestConfig_Start(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero", cfg: Config{}},
		{name: "unknown_mode", cfg: Config{Mode: "sonar", Dir: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.Enabled() {
				t.Fatalf("Config%+v.Enabled() = true", tt.cfg)
			}

			p := tt.cfg.Start()
			if _, ok := p.(nop); !ok {
				t.Errorf("Start() = %T, want no-op", p)
			}

			p.Stop()
		})
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}

	for _, m := range modes {
		if !(Config{Mode: m}).Enabled() {
			t.Errorf("mode %q not enabled", m)
		}
	}
}
