package log

import "testing"

func TestLevel_Text(t *testing.T) {
	tests := []struct {
		text string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{"trace+1", LevelTrace + 1},
	}

	for _, tt := range tests {
		var l Level
		if err := l.UnmarshalText([]byte(tt.text)); err != nil {
			t.Errorf("UnmarshalText(%q) error: %v", tt.text, err)

			continue
		}

		if l != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.text, l, tt.want)
		}
	}

	var l Level
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText accepted an unknown level")
	}

	if got, _ := LevelWarn.MarshalText(); string(got) != "warn" {
		t.Errorf("MarshalText = %q", got)
	}

	if got := (LevelInfo + 2).String(); got != "info+2" {
		t.Errorf("String = %q", got)
	}
}

func TestFormat_Text(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte(" Text ")); err != nil || f != FormatText {
		t.Errorf("UnmarshalText(text) = %v, %v", f, err)
	}

	if err := f.UnmarshalText([]byte("xml")); err == nil {
		t.Error("UnmarshalText accepted xml")
	}

	if got := FormatJSON.String(); got != "json" {
		t.Errorf("String = %q", got)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelTrace + 2, "trace+2"},
		{LevelTrace - 1, "trace-1"},
		{LevelWarn, "warn"},
		{LevelError + 4, "error+4"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
