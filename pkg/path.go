package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var (
	debugBin    = regexp.MustCompile(`^__debug_bin\d*$`) // dlv build output
	leadingDots = regexp.MustCompile(`^\.+`)
)

// Prefix returns the directory name used under the user configuration and
// cache directories: the executable's base name without extension or
// leading dots, or [Name] when running under the dlv debugger.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	base := filepath.Base(exe)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if debugBin.MatchString(base) {
		return Name
	}

	if base = leadingDots.ReplaceAllString(base, ""); base == "" {
		return Name
	}

	return base
})

// userDir returns the per-user directory reported by locate, falling back
// to home/dot and then to the working directory, joined with [Prefix].
func userDir(locate func() (string, error), dot string) string {
	dir, err := locate()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, dot)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the directory holding the configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory for the manifest and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// ConfigPath joins elem to [ConfigDir].
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// ManifestPath returns the default location of the generated-file manifest.
func ManifestPath() string {
	return filepath.Join(CacheDir(), "manifest.db")
}
