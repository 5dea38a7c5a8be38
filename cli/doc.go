// Package cli contains the command line interface for boil.
//
// # Usage
//
//	boil gen -t Greeting:txt,Page:html --dir templates
//	boil render templates/page.html --data page.yaml
//	boil plan --format yaml templates/page.html
//	boil init
//
// gen is meant to run from go:generate, which sets GOPACKAGE for the
// package name of the generated file. It skips writing when the manifest
// shows the output was generated from identical inputs; --force overrides.
//
// # Configuration
//
// Flags may also be set in $XDG_CONFIG_HOME/boil/config.yaml, where keys are
// flag names and a key naming a command holds that command's flags, or in
// config.json beside it. boil init writes the YAML file from the current
// flag values. Command-line flags take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorized output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o boil .
//
// It adds --pprof-mode and --pprof-dir, described in package profile.
package cli
