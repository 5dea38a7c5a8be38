// Package cmd implements the boil subcommands: gen writes the generated
// methods, render interprets a template in reload mode, plan prints a
// template's render plan, and init writes a configuration file.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// ManifestIdentifier is the kong variable identifier containing the
	// default manifest path.
	ManifestIdentifier = "manifest"
)
