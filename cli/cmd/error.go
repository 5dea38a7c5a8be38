package cmd

import "github.com/ardnew/boil/tmpl"

// Command errors share [tmpl.Error] so that [Diagnose] and structured logging
// treat them like template errors.
var (
	ErrInvalidTarget = tmpl.NewError("invalid target (want TYPE or TYPE:SUFFIX)")
	ErrReadInput     = tmpl.NewError("read input")
	ErrDecodeData    = tmpl.NewError("decode data")
	ErrWriteOutput   = tmpl.NewError("write output")
	ErrManifest      = tmpl.NewError("manifest")
	ErrYAMLMarshal   = tmpl.NewError("marshal YAML")
	ErrWriteConfig   = tmpl.NewError("write configuration file")
	ErrFileExists    = tmpl.NewError("file exists (use --force to overwrite)")
)
