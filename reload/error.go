package reload

import "github.com/ardnew/boil/tmpl"

// Predefined errors (sentinel values).
var (
	ErrUnsupported = tmpl.NewError("unsupported in reload mode")
	ErrEvaluate    = tmpl.NewError("evaluation failed")
)
