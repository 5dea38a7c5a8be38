// Package example shows boil in use. The methods in boil_gen.go are
// generated from the files in templates.
package example

//go:generate go run github.com/ardnew/boil gen -t Greeting:txt,Page:html --dir templates

// Greeting addresses someone by name.
type Greeting struct {
	Name   string
	Formal bool
}

// Page is an HTML list with a plain-text note at the end.
type Page struct {
	Title string
	Items []string
	Note  Greeting
}
