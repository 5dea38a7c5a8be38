package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/boil/tmpl"
)

// Diagnose writes err to w for a human reader. A template error that names
// a line is shown with that line of the template.
func Diagnose(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)

	var (
		errorStyle  = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		posStyle    = r.NewStyle().Bold(true)
		gutterStyle = r.NewStyle().Foreground(lipgloss.Color("8"))
		causeStyle  = r.NewStyle().Foreground(lipgloss.Color("4"))
	)

	label := errorStyle.Render("error:")

	var te *tmpl.Error
	if !errors.As(err, &te) || !te.Position().IsValid() {
		fmt.Fprintln(w, label, err)

		return
	}

	pos := te.Position()

	fmt.Fprintln(w, label, te.Message())
	fmt.Fprintf(w, "  %s %s\n", gutterStyle.Render("-->"), posStyle.Render(pos.String()))

	if text, ok := sourceLine(pos); ok {
		num := strconv.Itoa(pos.Line)
		pad := strings.Repeat(" ", len(num))
		bar := gutterStyle.Render("|")

		fmt.Fprintf(w, "%s %s\n", pad, bar)
		fmt.Fprintf(w, "%s %s %s\n", gutterStyle.Render(num), bar, text)
		fmt.Fprintf(w, "%s %s\n", pad, bar)
	}

	if cause := te.Unwrap(); cause != nil {
		fmt.Fprintf(w, "  %s %s\n", causeStyle.Render("="), cause)
	}
}

// sourceLine returns line pos.Line of pos.File.
func sourceLine(pos tmpl.Position) (string, bool) {
	f, err := os.Open(pos.File)
	if err != nil {
		return "", false
	}
	defer f.Close()

	s := bufio.NewScanner(f)

	for n := 1; s.Scan(); n++ {
		if n == pos.Line {
			return s.Text(), true
		}
	}

	return "", false
}
