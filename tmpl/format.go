package tmpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes a readable listing of the plan, one instruction per line,
// indented by block depth.
func (p Plan) Format(w io.Writer, indent int) error {
	depth := 0

	for _, in := range p {
		if in.Op == OpEnd {
			depth--
		}

		text := in.Text

		switch in.Op {
		case OpLiteral:
			text = strconv.Quote(text)

		case OpExpr:
			if in.Escape {
				text += " (escape)"
			}

		case OpBegin:
			if in.Arm {
				text += " (arm)"
			}
		}

		line := fmt.Sprintf("%4d  %s%-7s %s",
			in.Line, strings.Repeat(" ", max(depth, 0)*indent), in.Op, text)

		_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
		if err != nil {
			return err
		}

		if in.Op == OpBegin {
			depth++
		}
	}

	return nil
}

// FormatJSON writes the plan as JSON.
func (p Plan) FormatJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the plan as YAML.
func (p Plan) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, p, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
