package tmpl

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Op is a Render Plan instruction code.
type Op int

const (
	// OpLiteral appends Text.
	OpLiteral Op = iota

	// OpExpr appends the value of expression Text, escaped if Escape is set.
	OpExpr

	// OpBegin opens a control block with head Text. Arm marks an
	// else-style continuation of the block closed by the preceding OpEnd.
	OpBegin

	// OpEnd closes the innermost control block. Text is any tail following
	// the closing brace.
	OpEnd

	// OpExec executes statement Text.
	OpExec
)

// String returns a string representation of the op.
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "literal"

	case OpExpr:
		return "expr"

	case OpBegin:
		return "begin"

	case OpEnd:
		return "end"

	case OpExec:
		return "exec"

	default:
		return "unknown"
	}
}

// MarshalText encodes the op as its name.
func (op Op) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// UnmarshalText decodes an op name.
func (op *Op) UnmarshalText(text []byte) error {
	for o := OpLiteral; o <= OpExec; o++ {
		if o.String() == string(text) {
			*op = o

			return nil
		}
	}

	return fmt.Errorf("unknown op %q", text)
}

// Instr is a single Render Plan instruction.
type Instr struct {
	Op     Op     `json:"op"               yaml:"op"`
	Text   string `json:"text,omitempty"   yaml:"text,omitempty"`
	Escape bool   `json:"escape,omitempty" yaml:"escape,omitempty"`
	Arm    bool   `json:"arm,omitempty"    yaml:"arm,omitempty"`
	Line   int    `json:"line"             yaml:"line"`
}

// Plan is a flattened, ordered instruction list.
type Plan []Instr

// Flatten traverses the block tree rooted at root in pre-order and returns
// its Render Plan. Expressions are marked for escaping when p is [Escape].
func Flatten(root *Control, p Policy) Plan {
	f := flattener{escape: p == Escape}
	f.nodes(root.Children)

	return f.plan
}

type flattener struct {
	plan   Plan
	escape bool
}

func (f *flattener) emit(in Instr) { f.plan = append(f.plan, in) }

func (f *flattener) nodes(nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Leaf:
			f.leaf(n.Line)

		case *Stmt:
			f.emit(Instr{Op: OpExec, Text: n.Text, Line: n.Line})

		case *Control:
			f.control(n, false)

			for _, arm := range n.Arms {
				f.control(arm, true)
			}
		}
	}
}

func (f *flattener) control(c *Control, arm bool) {
	f.emit(Instr{Op: OpBegin, Text: c.Head, Arm: arm, Line: c.Line})
	f.nodes(c.Children)
	f.emit(Instr{Op: OpEnd, Text: c.Tail, Line: c.Line})
}

func (f *flattener) leaf(line Line) {
	if line.Kind == LineText {
		runs := line.Runs()

		for i, span := range line.Spans {
			if runs[i] != "" {
				f.emit(Instr{Op: OpLiteral, Text: runs[i], Line: line.Number})
			}

			f.emit(Instr{
				Op:     OpExpr,
				Text:   strings.TrimSpace(span.Expr),
				Escape: f.escape,
				Line:   line.Number,
			})
		}

		if last := runs[len(runs)-1]; last != "" {
			f.emit(Instr{Op: OpLiteral, Text: last, Line: line.Number})
		}
	}

	if line.Newline {
		f.emit(Instr{Op: OpLiteral, Text: "\n", Line: line.Number})
	}
}

// Blocks returns an iterator over the (begin, end) index pairs of matching
// control instructions, in order of their OpBegin.
func (p Plan) Blocks() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		match := p.match()

		for i, in := range p {
			if in.Op == OpBegin {
				if !yield(i, match[i]) {
					return
				}
			}
		}
	}
}

// match returns, for each OpBegin index, the index of its OpEnd (and vice
// versa). Unmatched instructions map to -1.
func (p Plan) match() []int {
	match := make([]int, len(p))
	stack := make([]int, 0, 8)

	for i, in := range p {
		match[i] = -1

		switch in.Op {
		case OpBegin:
			stack = append(stack, i)

		case OpEnd:
			if len(stack) == 0 {
				continue
			}

			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[i], match[j] = j, i
		}
	}

	return match
}

// Balanced reports whether the plan's OpBegin/OpEnd instructions form a
// well-formed bracket sequence.
func (p Plan) Balanced() bool {
	depth := 0

	for _, in := range p {
		switch in.Op {
		case OpBegin:
			depth++

		case OpEnd:
			depth--
			if depth < 0 {
				return false
			}
		}
	}

	return depth == 0
}

// Compile runs the tokenizer, block matcher and flattener over src.
// Errors are attributed to src.Path.
func Compile(src Source, opts ...Option) (Plan, error) {
	o := makeOptions(opts...)

	lines, err := Tokenize(src.Text)
	if err != nil {
		return nil, inFile(err, src.Path)
	}

	root, err := Match(lines, opts...)
	if err != nil {
		return nil, inFile(err, src.Path)
	}

	policy := o.escaper.Policy(src.ContentType)
	plan := Flatten(root, policy)

	o.logger.Debug("template compiled",
		slog.String("path", src.Path),
		slog.String("content_type", src.ContentType),
		slog.String("policy", policy.String()),
		slog.Int("lines", len(lines)),
		slog.Int("instructions", len(plan)))

	return plan, nil
}
