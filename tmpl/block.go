package tmpl

import (
	"log/slog"
	"strings"
)

// Node is an element of the block tree: a [*Leaf], a [*Control], or a
// [*Stmt].
type Node interface {
	node()
}

// Leaf holds a single Text or Blank line.
type Leaf struct {
	Line Line
}

// Stmt is a directive that neither opens nor closes a block, such as a
// variable declaration or a switch case label.
type Stmt struct {
	Text string
	Line int
}

// Control is a block opened by a directive ending in '{'.
//
// Head is the statement text with its trailing brace removed. Tail is any
// text following the closing brace (as in "})"). Arms are the else-style
// continuations chained to this construct, in source order; an arm never has
// arms of its own.
type Control struct {
	Head     string
	Tail     string
	Line     int
	Children []Node
	Arms     []*Control

	chain *Control // construct this arm belongs to, or nil
}

func (*Leaf) node()    {}
func (*Stmt) node()    {}
func (*Control) node() {}

// owner returns the construct that arms of c are attached to.
func (c *Control) owner() *Control {
	if c.chain != nil {
		return c.chain
	}

	return c
}

// DefaultContinuations are the statement prefixes that continue a construct
// when they follow a closer on the adjacent line, as in Go's "else".
var DefaultContinuations = []string{"else"}

// directive classifies a statement by its brace structure.
type directive struct {
	closes bool   // leading '}'
	opens  bool   // trailing '{'
	head   string // statement between the braces
}

func parseDirective(stmt string) directive {
	var d directive

	s := stmt
	if strings.HasPrefix(s, "}") {
		d.closes = true
		s = s[1:]
	}

	if strings.HasSuffix(s, "{") {
		d.opens = true
		s = s[:len(s)-1]
	}

	d.head = strings.TrimSpace(s)

	return d
}

// matcher holds the block matching state.
type matcher struct {
	stack         []*Control
	closed        *Control // construct closed by the previous line, if any
	continuations []string
}

// Match groups lines into a tree of control blocks and returns its implicit
// root, whose Head is empty.
func Match(lines []Line, opts ...Option) (*Control, error) {
	o := makeOptions(opts...)

	root := &Control{}
	m := &matcher{
		stack:         []*Control{root},
		continuations: o.continuations,
	}

	for _, line := range lines {
		err := m.add(line)
		if err != nil {
			return nil, err
		}
	}

	if len(m.stack) > 1 {
		open := m.top()

		return nil, ErrUnbalanced.AtLine(open.Line).
			With(slog.String("opener", open.Head))
	}

	o.logger.Trace("blocks matched",
		slog.Int("lines", len(lines)),
		slog.Int("nodes", len(root.Children)))

	return root, nil
}

func (m *matcher) top() *Control { return m.stack[len(m.stack)-1] }

func (m *matcher) push(c *Control) { m.stack = append(m.stack, c) }

func (m *matcher) pop(line int) (*Control, error) {
	if len(m.stack) == 1 {
		return nil, ErrUnmatchedCloser.AtLine(line)
	}

	c := m.top()
	m.stack = m.stack[:len(m.stack)-1]

	return c, nil
}

func (m *matcher) add(line Line) error {
	if line.Kind != LineDirective {
		m.closed = nil
		top := m.top()
		top.Children = append(top.Children, &Leaf{Line: line})

		return nil
	}

	d := parseDirective(line.Stmt)
	closed := m.closed
	m.closed = nil

	switch {
	case d.closes && d.opens:
		c, err := m.pop(line.Number)
		if err != nil {
			return err
		}

		m.chainArm(c.owner(), d.head, line.Number)

	case d.closes:
		c, err := m.pop(line.Number)
		if err != nil {
			return err
		}

		c.Tail = d.head
		m.closed = c.owner()

	case d.opens:
		if m.continues(d.head) {
			if closed == nil {
				return ErrAmbiguousArm.AtLine(line.Number).
					With(slog.String("statement", line.Stmt))
			}

			m.chainArm(closed, d.head, line.Number)

			return nil
		}

		c := &Control{Head: d.head, Line: line.Number}
		top := m.top()
		top.Children = append(top.Children, c)
		m.push(c)

	default:
		top := m.top()
		top.Children = append(top.Children, &Stmt{Text: line.Stmt, Line: line.Number})
	}

	return nil
}

// chainArm opens a new arm of owner.
func (m *matcher) chainArm(owner *Control, head string, line int) {
	arm := &Control{Head: head, Line: line, chain: owner}
	owner.Arms = append(owner.Arms, arm)
	m.push(arm)
}

// continues reports whether head starts with a continuation keyword.
func (m *matcher) continues(head string) bool {
	for _, kw := range m.continuations {
		if head == kw {
			return true
		}

		rest, ok := strings.CutPrefix(head, kw)
		if ok && rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
			return true
		}
	}

	return false
}
