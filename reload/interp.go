package reload

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/boil/render"
	"github.com/ardnew/boil/tmpl"
)

// flow is the control transfer requested by a statement.
type flow int

const (
	flowNext flow = iota
	flowBreak
	flowContinue
	flowFallthrough
)

// tagVar binds a switch tag while its case expressions are compared.
const tagVar = "__tag"

// interp executes one render plan.
type interp struct {
	ctx      context.Context
	file     string
	plan     tmpl.Plan
	ends     map[int]int
	programs map[string]*vm.Program
	out      []byte
}

func newInterp(ctx context.Context, file string, plan tmpl.Plan) *interp {
	ends := make(map[int]int)
	for begin, end := range plan.Blocks() {
		ends[begin] = end
	}

	return &interp{
		ctx:      ctx,
		file:     file,
		plan:     plan,
		ends:     ends,
		programs: make(map[string]*vm.Program),
	}
}

func (in *interp) pos(line int) tmpl.Position {
	return tmpl.Position{File: in.file, Line: line}
}

func (in *interp) unsupported(line int, format string, args ...any) error {
	return ErrUnsupported.At(in.pos(line)).Wrap(fmt.Errorf(format, args...))
}

// run executes the instructions in [lo, hi).
func (in *interp) run(sc *scope, lo, hi int) (flow, error) {
	for i := lo; i < hi; i++ {
		ins := in.plan[i]

		switch ins.Op {
		case tmpl.OpLiteral:
			in.out = append(in.out, ins.Text...)

		case tmpl.OpExpr:
			v, err := in.eval(sc, ins.Text, ins.Line)
			if err != nil {
				return flowNext, err
			}

			if ins.Escape {
				in.out = render.AppendEscaped(in.out, v)
			} else {
				in.out = render.AppendValue(in.out, v)
			}

		case tmpl.OpExec:
			f, err := in.exec(sc, ins.Text, ins.Line)
			if err != nil || f != flowNext {
				return f, err
			}

		case tmpl.OpBegin:
			last, f, err := in.control(sc, i)
			if err != nil || f != flowNext {
				return f, err
			}

			i = last

		case tmpl.OpEnd:
			return flowNext, in.unsupported(ins.Line, "stray block end")
		}
	}

	return flowNext, nil
}

// program compiles source once per render.
func (in *interp) program(source string, line int) (*vm.Program, error) {
	if p, ok := in.programs[source]; ok {
		return p, nil
	}

	p, err := expr.Compile(source, exprOptions...)
	if err != nil {
		return nil, ErrEvaluate.At(in.pos(line)).Wrap(err).
			With(slog.String("source", source))
	}

	in.programs[source] = p

	return p, nil
}

func (in *interp) eval(sc *scope, source string, line int) (any, error) {
	p, err := in.program(source, line)
	if err != nil {
		return nil, err
	}

	v, err := expr.Run(p, sc.env())
	if err != nil {
		return nil, ErrEvaluate.At(in.pos(line)).Wrap(err).
			With(slog.String("source", source))
	}

	return v, nil
}

func (in *interp) cond(sc *scope, source string, line int) (bool, error) {
	v, err := in.eval(sc, source, line)
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, ErrEvaluate.At(in.pos(line)).
			Wrap(fmt.Errorf("non-boolean condition %s (%T)", source, v))
	}

	return b, nil
}

// exec runs one simple statement.
func (in *interp) exec(sc *scope, stmt string, line int) (flow, error) {
	stmt = strings.TrimSpace(stmt)

	switch {
	case stmt == "":
		return flowNext, nil

	case stmt == "break":
		return flowBreak, nil

	case stmt == "continue":
		return flowContinue, nil

	case stmt == "fallthrough":
		return flowFallthrough, nil

	case strings.HasPrefix(stmt, "case ") || stmt == "default:":
		return flowNext, in.unsupported(line, "%q outside switch", stmt)

	case strings.HasPrefix(stmt, "var "):
		name, value, ok := strings.Cut(strings.TrimPrefix(stmt, "var "), "=")
		if !ok {
			return flowNext, in.unsupported(line, "declaration without value: %s", stmt)
		}

		stmt = strings.TrimSpace(name) + " := " + value
	}

	if a, ok := parseAssign(stmt); ok {
		return flowNext, in.assign(sc, a, line)
	}

	_, err := in.eval(sc, stmt, line)

	return flowNext, err
}

func (in *interp) assign(sc *scope, a assignment, line int) error {
	if !identifiers(a.lhs) {
		return in.unsupported(line, "assignment to %s", strings.Join(a.lhs, ", "))
	}

	if len(a.lhs) != len(a.rhs) {
		return in.unsupported(line, "assignment of %d values to %d variables",
			len(a.rhs), len(a.lhs))
	}

	// expr-lang has no bitwise operators.
	if a.op != "" && !strings.Contains("+-*/%", a.op) {
		return in.unsupported(line, "operator %s=", a.op)
	}

	values := make([]any, len(a.rhs))

	for i, source := range a.rhs {
		if a.op != "" {
			source = "(" + a.lhs[i] + ") " + a.op + " (" + source + ")"
		}

		v, err := in.eval(sc, source, line)
		if err != nil {
			return err
		}

		values[i] = v
	}

	for i, name := range a.lhs {
		if a.define {
			sc.define(name, values[i])

			continue
		}

		if !sc.assign(name, values[i]) {
			return ErrEvaluate.At(in.pos(line)).
				Wrap(fmt.Errorf("undefined: %s", name))
		}
	}

	return nil
}

// control executes the block opened at index begin along with its chained
// arms. It returns the index of the last arm's end.
func (in *interp) control(sc *scope, begin int) (int, flow, error) {
	arms := []int{begin}

	last := in.ends[begin]
	for last+1 < len(in.plan) && in.plan[last+1].Op == tmpl.OpBegin && in.plan[last+1].Arm {
		arms = append(arms, last+1)
		last = in.ends[last+1]
	}

	for _, a := range arms {
		if end := in.plan[in.ends[a]]; end.Text != "" {
			return last, flowNext, in.unsupported(end.Line, "block tail %q", end.Text)
		}
	}

	head := in.plan[begin]
	kw, _ := keyword(head.Text)

	var (
		f   flow
		err error
	)

	switch {
	case head.Text == "":
		f, err = in.run(sc.child(), begin+1, in.ends[begin])

	case kw == "if":
		f, err = in.ifChain(sc, arms)

	case kw == "for" && len(arms) == 1:
		f, err = in.loop(sc, begin)

	case kw == "switch" && len(arms) == 1:
		f, err = in.switchStmt(sc, begin)

	default:
		err = in.unsupported(head.Line, "block %q", head.Text)
	}

	return last, f, err
}

func (in *interp) ifChain(sc *scope, arms []int) (flow, error) {
	sc = sc.child()

	for k, a := range arms {
		head := in.plan[a]
		kw, rest := keyword(head.Text)

		if k > 0 {
			if kw != "else" {
				return flowNext, in.unsupported(head.Line, "arm %q", head.Text)
			}

			if rest == "" {
				return in.run(sc.child(), a+1, in.ends[a])
			}

			if kw, rest = keyword(rest); kw != "if" {
				return flowNext, in.unsupported(head.Line, "arm %q", head.Text)
			}
		}

		if parts := splitTop(rest, ';'); len(parts) == 2 {
			if _, err := in.exec(sc, parts[0], head.Line); err != nil {
				return flowNext, err
			}

			rest = parts[1]
		}

		ok, err := in.cond(sc, rest, head.Line)
		if err != nil {
			return flowNext, err
		}

		if ok {
			return in.run(sc.child(), a+1, in.ends[a])
		}
	}

	return flowNext, nil
}

// loop executes a for statement in any of its four forms.
func (in *interp) loop(sc *scope, begin int) (flow, error) {
	head := in.plan[begin]
	_, clause := keyword(head.Text)
	sc = sc.child()

	body := func(it *scope) (bool, error) {
		if err := in.ctx.Err(); err != nil {
			return false, ErrEvaluate.At(in.pos(head.Line)).Wrap(err)
		}

		f, err := in.run(it, begin+1, in.ends[begin])

		return err == nil && f != flowBreak, err
	}

	if vars, define, source, ok := parseRange(clause); ok {
		return flowNext, in.rangeLoop(sc, head.Line, vars, define, source, body)
	}

	var cond, post string

	switch parts := splitTop(clause, ';'); len(parts) {
	case 1:
		cond = parts[0]

	case 3:
		if _, err := in.exec(sc, parts[0], head.Line); err != nil {
			return flowNext, err
		}

		cond, post = parts[1], parts[2]

	default:
		return flowNext, in.unsupported(head.Line, "loop %q", head.Text)
	}

	for {
		if cond != "" {
			ok, err := in.cond(sc, cond, head.Line)
			if err != nil || !ok {
				return flowNext, err
			}
		}

		more, err := body(sc.child())
		if err != nil || !more {
			return flowNext, err
		}

		if post != "" {
			if _, err := in.exec(sc, post, head.Line); err != nil {
				return flowNext, err
			}
		}
	}
}

// parseRange recognizes "range x", "k := range x" and "k, v = range x".
func parseRange(clause string) ([]string, bool, string, bool) {
	if source, ok := strings.CutPrefix(clause, "range "); ok {
		return nil, false, strings.TrimSpace(source), true
	}

	define := true

	i := indexTop(clause, ":=")
	if i < 0 {
		define = false
		i = indexTop(clause, "=")
	}

	if i < 0 {
		return nil, false, "", false
	}

	rhs := strings.TrimLeft(clause[i+1:], "= ")

	source, ok := strings.CutPrefix(rhs, "range ")
	if !ok {
		return nil, false, "", false
	}

	return splitTop(clause[:i], ','), define, strings.TrimSpace(source), true
}

func (in *interp) rangeLoop(
	sc *scope,
	line int,
	vars []string,
	define bool,
	source string,
	body func(*scope) (bool, error),
) error {
	if len(vars) > 2 || (len(vars) > 0 && !identifiers(vars)) {
		return in.unsupported(line, "range variables %s", strings.Join(vars, ", "))
	}

	v, err := in.eval(sc, source, line)
	if err != nil {
		return err
	}

	iterate := func(key, value any) (bool, error) {
		it := sc.child()
		pair := []any{key, value}

		for i, name := range vars {
			if define {
				it.define(name, pair[i])
			} else if !it.assign(name, pair[i]) {
				return false, ErrEvaluate.At(in.pos(line)).
					Wrap(fmt.Errorf("undefined: %s", name))
			}
		}

		return body(it)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if more, err := iterate(i, rv.Index(i).Interface()); err != nil || !more {
				return err
			}
		}

	case reflect.String:
		for i, r := range rv.String() {
			if more, err := iterate(i, r); err != nil || !more {
				return err
			}
		}

	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, compareKeys)

		for _, k := range keys {
			if more, err := iterate(k.Interface(), rv.MapIndex(k).Interface()); err != nil || !more {
				return err
			}
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		for i := range int(rv.Int()) {
			if more, err := iterate(i, nil); err != nil || !more {
				return err
			}
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		for i := range int(rv.Uint()) {
			if more, err := iterate(i, nil); err != nil || !more {
				return err
			}
		}

	default:
		return in.unsupported(line, "range over %T", v)
	}

	return nil
}

// compareKeys orders map keys the way fmt prints maps.
func compareKeys(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())

	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())

	case a.CanFloat() && b.CanFloat():
		return cmp.Compare(a.Float(), b.Float())

	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return strings.Compare(a.String(), b.String())

	default:
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}

// clause is one case of a switch body.
type clause struct {
	exprs      []string
	start, end int
	line       int
}

func (in *interp) switchStmt(sc *scope, begin int) (flow, error) {
	head := in.plan[begin]
	_, tag := keyword(head.Text)
	sc = sc.child()

	if parts := splitTop(tag, ';'); len(parts) == 2 {
		if _, err := in.exec(sc, parts[0], head.Line); err != nil {
			return flowNext, err
		}

		tag = parts[1]
	}

	cases := in.clauses(begin)

	var tagScope *scope

	if tag != "" {
		v, err := in.eval(sc, tag, head.Line)
		if err != nil {
			return flowNext, err
		}

		tagScope = sc.child()
		tagScope.define(tagVar, v)
	}

	selected, fallback := -1, -1

	for k, c := range cases {
		if c.exprs == nil {
			fallback = k

			continue
		}

		for _, e := range c.exprs {
			var (
				ok  bool
				err error
			)

			if tagScope != nil {
				ok, err = in.cond(tagScope, tagVar+" == ("+e+")", c.line)
			} else {
				ok, err = in.cond(sc, e, c.line)
			}

			if err != nil {
				return flowNext, err
			}

			if ok {
				selected = k

				break
			}
		}

		if selected >= 0 {
			break
		}
	}

	if selected < 0 {
		selected = fallback
	}

	for k := selected; k >= 0 && k < len(cases); k++ {
		f, err := in.run(sc.child(), cases[k].start, cases[k].end)
		if err != nil {
			return flowNext, err
		}

		switch f {
		case flowFallthrough:
			continue

		case flowContinue:
			return f, nil
		}

		break
	}

	return flowNext, nil
}

// clauses collects the top-level case statements of the switch opened at
// begin. A default clause has nil exprs.
func (in *interp) clauses(begin int) []clause {
	var cases []clause

	end := in.ends[begin]

	for j := begin + 1; j < end; j++ {
		ins := in.plan[j]

		if ins.Op == tmpl.OpBegin {
			j = in.ends[j]

			continue
		}

		if ins.Op != tmpl.OpExec {
			continue
		}

		text := strings.TrimSpace(ins.Text)

		c := clause{start: j + 1, line: ins.Line}

		switch {
		case text == "default:":
			c.exprs = nil

		case strings.HasPrefix(text, "case ") && strings.HasSuffix(text, ":"):
			c.exprs = splitTop(strings.TrimSuffix(strings.TrimPrefix(text, "case "), ":"), ',')

		default:
			continue
		}

		if n := len(cases); n > 0 {
			cases[n-1].end = j
		}

		cases = append(cases, c)
	}

	if n := len(cases); n > 0 {
		cases[n-1].end = end
	}

	return cases
}
