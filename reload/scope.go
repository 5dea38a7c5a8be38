package reload

// scope is one lexical block of template variables.
type scope struct {
	vars   map[string]any
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]any), parent: parent}
}

func (s *scope) child() *scope { return newScope(s) }

func (s *scope) define(name string, v any) {
	if name != "_" {
		s.vars[name] = v
	}
}

// assign sets the innermost variable called name. It reports false when no
// enclosing scope declares it.
func (s *scope) assign(name string, v any) bool {
	if name == "_" {
		return true
	}

	for c := s; c != nil; c = c.parent {
		if _, ok := c.vars[name]; ok {
			c.vars[name] = v

			return true
		}
	}

	return false
}

// env flattens the scope chain, inner declarations shadowing outer ones.
func (s *scope) env() map[string]any {
	var chain []*scope
	for c := s; c != nil; c = c.parent {
		chain = append(chain, c)
	}

	env := make(map[string]any)

	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].vars {
			env[k] = v
		}
	}

	return env
}
