package queryevents

type ParamNameString = string

/***** Param *****/

// Param is one bound parameter of a SQL statement.
// A Param is either named (bound by placeholder name) or positional
// (bound by its position in the Params slice).
//
// It should only be constructed with the supplied factory functions:
//   - P for named parameters
//   - V for positional parameters
type Param struct {
	name ParamNameString
	val  any
}

// P creates a named Param.
func P(name ParamNameString, val any) Param {
	return Param{name: name, val: val}
}

// V creates a positional Param.
func V(val any) Param {
	return Param{val: val}
}

func (p Param) Name() ParamNameString {
	return p.name
}

func (p Param) Val() any {
	return p.val
}

// IsNamed reports whether the parameter is bound by name rather than position.
func (p Param) IsNamed() bool {
	return p.name != ""
}

/***** Params *****/

// Params is the ordered sequence of bound parameters of one statement.
// Order is preserved; uniqueness of names within one statement is the
// caller's responsibility, no validation is performed.
type Params []Param

// Values returns the parameter values in order, for handing them to a
// database driver as positional arguments.
func (ps Params) Values() []any {
	if len(ps) == 0 {
		return nil
	}

	values := make([]any, len(ps))
	for i, p := range ps {
		values[i] = p.val
	}

	return values
}
