package query

import "strings"

// Expr represents a predicate expression
type Expr interface {
	isExpr()
}

// Field names a column, optionally reached through a chain of relations
type Field struct {
	Path []string // relation hops from the root entity
	Name string
}

func (f Field) String() string {
	if len(f.Path) == 0 {
		return f.Name
	}
	return strings.Join(f.Path, ".") + "." + f.Name
}

// Col is shorthand for an unqualified field
func Col(name string) Field {
	return Field{Name: name}
}

// And represents a boolean AND of its members
type And struct {
	Exprs []Expr
}

func (And) isExpr() {}

// Or represents a boolean OR of its members
type Or struct {
	Exprs []Expr
}

func (Or) isExpr() {}

// Group fixes its inner expression as a unit. Later AND/OR composition wraps
// the group instead of merging into it.
type Group struct {
	Inner Expr
}

func (Group) isExpr() {}

// CmpOp is a comparison operator
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpGt
	CmpGte
	CmpLt
	CmpLte
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "="
	case CmpNotEq:
		return "<>"
	case CmpGt:
		return ">"
	case CmpGte:
		return ">="
	case CmpLt:
		return "<"
	case CmpLte:
		return "<="
	default:
		return "?"
	}
}

// Cmp compares a field to a value
type Cmp struct {
	Field Field
	Op    CmpOp
	Value any
}

func (Cmp) isExpr() {}

// Null matches a field that is null, or not null when Not is set
type Null struct {
	Field Field
	Not   bool
}

func (Null) isExpr() {}

// In matches a field against a set of values
type In struct {
	Field  Field
	Values []any
}

func (In) isExpr() {}

// Like matches a field against an escaped LIKE pattern. Fold makes the match
// case-insensitive.
type Like struct {
	Field   Field
	Pattern string
	Fold    bool
}

func (Like) isExpr() {}

// Qualify returns expr with every unqualified field bound to path.
func Qualify(expr Expr, path []string) Expr {
	if len(path) == 0 {
		return expr
	}
	bind := func(f Field) Field {
		if len(f.Path) > 0 {
			return f
		}
		return Field{Path: append([]string(nil), path...), Name: f.Name}
	}

	switch e := expr.(type) {
	case Cmp:
		e.Field = bind(e.Field)
		return e
	case Null:
		e.Field = bind(e.Field)
		return e
	case In:
		e.Field = bind(e.Field)
		return e
	case Like:
		e.Field = bind(e.Field)
		return e
	case And:
		return And{Exprs: qualifyAll(e.Exprs, path)}
	case Or:
		return Or{Exprs: qualifyAll(e.Exprs, path)}
	case Group:
		return Group{Inner: Qualify(e.Inner, path)}
	default:
		return expr
	}
}

func qualifyAll(exprs []Expr, path []string) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Qualify(e, path)
	}
	return out
}

// Fields lists every field referenced by expr in depth-first order
func Fields(expr Expr) []Field {
	var out []Field
	var walk func(Expr)
	walk = func(expr Expr) {
		switch e := expr.(type) {
		case Cmp:
			out = append(out, e.Field)
		case Null:
			out = append(out, e.Field)
		case In:
			out = append(out, e.Field)
		case Like:
			out = append(out, e.Field)
		case And:
			for _, x := range e.Exprs {
				walk(x)
			}
		case Or:
			for _, x := range e.Exprs {
				walk(x)
			}
		case Group:
			walk(e.Inner)
		}
	}
	walk(expr)
	return out
}
