package operator

import "sort"

// Operator is one of the fixed set of filter operators
type Operator uint8

// Operator enum values.
const (
	Eq Operator = iota
	NotEq
	Gt
	Lt
	Gteq
	Lteq
	IsNull
	Between
	In
	IsTrue
	IsPresent
	Like
	ILike

	numOperators
)

var names = [numOperators]string{
	Eq:        "eq",
	NotEq:     "not_eq",
	Gt:        "gt",
	Lt:        "lt",
	Gteq:      "gteq",
	Lteq:      "lteq",
	IsNull:    "is_null",
	Between:   "between",
	In:        "in",
	IsTrue:    "is_true",
	IsPresent: "is_present",
	Like:      "like",
	ILike:     "ilike",
}

func (op Operator) String() string {
	if op < numOperators {
		return names[op]
	}
	return "unknown"
}

// Valid reports whether op is a member of the enumeration
func (op Operator) Valid() bool {
	return op < numOperators
}

// All returns every operator in declaration order
func All() []Operator {
	ops := make([]Operator, numOperators)
	for i := range ops {
		ops[i] = Operator(i)
	}
	return ops
}

// Names returns operator names in declaration order
func Names() []string {
	return append([]string(nil), names[:]...)
}

// bySuffixLength lists operators longest name first, ties broken by name, so
// a name that ends another (eq, not_eq) never shadows the longer one.
var bySuffixLength = func() []Operator {
	ops := All()
	sort.SliceStable(ops, func(i, j int) bool {
		a, b := names[ops[i]], names[ops[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return ops
}()

// BySuffixLength returns operators ordered for longest-suffix matching
func BySuffixLength() []Operator {
	return append([]Operator(nil), bySuffixLength...)
}
