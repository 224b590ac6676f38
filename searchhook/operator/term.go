package operator

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"

	sherrors "github.com/nonibytes/searchhook/searchhook/errors"
)

// EscapeChar escapes LIKE wildcards inside a term
const EscapeChar = `\`

var likeEscaper = strings.NewReplacer(
	EscapeChar, EscapeChar+EscapeChar,
	"%", EscapeChar+"%",
	"_", EscapeChar+"_",
)

// ContainsPattern escapes term and wraps it in wildcards for a substring match
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func isCollection(term any) bool {
	if term == nil {
		return false
	}
	if _, ok := term.([]byte); ok {
		return false
	}
	switch reflect.TypeOf(term).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func scalarTerm(op Operator, term any) (any, error) {
	if isCollection(term) {
		return nil, sherrors.OperandArity(op.String(), "expected a scalar term")
	}
	return term, nil
}

func boolTerm(op Operator, term any) (bool, error) {
	if term == nil || isCollection(term) {
		return false, sherrors.OperandArity(op.String(), "expected a boolean term")
	}
	b, err := cast.ToBoolE(term)
	if err != nil {
		return false, sherrors.OperandArity(op.String(), "expected a boolean term: "+err.Error())
	}
	return b, nil
}

func stringTerm(op Operator, term any) (string, error) {
	if term == nil || isCollection(term) {
		return "", sherrors.OperandArity(op.String(), "expected a string term")
	}
	s, err := cast.ToStringE(term)
	if err != nil {
		return "", sherrors.OperandArity(op.String(), "expected a string term: "+err.Error())
	}
	return s, nil
}

// listTerm flattens any slice or array into []any, keeping element order
func listTerm(op Operator, term any) ([]any, error) {
	if term == nil {
		return nil, sherrors.OperandArity(op.String(), "expected an ordered collection")
	}
	if _, ok := term.([]byte); ok {
		return nil, sherrors.OperandArity(op.String(), "expected an ordered collection")
	}
	v := reflect.ValueOf(term)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, sherrors.OperandArity(op.String(), "expected an ordered collection")
	}
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out, nil
}

func pairTerm(op Operator, term any) (any, any, error) {
	vals, err := listTerm(op, term)
	if err != nil {
		return nil, nil, err
	}
	if len(vals) != 2 {
		return nil, nil, sherrors.OperandArity(op.String(), "expected exactly two elements [start, end], got "+cast.ToString(len(vals)))
	}
	return vals[0], vals[1], nil
}
