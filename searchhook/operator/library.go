package operator

import (
	sherrors "github.com/nonibytes/searchhook/searchhook/errors"
	"github.com/nonibytes/searchhook/searchhook/query"
)

// builder turns a field and a term into a predicate
type builder func(field query.Field, term any) (query.Expr, error)

// applyFunc adds a predicate to a queryable with a fixed composition mode
type applyFunc func(q query.Queryable, field query.Field, term any) (query.Queryable, error)

func where(b builder) applyFunc {
	return func(q query.Queryable, field query.Field, term any) (query.Queryable, error) {
		expr, err := b(field, term)
		if err != nil {
			return nil, err
		}
		return q.Where(expr), nil
	}
}

func orWhere(b builder) applyFunc {
	return func(q query.Queryable, field query.Field, term any) (query.Queryable, error) {
		expr, err := b(field, term)
		if err != nil {
			return nil, err
		}
		return q.OrWhere(expr), nil
	}
}

func entry(b builder) [numCombinators]applyFunc {
	return [numCombinators]applyFunc{
		Primary:     where(b),
		Alternative: orWhere(b),
	}
}

var builders = [numOperators]builder{
	Eq:        compare(Eq, query.CmpEq),
	NotEq:     compare(NotEq, query.CmpNotEq),
	Gt:        compare(Gt, query.CmpGt),
	Lt:        compare(Lt, query.CmpLt),
	Gteq:      compare(Gteq, query.CmpGte),
	Lteq:      compare(Lteq, query.CmpLte),
	IsNull:    isNull,
	Between:   between,
	In:        in,
	IsTrue:    isTrue,
	IsPresent: isPresent,
	Like:      like(Like, false),
	ILike:     like(ILike, true),
}

// dispatch holds one entry per operator and combinator
var dispatch = func() [numOperators][numCombinators]applyFunc {
	var d [numOperators][numCombinators]applyFunc
	for op, b := range builders {
		if b != nil {
			d[op] = entry(b)
		}
	}
	return d
}()

// Apply adds the predicate for op over field to q, composed according to comb.
// field is relative to the queryable's current relation cursor.
func Apply(q query.Queryable, field string, op Operator, term any, comb Combinator) (query.Queryable, error) {
	if !op.Valid() || comb >= numCombinators {
		return nil, sherrors.UnknownOperatorPair(op.String(), comb.String())
	}
	fn := dispatch[op][comb]
	if fn == nil {
		return nil, sherrors.UnknownOperatorPair(op.String(), comb.String())
	}
	return fn(q, query.Col(field), term)
}

// Predicate builds the bare predicate for op without applying it
func Predicate(op Operator, field query.Field, term any) (query.Expr, error) {
	if !op.Valid() || builders[op] == nil {
		return nil, sherrors.UnknownOperatorPair(op.String(), "")
	}
	return builders[op](field, term)
}

func compare(op Operator, cmp query.CmpOp) builder {
	return func(field query.Field, term any) (query.Expr, error) {
		v, err := scalarTerm(op, term)
		if err != nil {
			return nil, err
		}
		return query.Cmp{Field: field, Op: cmp, Value: v}, nil
	}
}

func like(op Operator, fold bool) builder {
	return func(field query.Field, term any) (query.Expr, error) {
		s, err := stringTerm(op, term)
		if err != nil {
			return nil, err
		}
		return query.Like{Field: field, Pattern: ContainsPattern(s), Fold: fold}, nil
	}
}

func isNull(field query.Field, term any) (query.Expr, error) {
	b, err := boolTerm(IsNull, term)
	if err != nil {
		return nil, err
	}
	return query.Null{Field: field, Not: !b}, nil
}

func isTrue(field query.Field, term any) (query.Expr, error) {
	b, err := boolTerm(IsTrue, term)
	if err != nil {
		return nil, err
	}
	return query.Cmp{Field: field, Op: query.CmpEq, Value: b}, nil
}

// isPresent keeps both disjuncts: true means the field equals true or is
// non-null, false means it equals false or is null.
func isPresent(field query.Field, term any) (query.Expr, error) {
	b, err := boolTerm(IsPresent, term)
	if err != nil {
		return nil, err
	}
	return query.Or{Exprs: []query.Expr{
		query.Cmp{Field: field, Op: query.CmpEq, Value: b},
		query.Null{Field: field, Not: b},
	}}, nil
}

func between(field query.Field, term any) (query.Expr, error) {
	lo, hi, err := pairTerm(Between, term)
	if err != nil {
		return nil, err
	}
	return query.And{Exprs: []query.Expr{
		query.Cmp{Field: field, Op: query.CmpGte, Value: lo},
		query.Cmp{Field: field, Op: query.CmpLte, Value: hi},
	}}, nil
}

func in(field query.Field, term any) (query.Expr, error) {
	vals, err := listTerm(In, term)
	if err != nil {
		return nil, err
	}
	return query.In{Field: field, Values: vals}, nil
}
