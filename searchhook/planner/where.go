package planner

import (
	"fmt"
	"strings"

	"github.com/nonibytes/searchhook/searchhook/query"
	"github.com/nonibytes/searchhook/searchhook/storage"
)

type renderer struct {
	root    string
	backend storage.Backend
	builder storage.Builder
}

func (r renderer) column(f query.Field) string {
	alias := r.root
	if len(f.Path) > 0 {
		alias = query.Alias(f.Path)
	}
	return quote(alias) + "." + quote(f.Name)
}

func (r renderer) expr(expr query.Expr) (string, error) {
	switch e := expr.(type) {
	case query.And:
		return r.join(e.Exprs, " AND ")
	case query.Or:
		return r.join(e.Exprs, " OR ")
	case query.Group:
		inner, err := r.expr(e.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case query.Cmp:
		col := r.column(e.Field)
		if e.Value == nil {
			switch e.Op {
			case query.CmpEq:
				return col + " IS NULL", nil
			case query.CmpNotEq:
				return col + " IS NOT NULL", nil
			}
		}
		return fmt.Sprintf("%s %s %s", col, e.Op.String(), r.builder.Arg(e.Value)), nil

	case query.Null:
		if e.Not {
			return r.column(e.Field) + " IS NOT NULL", nil
		}
		return r.column(e.Field) + " IS NULL", nil

	case query.In:
		if len(e.Values) == 0 {
			return "1 = 0", nil
		}
		phs := make([]string, len(e.Values))
		for i, v := range e.Values {
			phs[i] = r.builder.Arg(v)
		}
		return fmt.Sprintf("%s IN (%s)", r.column(e.Field), strings.Join(phs, ", ")), nil

	case query.Like:
		return r.like(e), nil

	default:
		return "", fmt.Errorf("unknown expression type: %T", expr)
	}
}

// join renders members separated by sep. Nested AND/OR members are
// parenthesised; groups carry their own parentheses.
func (r renderer) join(exprs []query.Expr, sep string) (string, error) {
	parts := make([]string, 0, len(exprs))
	for _, x := range exprs {
		s, err := r.expr(x)
		if err != nil {
			return "", err
		}
		switch x.(type) {
		case query.And, query.Or:
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func (r renderer) like(e query.Like) string {
	col := r.column(e.Field)
	switch r.backend {
	case storage.BackendPostgres:
		op := "LIKE"
		if e.Fold {
			op = "ILIKE"
		}
		return fmt.Sprintf(`%s %s %s ESCAPE '\'`, col, op, r.builder.Arg(e.Pattern))
	default:
		// SQLite LIKE ignores ASCII case; GLOB is the case-sensitive form
		if e.Fold {
			return fmt.Sprintf(`%s LIKE %s ESCAPE '\'`, col, r.builder.Arg(e.Pattern))
		}
		return fmt.Sprintf("%s GLOB %s", col, r.builder.Arg(LikeToGlob(e.Pattern)))
	}
}

// LikeToGlob rewrites an escaped LIKE pattern as an equivalent GLOB pattern
func LikeToGlob(pattern string) string {
	var sb strings.Builder
	escaped := false
	for _, ch := range pattern {
		if escaped {
			writeGlobLiteral(&sb, ch)
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '%':
			sb.WriteRune('*')
		case '_':
			sb.WriteRune('?')
		default:
			writeGlobLiteral(&sb, ch)
		}
	}
	return sb.String()
}

func writeGlobLiteral(sb *strings.Builder, ch rune) {
	switch ch {
	case '*', '?', '[':
		sb.WriteRune('[')
		sb.WriteRune(ch)
		sb.WriteRune(']')
	default:
		sb.WriteRune(ch)
	}
}
