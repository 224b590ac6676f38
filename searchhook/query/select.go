package query

import (
	"fmt"
	"strings"
)

// Queryable is an immutable query value. Every method returns a new value and
// leaves the receiver untouched.
type Queryable interface {
	// Join moves the relation cursor one hop along relation
	Join(relation string) Queryable
	// Where composes expr with the existing predicates using AND
	Where(expr Expr) Queryable
	// OrWhere composes expr with the existing predicates using OR
	OrWhere(expr Expr) Queryable
	// Scoped fixes the existing predicates as a base and resets the relation cursor
	Scoped() Queryable
}

// Join is one LEFT JOIN of a select, identified by its relation path
type Join struct {
	Path     []string
	Relation *Relation
}

// Alias is the SQL alias of the joined table
func (j Join) Alias() string {
	return Alias(j.Path)
}

// Alias returns the SQL alias for a relation path
func Alias(path []string) string {
	return strings.Join(path, "__")
}

// Select is the Queryable the planner renders to SQL
type Select struct {
	root   *Entity
	joins  []Join
	cursor []string
	where  Expr
	err    error

	columns []string
	limit   int
	offset  int
}

// From starts an unfiltered select over entity
func From(entity *Entity) *Select {
	return &Select{root: entity}
}

func (s *Select) clone() *Select {
	c := *s
	c.joins = append([]Join(nil), s.joins...)
	c.cursor = append([]string(nil), s.cursor...)
	c.columns = append([]string(nil), s.columns...)
	return &c
}

// Root returns the entity the select reads from
func (s *Select) Root() *Entity { return s.root }

// Joins returns joins in registration order
func (s *Select) Joins() []Join { return append([]Join(nil), s.joins...) }

// WhereExpr returns the predicate tree, nil when unfiltered
func (s *Select) WhereExpr() Expr { return s.where }

// Err returns the first error recorded while building the select
func (s *Select) Err() error { return s.err }

// Cursor returns the current relation path
func (s *Select) Cursor() []string { return append([]string(nil), s.cursor...) }

func (s *Select) ColumnList() []string { return append([]string(nil), s.columns...) }
func (s *Select) LimitValue() int      { return s.limit }
func (s *Select) OffsetValue() int     { return s.offset }

// HasManyJoin reports whether any join can multiply root rows
func (s *Select) HasManyJoin() bool {
	for _, j := range s.joins {
		if j.Relation.Many {
			return true
		}
	}
	return false
}

// EntityAt returns the entity reached by following path from the root
func (s *Select) EntityAt(path []string) (*Entity, error) {
	e := s.root
	for i, name := range path {
		r, ok := e.Relation(name)
		if !ok {
			return nil, fmt.Errorf("entity %s has no relation %q (path %s)", e.Name, name, strings.Join(path[:i+1], "."))
		}
		e = r.Target
	}
	return e, nil
}

func (s *Select) Join(relation string) Queryable {
	c := s.clone()
	if c.err != nil {
		return c
	}
	current, err := c.EntityAt(c.cursor)
	if err != nil {
		c.err = err
		return c
	}
	r, ok := current.Relation(relation)
	if !ok {
		c.err = fmt.Errorf("entity %s has no relation %q", current.Name, relation)
		return c
	}
	c.cursor = append(c.cursor, relation)
	if !c.hasJoin(c.cursor) {
		c.joins = append(c.joins, Join{Path: append([]string(nil), c.cursor...), Relation: r})
	}
	return c
}

func (s *Select) hasJoin(path []string) bool {
	alias := Alias(path)
	for _, j := range s.joins {
		if j.Alias() == alias {
			return true
		}
	}
	return false
}

func (s *Select) Where(expr Expr) Queryable {
	return s.add(expr, false)
}

func (s *Select) OrWhere(expr Expr) Queryable {
	return s.add(expr, true)
}

func (s *Select) add(expr Expr, or bool) Queryable {
	c := s.clone()
	if c.err != nil {
		return c
	}
	expr = Qualify(expr, c.cursor)
	for _, f := range Fields(expr) {
		e, err := c.EntityAt(f.Path)
		if err != nil {
			c.err = err
			return c
		}
		if !e.HasField(f.Name) {
			c.err = fmt.Errorf("entity %s has no field %q", e.Name, f.Name)
			return c
		}
	}
	c.where = combine(c.where, expr, or)
	return c
}

// combine joins base and expr, flattening into base when it is already the
// same kind of node. Groups are never merged into.
func combine(base, expr Expr, or bool) Expr {
	if base == nil {
		return expr
	}
	if or {
		if o, ok := base.(Or); ok {
			return Or{Exprs: append(append([]Expr(nil), o.Exprs...), expr)}
		}
		return Or{Exprs: []Expr{base, expr}}
	}
	if a, ok := base.(And); ok {
		return And{Exprs: append(append([]Expr(nil), a.Exprs...), expr)}
	}
	return And{Exprs: []Expr{base, expr}}
}

func (s *Select) Scoped() Queryable {
	c := s.clone()
	c.cursor = nil
	switch c.where.(type) {
	case And, Or:
		c.where = Group{Inner: c.where}
	}
	return c
}

// Columns restricts the selected root columns; empty means all
func (s *Select) Columns(cols ...string) *Select {
	c := s.clone()
	c.columns = append([]string(nil), cols...)
	return c
}

// Limit caps the number of returned rows; zero means no limit
func (s *Select) Limit(n int) *Select {
	c := s.clone()
	c.limit = n
	return c
}

func (s *Select) Offset(n int) *Select {
	c := s.clone()
	c.offset = n
	return c
}
