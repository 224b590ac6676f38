package query

import "sort"

// EntityMetadata describes the fields and relations of one entity
type EntityMetadata interface {
	HasField(name string) bool
	HasRelation(name string) bool
	Related(relation string) (EntityMetadata, bool)
}

// Relation links two entities.
// The join condition is Target.TargetColumn = Source.SourceColumn.
type Relation struct {
	Name         string
	Target       *Entity
	SourceColumn string
	TargetColumn string
	Many         bool // one source row may match several target rows
}

// Entity is a table with its columns and outgoing relations.
// It is built once and read-only afterwards, so it may be shared between goroutines.
type Entity struct {
	Name       string
	PrimaryKey string

	fields    map[string]struct{}
	order     []string
	relations map[string]*Relation
}

// NewEntity creates an entity backed by table name
func NewEntity(name, primaryKey string, fields ...string) *Entity {
	e := &Entity{
		Name:       name,
		PrimaryKey: primaryKey,
		fields:     make(map[string]struct{}, len(fields)),
		relations:  make(map[string]*Relation),
	}
	for _, f := range fields {
		e.AddField(f)
	}
	return e
}

// AddField registers a column; duplicates are ignored
func (e *Entity) AddField(name string) *Entity {
	if _, ok := e.fields[name]; ok {
		return e
	}
	e.fields[name] = struct{}{}
	e.order = append(e.order, name)
	return e
}

// AddRelation registers r under r.Name, replacing any relation of that name
func (e *Entity) AddRelation(r *Relation) *Entity {
	e.relations[r.Name] = r
	return e
}

// BelongsTo registers a relation where this entity holds the foreign key
func (e *Entity) BelongsTo(name string, target *Entity, foreignKey string) *Entity {
	return e.AddRelation(&Relation{
		Name:         name,
		Target:       target,
		SourceColumn: foreignKey,
		TargetColumn: target.PrimaryKey,
	})
}

// HasMany registers a relation where target holds the foreign key
func (e *Entity) HasMany(name string, target *Entity, foreignKey string) *Entity {
	return e.AddRelation(&Relation{
		Name:         name,
		Target:       target,
		SourceColumn: e.PrimaryKey,
		TargetColumn: foreignKey,
		Many:         true,
	})
}

func (e *Entity) HasField(name string) bool {
	_, ok := e.fields[name]
	return ok
}

func (e *Entity) HasRelation(name string) bool {
	_, ok := e.relations[name]
	return ok
}

func (e *Entity) Related(relation string) (EntityMetadata, bool) {
	r, ok := e.relations[relation]
	if !ok {
		return nil, false
	}
	return r.Target, true
}

// Relation returns the named relation
func (e *Entity) Relation(name string) (*Relation, bool) {
	r, ok := e.relations[name]
	return r, ok
}

// Fields returns column names in registration order
func (e *Entity) Fields() []string {
	return append([]string(nil), e.order...)
}

// Relations returns relation names sorted alphabetically
func (e *Entity) Relations() []string {
	names := make([]string, 0, len(e.relations))
	for name := range e.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog holds every entity of a database, keyed by table name
type Catalog struct {
	entities map[string]*Entity
}

func NewCatalog() *Catalog {
	return &Catalog{entities: make(map[string]*Entity)}
}

func (c *Catalog) Add(e *Entity) {
	c.entities[e.Name] = e
}

func (c *Catalog) Get(name string) (*Entity, bool) {
	e, ok := c.entities[name]
	return e, ok
}

// Names returns table names sorted alphabetically
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entities))
	for name := range c.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
