package searchhook

import (
	"sort"

	"github.com/sirupsen/logrus"

	sherrors "github.com/nonibytes/searchhook/searchhook/errors"
	"github.com/nonibytes/searchhook/searchhook/key"
	"github.com/nonibytes/searchhook/searchhook/operator"
	"github.com/nonibytes/searchhook/searchhook/path"
	"github.com/nonibytes/searchhook/searchhook/query"
)

// Filters maps filter keys such as "category_name_or_title_like" to terms
type Filters map[string]any

// Keys returns the filter keys in sorted order
func (f Filters) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dropped is a key segment that matched no field or relation
type Dropped struct {
	Key     string `json:"key"`
	Segment string `json:"segment"`
}

// Report describes what a compilation applied and what it skipped
type Report struct {
	Applied []path.Descriptor
	Dropped []Dropped
}

// Compiler folds filters onto queryables
type Compiler struct {
	log *logrus.Entry
}

// NewCompiler creates a compiler. A nil logger discards output.
func NewCompiler(log *logrus.Entry) *Compiler {
	if log == nil {
		log = discardLogger()
	}
	return &Compiler{log: log}
}

// Compile applies filters to base using meta for path resolution.
// Empty filters return base unchanged. Any error aborts the whole call and no
// queryable is returned.
func Compile(base query.Queryable, filters Filters, meta query.EntityMetadata) (query.Queryable, error) {
	q, _, err := NewCompiler(nil).Compile(base, filters, meta)
	return q, err
}

// Compile applies filters to base and reports the descriptors it applied and
// the segments it dropped.
func (c *Compiler) Compile(base query.Queryable, filters Filters, meta query.EntityMetadata) (query.Queryable, *Report, error) {
	report := &Report{}
	if len(filters) == 0 {
		return base, report, nil
	}

	descs, err := c.describe(filters, meta, report)
	if err != nil {
		return nil, nil, err
	}

	sort.SliceStable(descs, func(i, j int) bool {
		return descs[i].Combinator.Weight() < descs[j].Combinator.Weight()
	})

	q := base
	for _, d := range descs {
		q, err = fold(q, d)
		if err != nil {
			return nil, nil, sherrors.WithKey(err, d.Key)
		}
		if e, ok := q.(interface{ Err() error }); ok && e.Err() != nil {
			return nil, nil, &sherrors.Error{Kind: sherrors.ErrSchema, Message: "apply filter", Key: d.Key, Cause: e.Err()}
		}
	}
	report.Applied = descs
	return q, report, nil
}

// describe parses every key before resolving any, so a malformed key fails
// the call regardless of where it sorts.
func (c *Compiler) describe(filters Filters, meta query.EntityMetadata, report *Report) ([]path.Descriptor, error) {
	keys := filters.Keys()
	parsed := make([]key.Key, 0, len(keys))
	for _, raw := range keys {
		k, err := key.Parse(raw)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, k)
	}

	var descs []path.Descriptor
	for _, k := range parsed {
		term := filters[k.Raw]
		for _, seg := range key.Split(k.Path) {
			d, ok := path.NewDescriptor(k.Raw, seg.Path, k.Operator, seg.Combinator, term, meta)
			if !ok {
				report.Dropped = append(report.Dropped, Dropped{Key: k.Raw, Segment: seg.Path})
				c.log.WithError(sherrors.UnresolvedPath(k.Raw, seg.Path)).Warn("dropping filter segment")
				continue
			}
			descs = append(descs, d)
		}
	}
	return descs, nil
}

// fold applies one descriptor inside a fresh scope: prior predicates become a
// fixed base, relation hops are joined, then the operator predicate is added.
func fold(q query.Queryable, d path.Descriptor) (query.Queryable, error) {
	q = q.Scoped()
	for _, hop := range d.RelationPath {
		q = q.Join(hop)
	}
	return operator.Apply(q, d.Field, d.Operator, d.Term, d.Combinator)
}

// Operators returns the supported operator names
func Operators() []string {
	return operator.Names()
}

// CombinatorKeywords returns the supported combinator keywords
func CombinatorKeywords() []string {
	return operator.Keywords()
}
