package path

import (
	"strings"

	"github.com/nonibytes/searchhook/searchhook/operator"
	"github.com/nonibytes/searchhook/searchhook/query"
)

// Descriptor is one resolved filter, ready to fold onto a queryable
type Descriptor struct {
	Key          string
	RelationPath []string
	Field        string
	Operator     operator.Operator
	Combinator   operator.Combinator
	Term         any
}

// Resolve walks segment against meta. It returns the relation hops and the
// terminal field, or ok=false when the segment names nothing.
//
// A whole-segment field match wins over any relation. Otherwise every
// relation name ending on a "_" boundary is tried, longest first, and the
// first one whose remainder resolves in the related entity is taken.
func Resolve(segment string, meta query.EntityMetadata) (hops []string, field string, ok bool) {
	return resolve(segment, meta, nil)
}

func resolve(rest string, meta query.EntityMetadata, hops []string) ([]string, string, bool) {
	if rest == "" || meta == nil {
		return nil, "", false
	}
	if meta.HasField(rest) {
		return hops, rest, true
	}
	for _, cut := range relationCuts(rest) {
		name := rest[:cut]
		if !meta.HasRelation(name) {
			continue
		}
		related, ok := meta.Related(name)
		if !ok {
			continue
		}
		next := append(append([]string(nil), hops...), name)
		if h, f, ok := resolve(rest[cut+1:], related, next); ok {
			return h, f, true
		}
	}
	return nil, "", false
}

// relationCuts returns the index of every "_" in s that leaves a non-empty
// remainder, last first, so longer relation names are tried before shorter.
func relationCuts(s string) []int {
	var cuts []int
	for i := strings.LastIndexByte(s, '_'); i > 0; i = strings.LastIndexByte(s[:i], '_') {
		if i < len(s)-1 {
			cuts = append(cuts, i)
		}
	}
	return cuts
}

// NewDescriptor resolves segment and attaches the operator, combinator and
// term. It returns ok=false when the segment cannot be resolved.
func NewDescriptor(rawKey string, seg string, op operator.Operator, comb operator.Combinator, term any, meta query.EntityMetadata) (Descriptor, bool) {
	hops, field, ok := Resolve(seg, meta)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{
		Key:          rawKey,
		RelationPath: hops,
		Field:        field,
		Operator:     op,
		Combinator:   comb,
		Term:         term,
	}, true
}
