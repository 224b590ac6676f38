package key

import (
	"strings"

	"github.com/nonibytes/searchhook/searchhook/operator"
)

// Segment is one leaf path of a key with its combinator tag
type Segment struct {
	Path       string
	Combinator operator.Combinator
}

// Split breaks a path expression into leaf segments.
//
// The expression is first split on "_and_"; every resulting group is
// Primary. Each group is then split on "_or_": its first piece stays
// Primary and every later piece becomes Alternative. A segment repeated
// within the expression keeps its first tag and position.
func Split(path string) []Segment {
	andSep := operator.Primary.Separator()
	orSep := operator.Alternative.Separator()

	var out []Segment
	seen := make(map[string]struct{})
	add := func(p string, c operator.Combinator) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, Segment{Path: p, Combinator: c})
	}

	for _, group := range strings.Split(path, andSep) {
		for i, piece := range strings.Split(group, orSep) {
			if i == 0 {
				add(piece, operator.Primary)
			} else {
				add(piece, operator.Alternative)
			}
		}
	}
	return out
}
