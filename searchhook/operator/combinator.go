package operator

// Combinator selects how a predicate composes with those applied before it
type Combinator uint8

const (
	// Primary predicates are ANDed and applied first
	Primary Combinator = iota
	// Alternative predicates are ORed and applied after every Primary one
	Alternative

	numCombinators
)

func (c Combinator) String() string {
	switch c {
	case Primary:
		return "and"
	case Alternative:
		return "or"
	default:
		return "unknown"
	}
}

// Weight orders descriptors during the fold; lower applies first
func (c Combinator) Weight() int {
	return int(c)
}

// Keywords returns the combinator keywords used inside filter keys
func Keywords() []string {
	return []string{Primary.String(), Alternative.String()}
}

// Separator returns the token that splits paths for c, e.g. "_and_"
func (c Combinator) Separator() string {
	return "_" + c.String() + "_"
}
