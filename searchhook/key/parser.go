package key

import (
	"strings"

	sherrors "github.com/nonibytes/searchhook/searchhook/errors"
	"github.com/nonibytes/searchhook/searchhook/operator"
)

// Key is a filter key split into its path expression and operator
type Key struct {
	Raw      string
	Path     string
	Operator operator.Operator
}

// Parse strips the longest operator suffix from raw.
// "category_name_not_eq" yields path "category_name" and operator not_eq.
func Parse(raw string) (Key, error) {
	for _, op := range operator.BySuffixLength() {
		suffix := "_" + op.String()
		if !strings.HasSuffix(raw, suffix) {
			continue
		}
		path := strings.TrimSuffix(raw, suffix)
		if path == "" {
			continue
		}
		return Key{Raw: raw, Path: path, Operator: op}, nil
	}
	return Key{}, sherrors.MalformedKey(raw, operator.Names())
}
