package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nonibytes/searchhook/searchhook"
	"github.com/nonibytes/searchhook/searchhook/key"
	"github.com/nonibytes/searchhook/searchhook/operator"
)

// ParseFilters turns repeated key=value arguments into filters.
//
// A value that parses as JSON is used decoded, so 100, true, null and
// [1,2] keep their types; anything else is taken as a string. For in and
// between keys a value that is not a JSON array is split on commas.
func ParseFilters(args []string) (searchhook.Filters, error) {
	filters := make(searchhook.Filters, len(args))
	for _, arg := range args {
		k, raw, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --filter %q (expected key=value)", arg)
		}
		filters[k] = decodeTerm(k, raw)
	}
	return filters, nil
}

func decodeTerm(rawKey, raw string) any {
	v, ok := decodeJSON(raw)
	if _, isList := v.([]any); ok && isList {
		return v
	}
	if listOperator(rawKey) {
		parts := strings.Split(raw, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, decodeScalar(p))
		}
		return out
	}
	if ok {
		return v
	}
	return raw
}

func decodeScalar(raw string) any {
	if v, ok := decodeJSON(raw); ok {
		return v
	}
	return raw
}

func decodeJSON(raw string) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return nil, false
	}
	return normalizeNumbers(v), true
}

// normalizeNumbers maps JSON numbers to int64 when integral, float64 otherwise
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = normalizeNumbers(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalizeNumbers(t[k])
		}
		return t
	default:
		return v
	}
}

func listOperator(rawKey string) bool {
	k, err := key.Parse(rawKey)
	if err != nil {
		return false
	}
	return k.Operator == operator.In || k.Operator == operator.Between
}
