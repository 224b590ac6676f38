package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sherrors "github.com/nonibytes/searchhook/searchhook/errors"
	"github.com/nonibytes/searchhook/searchhook/operator"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		path string
		op   operator.Operator
	}{
		{"price_eq", "price", operator.Eq},
		{"status_not_eq", "status", operator.NotEq},
		{"title_ilike", "title", operator.ILike},
		{"title_like", "title", operator.Like},
		{"deleted_at_is_null", "deleted_at", operator.IsNull},
		{"published_is_true", "published", operator.IsTrue},
		{"views_between", "views", operator.Between},
		{"id_in", "id", operator.In},
		{"category_name_or_name_and_body_like", "category_name_or_name_and_body", operator.Like},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			k, err := Parse(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.raw, k.Raw)
			assert.Equal(t, tc.path, k.Path)
			assert.Equal(t, tc.op, k.Operator)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{"totally_unknown_suffix", "eq", "_eq", "", "price"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.True(t, sherrors.IsKind(err, sherrors.ErrMalformedKey))
		})
	}

	_, err := Parse("totally_unknown_suffix")
	for _, name := range operator.Names() {
		assert.Contains(t, err.Error(), name)
	}
}

func TestSplit(t *testing.T) {
	p, a := operator.Primary, operator.Alternative
	cases := []struct {
		path string
		want []Segment
	}{
		{"title", []Segment{{"title", p}}},
		{"name_and_body", []Segment{{"name", p}, {"body", p}}},
		{"name_or_body", []Segment{{"name", p}, {"body", a}}},
		{"a_or_b_or_c", []Segment{{"a", p}, {"b", a}, {"c", a}}},
		{"category_name_or_name_and_body", []Segment{{"category_name", p}, {"name", a}, {"body", p}}},
		{"name_or_name", []Segment{{"name", p}}},
		{"name_and_", []Segment{{"name", p}}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, Split(tc.path))
		})
	}
}
