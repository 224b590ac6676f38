package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonibytes/searchhook/searchhook"
)

func TestParseFilters(t *testing.T) {
	got, err := ParseFilters([]string{
		"price_eq=100",
		"ratio_gt=0.5",
		"published_is_true=true",
		"deleted_at_eq=null",
		"name_like=Go tips",
		`title_eq="42"`,
		"id_in=1,2, 3",
		"views_between=[10,20]",
		"tag_in=go,rust",
		"body_like=a,b",
		"empty_eq=",
		"note_eq=x=y",
	})
	require.NoError(t, err)
	assert.Equal(t, searchhook.Filters{
		"price_eq":          int64(100),
		"ratio_gt":          0.5,
		"published_is_true": true,
		"deleted_at_eq":     nil,
		"name_like":         "Go tips",
		"title_eq":          "42",
		"id_in":             []any{int64(1), int64(2), int64(3)},
		"views_between":     []any{int64(10), int64(20)},
		"tag_in":            []any{"go", "rust"},
		"body_like":         "a,b",
		"empty_eq":          "",
		"note_eq":           "x=y",
	}, got)
}

func TestParseFiltersRejectsMissingKey(t *testing.T) {
	for _, arg := range []string{"price_eq", "=1", " =1"} {
		_, err := ParseFilters([]string{arg})
		assert.Error(t, err, arg)
	}
}
