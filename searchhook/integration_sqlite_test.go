package searchhook_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/nonibytes/searchhook/searchhook"
	"github.com/nonibytes/searchhook/searchhook/ops"
	"github.com/nonibytes/searchhook/searchhook/storage/sqlite"
)

const fixtureSQL = `
CREATE TABLE categories (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	parent_id INTEGER REFERENCES categories(id)
);
CREATE TABLE posts (
	id          INTEGER PRIMARY KEY,
	title       TEXT NOT NULL,
	body        TEXT NOT NULL,
	views       INTEGER NOT NULL,
	published   INTEGER NOT NULL,
	category_id INTEGER REFERENCES categories(id),
	deleted_at  TEXT
);
INSERT INTO categories (id, name, parent_id) VALUES (1, 'Go', NULL), (2, 'Ruby', NULL), (3, 'Rust', 1);
INSERT INTO posts (id, title, body, views, published, category_id, deleted_at) VALUES
	(1, 'Hello Go',  'intro to go',      10, 1, 1,    NULL),
	(2, 'Ruby tips', 'blocks and procs', 20, 0, 2,    NULL),
	(3, 'Go tips',   'channels',         30, 1, 1,    '2024-01-01'),
	(4, 'Misc',      '100% off_sale',    40, 1, NULL, NULL),
	(5, 'ruby gems', 'GEMS',             50, 1, 2,    NULL);
`

func newStore(t *testing.T) *searchhook.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "blog.db")
	db, err := sql.Open(sqlite.DriverModernc, dbPath)
	require.NoError(t, err)
	_, err = db.Exec(fixtureSQL)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	opts := searchhook.DefaultStoreOptions()
	opts.Logger = logrus.NewEntry(logger).WithField("test", t.Name())

	st, err := searchhook.Open(context.Background(), sqlite.New(dbPath), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func ids(t *testing.T, rows []ops.Row) []int64 {
	t.Helper()
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		id, ok := r["id"].(int64)
		require.True(t, ok, "id is %T", r["id"])
		out = append(out, id)
	}
	return out
}

func TestSearch_SQLite(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		filters searchhook.Filters
		want    []int64
	}{
		{"relation eq", searchhook.Filters{"category_name_eq": "Go"}, []int64{1, 3}},
		{"like is case sensitive", searchhook.Filters{"title_like": "Go"}, []int64{1, 3}},
		{"ilike folds case", searchhook.Filters{"title_ilike": "ruby"}, []int64{2, 5}},
		{"percent is literal", searchhook.Filters{"body_like": "100%"}, []int64{4}},
		{"underscore is literal", searchhook.Filters{"body_like": "_"}, []int64{4}},
		{"is null", searchhook.Filters{"deleted_at_is_null": true}, []int64{1, 2, 4, 5}},
		{"is not null", searchhook.Filters{"deleted_at_is_null": false}, []int64{3}},
		{"between", searchhook.Filters{"views_between": []any{15, 35}}, []int64{2, 3}},
		{"in", searchhook.Filters{"id_in": []any{1, 5}}, []int64{1, 5}},
		{"empty in", searchhook.Filters{"id_in": []any{}}, []int64{}},
		{"is true", searchhook.Filters{"published_is_true": true}, []int64{1, 3, 4, 5}},
		{"is true false", searchhook.Filters{"published_is_true": false}, []int64{2}},
		{"is present", searchhook.Filters{"deleted_at_is_present": true}, []int64{3}},
		{"is present false", searchhook.Filters{"deleted_at_is_present": false}, []int64{1, 2, 4, 5}},
		{
			"is present false with and",
			searchhook.Filters{"deleted_at_is_present": false, "views_gt": 15},
			[]int64{2, 4, 5},
		},
		{
			"is present false with or",
			searchhook.Filters{"deleted_at_is_present": false, "title_or_body_ilike": "go"},
			[]int64{1},
		},
		{"not eq", searchhook.Filters{"category_id_not_eq": 1}, []int64{2, 5}},
		{"or", searchhook.Filters{"title_or_body_ilike": "gems"}, []int64{5}},
		{"unresolved dropped", searchhook.Filters{"nonexistent_eq": 1}, []int64{1, 2, 3, 4, 5}},
		{
			"mixed combinators",
			searchhook.Filters{"views_gt": 15, "category_name_or_title_ilike": "go"},
			[]int64{1, 3},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := st.Search(ctx, "posts", tc.filters, searchhook.DefaultSearchOptions())
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(t, res.Rows))
			assert.False(t, res.HasMore)
		})
	}
}

func TestSearchPaging_SQLite(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	opts := searchhook.SearchOptions{Limit: 2, Explain: true}
	res, err := st.Search(ctx, "posts", nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(t, res.Rows))
	assert.True(t, res.HasMore)
	assert.Contains(t, res.ExplainSQL, "LIMIT 3")

	opts = searchhook.SearchOptions{Limit: 2, Offset: 4, Columns: []string{"id", "title"}}
	res, err = st.Search(ctx, "posts", nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(t, res.Rows))
	assert.False(t, res.HasMore)
	assert.Equal(t, "ruby gems", res.Rows[0]["title"])
	assert.NotContains(t, res.Rows[0], "body")
}

func TestHasManyIsDistinct_SQLite(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	filters := searchhook.Filters{"posts_views_gt": 0}
	res, err := st.Search(ctx, "categories", filters, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(t, res.Rows))

	n, err := st.Count(ctx, "categories", filters)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSelfReference_SQLite(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	e, err := st.Entity("categories")
	require.NoError(t, err)
	assert.Equal(t, []string{"parent", "posts"}, e.Relations())

	res, err := st.Search(ctx, "categories", searchhook.Filters{"parent_name_eq": "Go"}, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(t, res.Rows))

	res, err = st.Search(ctx, "posts", searchhook.Filters{"category_parent_name_eq": "Go"}, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Rows)

	// a relation named after the table itself would alias the join like the root
	res, err = st.Search(ctx, "categories", searchhook.Filters{"categories_name_eq": "Go"}, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(t, res.Rows))
	require.Len(t, res.Report.Dropped, 1)
	assert.Equal(t, "categories_name", res.Report.Dropped[0].Segment)

	stmt, _, _, err := st.Explain("categories", searchhook.Filters{"parent_name_eq": "Go"}, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Contains(t, stmt, `LEFT JOIN "categories" AS "parent" ON "parent"."id" = "categories"."parent_id"`)
}

func TestIsPresentFalseIsGrouped_SQLite(t *testing.T) {
	st := newStore(t)

	stmt, args, _, err := st.Explain("posts", searchhook.Filters{
		"deleted_at_is_present": false,
		"views_gt":              15,
	}, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Contains(t, stmt, `("posts"."deleted_at" = ? OR "posts"."deleted_at" IS NULL) AND "posts"."views" > ?`)
	assert.Equal(t, []any{false, 15}, args)
}

func TestCount_SQLite(t *testing.T) {
	st := newStore(t)
	n, err := st.Count(context.Background(), "posts", searchhook.Filters{"published_is_true": true})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStats_SQLite(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	res, err := st.Stats(ctx, "posts", searchhook.Filters{"published_is_true": true}, "views")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), res.Count)
	require.NotNil(t, res.Min)
	require.NotNil(t, res.Max)
	require.NotNil(t, res.Avg)
	assert.Equal(t, 10.0, *res.Min)
	assert.Equal(t, 50.0, *res.Max)
	assert.InDelta(t, 32.5, *res.Avg, 1e-9)

	res, err = st.Stats(ctx, "posts", searchhook.Filters{"id_in": []any{}}, "views")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Nil(t, res.Min)

	_, err = st.Stats(ctx, "posts", nil, "nope")
	assert.Error(t, err)
}

func TestExplain_SQLite(t *testing.T) {
	st := newStore(t)

	stmt, args, report, err := st.Explain("posts", searchhook.Filters{
		"category_name_eq": "Go",
		"nope_eq":          1,
	}, searchhook.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Contains(t, stmt, `LEFT JOIN "categories" AS "category"`)
	assert.Contains(t, stmt, "LIMIT 20")
	assert.Equal(t, []any{"Go"}, args)
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, "nope", report.Dropped[0].Segment)
}

func TestStoreErrors_SQLite(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Search(ctx, "comments", nil, searchhook.DefaultSearchOptions())
	assert.True(t, searchhook.IsKind(err, searchhook.ErrSchema))

	_, err = st.Search(ctx, "posts", searchhook.Filters{"title_contains": "x"}, searchhook.DefaultSearchOptions())
	assert.True(t, searchhook.IsKind(err, searchhook.ErrMalformedKey))

	_, err = st.Search(ctx, "posts", searchhook.Filters{"views_between": 3}, searchhook.DefaultSearchOptions())
	assert.True(t, searchhook.IsKind(err, searchhook.ErrOperandArity))

	e, err := st.Entity("posts")
	require.NoError(t, err)
	assert.Equal(t, "id", e.PrimaryKey)
	assert.Equal(t, []string{"category"}, e.Relations())
}
