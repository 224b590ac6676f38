package searchhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonibytes/searchhook/searchhook/storage"
)

func TestBuildCatalog(t *testing.T) {
	cat := BuildCatalog([]storage.Table{
		{Name: "categories", PrimaryKey: "id", Columns: []string{"id", "name"}},
		{
			Name:       "posts",
			PrimaryKey: "id",
			Columns:    []string{"id", "title", "category_id", "editor"},
			ForeignKeys: []storage.ForeignKey{
				{Column: "category_id", RefTable: "categories", RefColumn: "id"},
				{Column: "editor", RefTable: "users"},
				{Column: "missing_id", RefTable: "nowhere"},
			},
		},
		{Name: "users", PrimaryKey: "id", Columns: []string{"id", "email"}},
	})
	require.Equal(t, []string{"categories", "posts", "users"}, cat.Names())

	posts, ok := cat.Get("posts")
	require.True(t, ok)
	assert.Equal(t, []string{"category", "users"}, posts.Relations())

	r, ok := posts.Relation("category")
	require.True(t, ok)
	assert.Equal(t, "categories", r.Target.Name)
	assert.Equal(t, "category_id", r.SourceColumn)
	assert.Equal(t, "id", r.TargetColumn)
	assert.False(t, r.Many)

	// no _id suffix: named after the referenced table, joined on its primary key
	r, ok = posts.Relation("users")
	require.True(t, ok)
	assert.Equal(t, "editor", r.SourceColumn)
	assert.Equal(t, "id", r.TargetColumn)

	categories, _ := cat.Get("categories")
	r, ok = categories.Relation("posts")
	require.True(t, ok)
	assert.True(t, r.Many)
	assert.Equal(t, "id", r.SourceColumn)
	assert.Equal(t, "category_id", r.TargetColumn)
}

func TestBuildCatalogSkipsCollisions(t *testing.T) {
	cat := BuildCatalog([]storage.Table{
		{Name: "authors", PrimaryKey: "id", Columns: []string{"id", "posts"}},
		{
			Name:       "posts",
			PrimaryKey: "id",
			Columns:    []string{"id", "author", "author_id"},
			ForeignKeys: []storage.ForeignKey{
				{Column: "author_id", RefTable: "authors", RefColumn: "id"},
			},
		},
	})

	posts, _ := cat.Get("posts")
	assert.False(t, posts.HasRelation("author"), "column author shadows the relation")

	authors, _ := cat.Get("authors")
	assert.False(t, authors.HasRelation("posts"), "column posts shadows the relation")
}

func TestBuildCatalogSelfReference(t *testing.T) {
	cat := BuildCatalog([]storage.Table{
		{
			Name:       "categories",
			PrimaryKey: "id",
			Columns:    []string{"id", "name", "parent_id"},
			ForeignKeys: []storage.ForeignKey{
				{Column: "parent_id", RefTable: "categories", RefColumn: "id"},
			},
		},
		{
			Name:       "nodes",
			PrimaryKey: "id",
			Columns:    []string{"id", "ref"},
			ForeignKeys: []storage.ForeignKey{
				{Column: "ref", RefTable: "nodes", RefColumn: "id"},
			},
		},
	})

	categories, _ := cat.Get("categories")
	assert.Equal(t, []string{"parent"}, categories.Relations())
	r, ok := categories.Relation("parent")
	require.True(t, ok)
	assert.Same(t, categories, r.Target)
	assert.Equal(t, "parent_id", r.SourceColumn)

	nodes, _ := cat.Get("nodes")
	assert.Empty(t, nodes.Relations(), "no relation may share the root table name")
}
