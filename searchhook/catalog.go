package searchhook

import (
	"strings"

	"github.com/nonibytes/searchhook/searchhook/query"
	"github.com/nonibytes/searchhook/searchhook/storage"
)

// BuildCatalog turns introspected tables into entity metadata.
//
// Every single-column foreign key posts.category_id -> categories.id adds a
// belongs-to relation on posts and a has-many relation on categories. The
// belongs-to name is the column without its "_id" suffix, falling back to the
// referenced table; the has-many name is the referencing table. A relation
// name that collides with a column, an earlier relation or the entity's own
// table name is skipped: the root is addressed by its table name in SQL, so a
// join aliased the same way would be ambiguous. A self-referential key such
// as categories.parent_id therefore yields only the belongs-to side.
func BuildCatalog(tables []storage.Table) *query.Catalog {
	cat := query.NewCatalog()
	for _, t := range tables {
		cat.Add(query.NewEntity(t.Name, t.PrimaryKey, t.Columns...))
	}

	for _, t := range tables {
		source, _ := cat.Get(t.Name)
		for _, fk := range t.ForeignKeys {
			target, ok := cat.Get(fk.RefTable)
			if !ok {
				continue
			}
			refColumn := fk.RefColumn
			if refColumn == "" {
				refColumn = target.PrimaryKey
			}
			if refColumn == "" {
				continue
			}

			name := belongsToName(fk)
			if available(source, name) {
				source.AddRelation(&query.Relation{
					Name:         name,
					Target:       target,
					SourceColumn: fk.Column,
					TargetColumn: refColumn,
				})
			}
			if available(target, t.Name) {
				target.AddRelation(&query.Relation{
					Name:         t.Name,
					Target:       source,
					SourceColumn: refColumn,
					TargetColumn: fk.Column,
					Many:         true,
				})
			}
		}
	}
	return cat
}

func belongsToName(fk storage.ForeignKey) string {
	if name, ok := strings.CutSuffix(fk.Column, DefaultForeignKey); ok && name != "" {
		return name
	}
	return fk.RefTable
}

func available(e *query.Entity, name string) bool {
	return name != e.Name && !e.HasField(name) && !e.HasRelation(name)
}
