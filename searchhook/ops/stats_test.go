package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonibytes/searchhook/searchhook/query"
)

func TestStatsRejectsHasManyWithoutPrimaryKey(t *testing.T) {
	events := query.NewEntity("events", "", "kind", "amount")
	tags := query.NewEntity("tags", "", "name", "kind")
	events.AddRelation(&query.Relation{Name: "tags", Target: tags, SourceColumn: "kind", TargetColumn: "kind", Many: true})

	sel := query.From(events).Join("tags").(*query.Select)
	_, err := Stats(context.Background(), nil, nil, sel, "amount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary key on events")

	_, err = Stats(context.Background(), nil, nil, query.From(events), "nope")
	assert.EqualError(t, err, "unknown field: nope")
}
