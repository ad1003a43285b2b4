package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cube2222/octotable/octotable"
)

type item struct {
	ID    string
	Name  string
	Email string
	Rank  int
}

func testSchema(t testing.TB) *Schema[item] {
	schema, err := NewSchema(
		Column[item]{
			ID:       "id",
			Accessor: func(r item) octotable.Value { return octotable.NewString(r.ID) },
			Sortable: true,
		},
		Column[item]{
			ID:       "name",
			Header:   "Name",
			Accessor: func(r item) octotable.Value { return octotable.NewString(r.Name) },
			Filter:   MatchAny(func(r item) string { return r.Name }, func(r item) string { return r.Email }),
			Sortable: true,
			Hideable: true,
		},
		Column[item]{
			ID:       "email",
			Accessor: func(r item) octotable.Value { return octotable.NewString(r.Email) },
			Hideable: true,
		},
		Column[item]{
			ID:       "rank",
			Accessor: func(r item) octotable.Value { return octotable.NewInt(r.Rank) },
			Sortable: true,
			Hideable: true,
		},
	)
	require.NoError(t, err)
	return schema
}

func numbered(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{
			ID:   fmt.Sprintf("%d", i+1),
			Name: fmt.Sprintf("Post %d", i+1),
			Rank: i + 1,
		}
	}
	return out
}

func names(rows []Row[item]) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].Record.Name
	}
	return out
}

func ids(rows []Row[item]) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].Record.ID
	}
	return out
}
