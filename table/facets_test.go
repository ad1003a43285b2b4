package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/octotable/octotable"
)

func TestFacets(t *testing.T) {
	records := []item{
		{ID: "1", Name: "b", Email: "x@one", Rank: 2},
		{ID: "2", Name: "a", Email: "y@two", Rank: 1},
		{ID: "3", Name: "b", Email: "z@one", Rank: 2},
		{ID: "4", Name: "c", Email: "w@two", Rank: 10},
	}
	schema := testSchema(t)

	tests := []struct {
		name    string
		column  string
		filters FilterState
		want    []Facet
	}{
		{
			name:   "counts distinct values in order",
			column: "rank",
			want: []Facet{
				{Value: octotable.NewInt(1), Count: 1},
				{Value: octotable.NewInt(2), Count: 2},
				{Value: octotable.NewInt(10), Count: 1},
			},
		},
		{
			name:    "other filters apply",
			column:  "rank",
			filters: FilterState{{ColumnID: "email", Value: "@one"}},
			want: []Facet{
				{Value: octotable.NewInt(2), Count: 2},
			},
		},
		{
			name:    "own filter is ignored",
			column:  "name",
			filters: FilterState{{ColumnID: "name", Value: "a"}},
			want: []Facet{
				{Value: octotable.NewString("a"), Count: 1},
				{Value: octotable.NewString("b"), Count: 2},
				{Value: octotable.NewString("c"), Count: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(SortKey{ColumnID: "rank"}, 10)
			state.Filters = tt.filters
			got, err := Facets(records, schema, state, tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Facets(records, schema, NewState(SortKey{ColumnID: "rank"}, 10), "missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFacets_CollationEqualValuesStayDistinct(t *testing.T) {
	schema := testSchema(t)

	tests := []struct {
		name  string
		names []string
		want  []Facet
	}{
		{
			name:  "leading zeros",
			names: []string{"v1", "v01", "v1"},
			want: []Facet{
				{Value: octotable.NewString("v01"), Count: 1},
				{Value: octotable.NewString("v1"), Count: 2},
			},
		},
		{
			name:  "ignorable control characters",
			names: []string{"ab", "a\x01b"},
			want: []Facet{
				{Value: octotable.NewString("a\x01b"), Count: 1},
				{Value: octotable.NewString("ab"), Count: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]item, len(tt.names))
			for i := range tt.names {
				records[i] = item{ID: tt.names[i], Name: tt.names[i]}
			}
			got, err := Facets(records, schema, NewState(SortKey{ColumnID: "rank"}, 10), "name")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
