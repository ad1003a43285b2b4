package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/octotable/octotable"
)

func TestComputeView_Filter(t *testing.T) {
	schema := testSchema(t)
	records := []item{
		{ID: "1", Name: "France", Email: "paris@example.com"},
		{ID: "2", Name: "Germany", Email: "berlin@example.com"},
		{ID: "3", Name: "Poland", Email: "warsaw@example.fr"},
	}

	tests := []struct {
		name    string
		filters FilterState
		want    []string
	}{
		{
			name:    "no filters",
			filters: FilterState{},
			want:    []string{"France", "Germany", "Poland"},
		},
		{
			name:    "default predicate is case insensitive substring",
			filters: FilterState{{ColumnID: "email", Value: "BERLIN"}},
			want:    []string{"Germany"},
		},
		{
			name:    "custom predicate looks at name and email",
			filters: FilterState{{ColumnID: "name", Value: "fr"}},
			want:    []string{"France", "Poland"},
		},
		{
			name:    "filters on different columns are combined with and",
			filters: FilterState{{ColumnID: "name", Value: "fr"}, {ColumnID: "email", Value: "paris"}},
			want:    []string{"France"},
		},
		{
			name:    "empty value is no constraint",
			filters: FilterState{{ColumnID: "email", Value: ""}},
			want:    []string{"France", "Germany", "Poland"},
		},
		{
			name:    "nothing matches",
			filters: FilterState{{ColumnID: "email", Value: "tokyo"}},
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(SortKey{ColumnID: "id"}, 10)
			state.Filters = tt.filters

			view, err := ComputeView(records, schema, state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(view.Rows))
			assert.Equal(t, len(tt.want), view.TotalRows)
		})
	}
}

func TestComputeView_FilterByName(t *testing.T) {
	schema, err := NewSchema(Column[item]{
		ID:       "name",
		Accessor: func(r item) octotable.Value { return octotable.NewString(r.Name) },
		Sortable: true,
	})
	require.NoError(t, err)
	state := NewState(SortKey{ColumnID: "name"}, 10)
	state.Filters = FilterState{{ColumnID: "name", Value: "fr"}}

	view, err := ComputeView([]item{{Name: "France"}, {Name: "Germany"}}, schema, state)
	require.NoError(t, err)
	assert.Equal(t, []string{"France"}, names(view.Rows))
}

func TestComputeView_Sort(t *testing.T) {
	schema := testSchema(t)

	tests := []struct {
		name    string
		records []item
		sort    SortKey
		want    []string
	}{
		{
			name:    "numbers ascending",
			records: []item{{ID: "a", Rank: 10}, {ID: "b", Rank: 2}, {ID: "c", Rank: 7}},
			sort:    SortKey{ColumnID: "rank"},
			want:    []string{"b", "c", "a"},
		},
		{
			name:    "numbers descending",
			records: []item{{ID: "a", Rank: 10}, {ID: "b", Rank: 2}, {ID: "c", Rank: 7}},
			sort:    SortKey{ColumnID: "rank", Direction: Descending},
			want:    []string{"a", "c", "b"},
		},
		{
			name:    "ties keep their order",
			records: []item{{ID: "a", Rank: 1}, {ID: "b", Rank: 1}, {ID: "c", Rank: 2}},
			sort:    SortKey{ColumnID: "rank"},
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "ties keep their order when descending",
			records: []item{{ID: "a", Rank: 1}, {ID: "b", Rank: 2}, {ID: "c", Rank: 1}},
			sort:    SortKey{ColumnID: "rank", Direction: Descending},
			want:    []string{"b", "a", "c"},
		},
		{
			name:    "strings are collated with numbers",
			records: []item{{ID: "x", Name: "Post 10"}, {ID: "y", Name: "Post 2"}, {ID: "z", Name: "post 1"}},
			sort:    SortKey{ColumnID: "name"},
			want:    []string{"z", "y", "x"},
		},
		{
			name:    "accents collate next to their base letter",
			records: []item{{ID: "1", Name: "Zambia"}, {ID: "2", Name: "Åland Islands"}, {ID: "3", Name: "Belgium"}},
			sort:    SortKey{ColumnID: "name"},
			want:    []string{"2", "3", "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := ComputeView(tt.records, schema, NewState(tt.sort, 10))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(view.Rows))
		})
	}
}

func TestComputeView_CustomCompare(t *testing.T) {
	schema, err := NewSchema(Column[item]{
		ID:       "name",
		Accessor: func(r item) octotable.Value { return octotable.NewString(r.Name) },
		Compare: func(a, b item) int {
			return len(a.Name) - len(b.Name)
		},
		Sortable: true,
	})
	require.NoError(t, err)
	records := []item{{Name: "ccc"}, {Name: "a"}, {Name: "bb"}, {Name: "dd"}}

	view, err := ComputeView(records, schema, NewState(SortKey{ColumnID: "name"}, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bb", "dd", "ccc"}, names(view.Rows))

	view, err = ComputeView(records, schema, NewState(SortKey{ColumnID: "name", Direction: Descending}, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"ccc", "bb", "dd", "a"}, names(view.Rows))
}

func TestComputeView_Pagination(t *testing.T) {
	schema := testSchema(t)

	tests := []struct {
		name          string
		total         int
		pageSize      int
		pageIndex     int
		wantPageCount int
		wantPageIndex int
		wantFirst     int
		wantLast      int
		wantPrev      bool
		wantNext      bool
	}{
		{name: "first page", total: 23, pageSize: 10, pageIndex: 0, wantPageCount: 3, wantPageIndex: 0, wantFirst: 1, wantLast: 10, wantNext: true},
		{name: "middle page", total: 23, pageSize: 10, pageIndex: 1, wantPageCount: 3, wantPageIndex: 1, wantFirst: 11, wantLast: 20, wantPrev: true, wantNext: true},
		{name: "partial last page", total: 23, pageSize: 10, pageIndex: 2, wantPageCount: 3, wantPageIndex: 2, wantFirst: 21, wantLast: 23, wantPrev: true},
		{name: "past the end is clamped", total: 23, pageSize: 10, pageIndex: 5, wantPageCount: 3, wantPageIndex: 2, wantFirst: 21, wantLast: 23, wantPrev: true},
		{name: "negative is clamped", total: 23, pageSize: 10, pageIndex: -3, wantPageCount: 3, wantPageIndex: 0, wantFirst: 1, wantLast: 10, wantNext: true},
		{name: "exact multiple", total: 20, pageSize: 10, pageIndex: 1, wantPageCount: 2, wantPageIndex: 1, wantFirst: 11, wantLast: 20, wantPrev: true},
		{name: "empty collection has one page", total: 0, pageSize: 10, pageIndex: 0, wantPageCount: 1, wantPageIndex: 0, wantFirst: 0, wantLast: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(SortKey{ColumnID: "rank"}, tt.pageSize)
			state.Pagination.PageIndex = tt.pageIndex

			view, err := ComputeView(numbered(tt.total), schema, state)
			require.NoError(t, err)
			assert.Equal(t, tt.total, view.TotalRows)
			assert.Equal(t, tt.wantPageCount, view.PageCount)
			assert.Equal(t, tt.wantPageIndex, view.PageIndex)
			assert.Equal(t, tt.wantFirst, view.FirstRow)
			assert.Equal(t, tt.wantLast, view.LastRow)
			assert.Equal(t, tt.wantPrev, view.CanPreviousPage)
			assert.Equal(t, tt.wantNext, view.CanNextPage)
			if tt.wantLast > 0 {
				assert.Len(t, view.Rows, tt.wantLast-tt.wantFirst+1)
			} else {
				assert.Empty(t, view.Rows)
			}
		})
	}
}

func TestComputeView_Visibility(t *testing.T) {
	schema := testSchema(t)
	records := []item{{ID: "1", Name: "Leanne", Email: "leanne@example.com", Rank: 1}}

	state := NewState(SortKey{ColumnID: "name"}, 10)
	state.Visibility = VisibilityState{"email": false, "rank": true}
	state.Filters = FilterState{{ColumnID: "email", Value: "leanne@"}}

	view, err := ComputeView(records, schema, state)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1, "hidden columns still filter")
	assert.Equal(t, []Cell{
		{ColumnID: "id", Value: octotable.NewString("1")},
		{ColumnID: "name", Value: octotable.NewString("Leanne")},
		{ColumnID: "rank", Value: octotable.NewInt(1)},
	}, view.Rows[0].Cells)

	require.Len(t, view.Headers, 3)
	assert.Equal(t, Header{ColumnID: "name", Label: "Name", Sortable: true, Hideable: true, Sorted: true, Direction: Ascending}, view.Headers[1])
	assert.False(t, view.Headers[0].Sorted)
}

func TestComputeView_ConfigurationErrors(t *testing.T) {
	schema := testSchema(t)

	tests := []struct {
		name    string
		mutate  func(state *State)
		wantErr error
	}{
		{name: "zero page size", mutate: func(s *State) { s.Pagination.PageSize = 0 }, wantErr: ErrInvalidPageSize},
		{name: "negative page size", mutate: func(s *State) { s.Pagination.PageSize = -10 }, wantErr: ErrInvalidPageSize},
		{name: "no sort key", mutate: func(s *State) { s.Sorting = nil }, wantErr: ErrInvalidSort},
		{name: "two sort keys", mutate: func(s *State) { s.Sorting = append(s.Sorting, SortKey{ColumnID: "rank"}) }, wantErr: ErrInvalidSort},
		{name: "unknown sort column", mutate: func(s *State) { s.Sorting = SortState{{ColumnID: "nope"}} }, wantErr: ErrUnknownColumn},
		{name: "unsortable sort column", mutate: func(s *State) { s.Sorting = SortState{{ColumnID: "email"}} }, wantErr: ErrColumnNotSortable},
		{name: "unknown filter column", mutate: func(s *State) { s.Filters = FilterState{{ColumnID: "nope", Value: "x"}} }, wantErr: ErrUnknownColumn},
		{name: "unknown visibility column", mutate: func(s *State) { s.Visibility = VisibilityState{"nope": false} }, wantErr: ErrUnknownColumn},
		{name: "hidden unhideable column", mutate: func(s *State) { s.Visibility = VisibilityState{"id": false} }, wantErr: ErrColumnNotHideable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(SortKey{ColumnID: "name"}, 10)
			tt.mutate(&state)
			_, err := ComputeView(numbered(3), schema, state)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeView_AccessorPanicsPropagate(t *testing.T) {
	schema, err := NewSchema(Column[*item]{
		ID:       "name",
		Accessor: func(r *item) octotable.Value { return octotable.NewString(r.Name) },
		Sortable: true,
	})
	require.NoError(t, err)

	assert.Panics(t, func() {
		ComputeView([]*item{{Name: "a"}, nil}, schema, NewState(SortKey{ColumnID: "name"}, 10))
	})
}

func TestComputeView_EmptyCollection(t *testing.T) {
	view, err := ComputeView(nil, testSchema(t), NewState(SortKey{ColumnID: "name"}, 10))
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.Equal(t, 0, view.TotalRows)
	assert.Equal(t, 1, view.PageCount)
	assert.False(t, view.CanNextPage)
	assert.False(t, view.CanPreviousPage)
}

func TestComputeView_DoesNotModifyInput(t *testing.T) {
	records := []item{{ID: "b", Rank: 2}, {ID: "a", Rank: 1}}
	state := NewState(SortKey{ColumnID: "rank"}, 1)
	state.Pagination.PageIndex = 7
	before := state.Fingerprint()

	_, err := ComputeView(records, testSchema(t), state)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "b", Rank: 2}, {ID: "a", Rank: 1}}, records)
	assert.Equal(t, before, state.Fingerprint())
	assert.Equal(t, 7, state.Pagination.PageIndex)
}

func TestComputeView_Posts(t *testing.T) {
	state := NewState(SortKey{ColumnID: "rank"}, 6)
	state, err := Reduce(numbered(12), testSchema(t), state, SetFilter{ColumnID: "name", Value: "Post 1"})
	require.NoError(t, err)

	view, err := ComputeView(numbered(12), testSchema(t), state)
	require.NoError(t, err)
	assert.Equal(t, []string{"Post 1", "Post 10", "Post 11", "Post 12"}, names(view.Rows))
	assert.Equal(t, 4, view.TotalRows)
	assert.Equal(t, 1, view.PageCount)
	assert.Equal(t, 0, view.PageIndex)
}

func TestComputeView_Selection(t *testing.T) {
	state := NewState(SortKey{ColumnID: "rank"}, 2)
	state.Selection = RowSelection{"0": true, "2": true, "3": false}

	view, err := ComputeView(numbered(4), testSchema(t), state)
	require.NoError(t, err)
	assert.Equal(t, 2, view.SelectedCount)
	require.Len(t, view.Rows, 2)
	assert.True(t, view.Rows[0].Selected)
	assert.False(t, view.Rows[1].Selected)
}

func TestView_Page(t *testing.T) {
	state := NewState(SortKey{ColumnID: "rank", Direction: Descending}, 2)
	state.Visibility = VisibilityState{"email": false, "name": false}
	state.Selection = RowSelection{"2": true}

	view, err := ComputeView(numbered(3), testSchema(t), state)
	require.NoError(t, err)
	page := view.Page()

	assert.Equal(t, []PageRow{
		{ID: "2", Selected: true, Values: []octotable.Value{octotable.NewString("3"), octotable.NewInt(3)}},
		{ID: "1", Values: []octotable.Value{octotable.NewString("2"), octotable.NewInt(2)}},
	}, page.Rows)
	assert.Len(t, page.Headers, 2)
	assert.Equal(t, 3, page.TotalRows)
	assert.Equal(t, 2, page.PageCount)
	assert.True(t, page.CanNextPage)
	assert.Equal(t, SortKey{ColumnID: "rank", Direction: Descending}, page.Sort)
	assert.Equal(t, 1, page.SelectedCount)
}
