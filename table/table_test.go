package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesInitialState(t *testing.T) {
	_, err := New(numbered(3), testSchema(t), NewState(SortKey{ColumnID: "email"}, 10))
	assert.ErrorIs(t, err, ErrColumnNotSortable)

	_, err = New(numbered(3), testSchema(t), NewState(SortKey{ColumnID: "name"}, 0))
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestTable_Dispatch(t *testing.T) {
	tbl, err := New(numbered(30), testSchema(t), NewState(SortKey{ColumnID: "rank"}, 10))
	require.NoError(t, err)

	require.NoError(t, tbl.Dispatch(NextPage{}, NextPage{}))
	view, err := tbl.View()
	require.NoError(t, err)
	assert.Equal(t, 2, view.PageIndex)
	assert.Equal(t, "Post 21", view.Rows[0].Record.Name)

	require.NoError(t, tbl.Dispatch(SetFilter{ColumnID: "name", Value: "post 2"}))
	view, err = tbl.View()
	require.NoError(t, err)
	assert.Equal(t, 0, view.PageIndex)
	assert.Equal(t, 11, view.TotalRows)

	require.NoError(t, tbl.Dispatch(ToggleSort{ColumnID: "rank"}))
	view, err = tbl.View()
	require.NoError(t, err)
	assert.Equal(t, "Post 29", view.Rows[0].Record.Name)
}

func TestTable_DispatchIsAtomic(t *testing.T) {
	tbl, err := New(numbered(30), testSchema(t), NewState(SortKey{ColumnID: "rank"}, 10))
	require.NoError(t, err)

	err = tbl.Dispatch(NextPage{}, ToggleSort{ColumnID: "email"})
	assert.ErrorIs(t, err, ErrColumnNotSortable)
	assert.Equal(t, 0, tbl.State().Pagination.PageIndex)
}

func TestTable_StateIsACopy(t *testing.T) {
	tbl, err := New(numbered(3), testSchema(t), NewState(SortKey{ColumnID: "rank"}, 10))
	require.NoError(t, err)

	state := tbl.State()
	state.Visibility["email"] = false
	state.Filters = append(state.Filters, ColumnFilter{ColumnID: "name", Value: "x"})

	assert.True(t, tbl.State().Visibility.IsVisible("email"))
	assert.Empty(t, tbl.State().Filters)
}

func TestTable_DeleteSelected(t *testing.T) {
	records := numbered(12)
	schema := testSchema(t).WithRowID(func(r item) string { return r.ID })
	tbl, err := New(records, schema, NewState(SortKey{ColumnID: "rank"}, 5))
	require.NoError(t, err)
	generation := tbl.Generation()

	require.NoError(t, tbl.Dispatch(
		NextPage{},
		SetRowSelected{RowID: "7", Selected: true},
		SetRowSelected{RowID: "12", Selected: true},
	))
	assert.Equal(t, 1, tbl.State().Pagination.PageIndex)

	assert.Equal(t, 2, tbl.DeleteSelected())
	assert.Len(t, tbl.Records(), 10)
	assert.Len(t, records, 12, "the original collection stays untouched")
	assert.Equal(t, "7", records[6].ID)
	assert.NotEqual(t, generation, tbl.Generation())
	assert.Empty(t, tbl.State().Selection)
	assert.Equal(t, 0, tbl.State().Pagination.PageIndex)

	view, err := tbl.View()
	require.NoError(t, err)
	assert.Equal(t, 10, view.TotalRows)
	assert.Equal(t, 2, view.PageCount)

	generation = tbl.Generation()
	assert.Equal(t, 0, tbl.DeleteSelected())
	assert.Equal(t, generation, tbl.Generation())
}

func TestTable_ReplaceRecords(t *testing.T) {
	tbl, err := New(numbered(30), testSchema(t), NewState(SortKey{ColumnID: "rank"}, 10))
	require.NoError(t, err)
	require.NoError(t, tbl.Dispatch(LastPage{}, SetRowSelected{RowID: "3", Selected: true}, SetFilter{ColumnID: "email", Value: ""}))
	require.NoError(t, tbl.Dispatch(LastPage{}))

	tbl.ReplaceRecords(nil)
	view, err := tbl.View()
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalRows)
	assert.Equal(t, 0, view.PageIndex)
	assert.Empty(t, tbl.State().Selection)
}

func TestTable_Facets(t *testing.T) {
	tbl, err := New(numbered(3), testSchema(t), NewState(SortKey{ColumnID: "rank"}, 10))
	require.NoError(t, err)

	facets, err := tbl.Facets("rank")
	require.NoError(t, err)
	assert.Len(t, facets, 3)
}
