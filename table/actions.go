package table

import (
	"fmt"
)

// Action is a single change to the view state. See Reduce.
type Action interface {
	action()
}

// SetFilter replaces the filter of a column. An empty value removes the filter.
type SetFilter struct {
	ColumnID string
	Value    string
}

type ClearFilter struct {
	ColumnID string
}

// ToggleSort makes the column the sort key in ascending order, or flips the direction if it already is.
type ToggleSort struct {
	ColumnID string
}

type SetPageSize struct {
	PageSize int
}

// GoToPage moves to the given zero-based page, clamped to the existing pages.
type GoToPage struct {
	PageIndex int
}

type FirstPage struct{}

type PreviousPage struct{}

type NextPage struct{}

type LastPage struct{}

type SetVisibility struct {
	ColumnID string
	Visible  bool
}

type SetRowSelected struct {
	RowID    string
	Selected bool
}

// SelectPageRows selects or unselects every row of the current page.
type SelectPageRows struct {
	Selected bool
}

type ResetSelection struct{}

func (SetFilter) action()      {}
func (ClearFilter) action()    {}
func (ToggleSort) action()     {}
func (SetPageSize) action()    {}
func (GoToPage) action()       {}
func (FirstPage) action()      {}
func (PreviousPage) action()   {}
func (NextPage) action()       {}
func (LastPage) action()       {}
func (SetVisibility) action()  {}
func (SetRowSelected) action() {}
func (SelectPageRows) action() {}
func (ResetSelection) action() {}

// Reduce applies the action to the state and returns the new state.
// The given state is never modified. Records are only consulted for the actions which depend
// on the filtered row count or the current page.
func Reduce[R any](records []R, schema *Schema[R], state State, action Action) (State, error) {
	out := state.clone()

	switch action := action.(type) {
	case SetFilter:
		if _, err := schema.Column(action.ColumnID); err != nil {
			return state, fmt.Errorf("couldn't set filter: %w", err)
		}
		if action.Value == "" {
			out.Filters = out.Filters.without(action.ColumnID)
		} else {
			out.Filters = out.Filters.with(action.ColumnID, action.Value)
		}
		out.Pagination.PageIndex = 0

	case ClearFilter:
		if _, err := schema.Column(action.ColumnID); err != nil {
			return state, fmt.Errorf("couldn't clear filter: %w", err)
		}
		out.Filters = out.Filters.without(action.ColumnID)
		out.Pagination.PageIndex = 0

	case ToggleSort:
		column, err := schema.Column(action.ColumnID)
		if err != nil {
			return state, fmt.Errorf("couldn't toggle sort: %w", err)
		}
		if !column.Sortable {
			return state, fmt.Errorf("couldn't toggle sort on '%s': %w", column.ID, ErrColumnNotSortable)
		}
		if current, ok := out.Sorting.Active(); ok && current.ColumnID == column.ID {
			out.Sorting = SortState{{ColumnID: column.ID, Direction: current.Direction.Flip()}}
		} else {
			out.Sorting = SortState{{ColumnID: column.ID, Direction: Ascending}}
		}

	case SetPageSize:
		if action.PageSize <= 0 {
			return state, fmt.Errorf("couldn't set page size to %d: %w", action.PageSize, ErrInvalidPageSize)
		}
		out.Pagination.PageSize = action.PageSize
		out.Pagination.PageIndex = 0

	case GoToPage, FirstPage, PreviousPage, NextPage, LastPage:
		count, err := filteredPageCount(records, schema, out)
		if err != nil {
			return state, err
		}
		current := clampPage(out.Pagination.PageIndex, count)
		var target int
		switch action := action.(type) {
		case GoToPage:
			target = action.PageIndex
		case FirstPage:
			target = 0
		case PreviousPage:
			target = current - 1
		case NextPage:
			target = current + 1
		case LastPage:
			target = count - 1
		}
		out.Pagination.PageIndex = clampPage(target, count)

	case SetVisibility:
		column, err := schema.Column(action.ColumnID)
		if err != nil {
			return state, fmt.Errorf("couldn't set visibility: %w", err)
		}
		if !action.Visible && !column.Hideable {
			return state, fmt.Errorf("couldn't hide '%s': %w", column.ID, ErrColumnNotHideable)
		}
		out.Visibility[column.ID] = action.Visible

	case SetRowSelected:
		if !rowExists(records, schema, action.RowID) {
			return state, fmt.Errorf("couldn't select row '%s': %w", action.RowID, ErrUnknownRow)
		}
		if action.Selected {
			out.Selection[action.RowID] = true
		} else {
			delete(out.Selection, action.RowID)
		}

	case SelectPageRows:
		view, err := ComputeView(records, schema, out)
		if err != nil {
			return state, fmt.Errorf("couldn't compute current page: %w", err)
		}
		for _, row := range view.Rows {
			if action.Selected {
				out.Selection[row.ID] = true
			} else {
				delete(out.Selection, row.ID)
			}
		}

	case ResetSelection:
		out.Selection = RowSelection{}

	default:
		return state, fmt.Errorf("couldn't apply %T: %w", action, ErrUnknownAction)
	}

	return out, nil
}

func filteredPageCount[R any](records []R, schema *Schema[R], state State) (int, error) {
	if state.Pagination.PageSize <= 0 {
		return 0, fmt.Errorf("couldn't compute page count: %w", ErrInvalidPageSize)
	}
	filtered, err := filterRecords(records, schema, state.Filters, "")
	if err != nil {
		return 0, fmt.Errorf("couldn't filter records: %w", err)
	}
	return pageCount(len(filtered), state.Pagination.PageSize), nil
}

func rowExists[R any](records []R, schema *Schema[R], rowID string) bool {
	for i := range records {
		if schema.RowID(i, records[i]) == rowID {
			return true
		}
	}
	return false
}
