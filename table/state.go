package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// DefaultPageSizes are the page sizes offered to the user. The engine itself accepts any positive size.
var DefaultPageSizes = []int{5, 10, 25, 50}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

func (d Direction) Multiplier() int {
	if d == Descending {
		return -1
	}
	return 1
}

func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

type ColumnFilter struct {
	ColumnID string
	Value    string
}

// FilterState holds at most one filter value per column, in the order they were first set.
type FilterState []ColumnFilter

func (f FilterState) Get(columnID string) (string, bool) {
	for i := range f {
		if f[i].ColumnID == columnID {
			return f[i].Value, true
		}
	}
	return "", false
}

func (f FilterState) with(columnID, value string) FilterState {
	out := make(FilterState, 0, len(f)+1)
	replaced := false
	for i := range f {
		if f[i].ColumnID == columnID {
			out = append(out, ColumnFilter{ColumnID: columnID, Value: value})
			replaced = true
			continue
		}
		out = append(out, f[i])
	}
	if !replaced {
		out = append(out, ColumnFilter{ColumnID: columnID, Value: value})
	}
	return out
}

func (f FilterState) without(columnID string) FilterState {
	out := make(FilterState, 0, len(f))
	for i := range f {
		if f[i].ColumnID != columnID {
			out = append(out, f[i])
		}
	}
	return out
}

type SortKey struct {
	ColumnID  string
	Direction Direction
}

// SortState is an ordered list of sort keys. Only single key sorting is used,
// so once a view is set up it always holds exactly one key.
type SortState []SortKey

func (s SortState) Active() (SortKey, bool) {
	if len(s) == 0 {
		return SortKey{}, false
	}
	return s[0], true
}

type Pagination struct {
	PageIndex int
	PageSize  int
}

// VisibilityState maps column IDs to their visibility. Columns missing from the map are visible.
type VisibilityState map[string]bool

func (v VisibilityState) IsVisible(columnID string) bool {
	visible, ok := v[columnID]
	return !ok || visible
}

// RowSelection holds the IDs of selected rows.
type RowSelection map[string]bool

type State struct {
	Filters    FilterState
	Sorting    SortState
	Pagination Pagination
	Visibility VisibilityState
	Selection  RowSelection
}

// NewState returns the default state of a freshly mounted view:
// no filters, everything visible, nothing selected, first page.
func NewState(sort SortKey, pageSize int) State {
	return State{
		Filters: FilterState{},
		Sorting: SortState{sort},
		Pagination: Pagination{
			PageIndex: 0,
			PageSize:  pageSize,
		},
		Visibility: VisibilityState{},
		Selection:  RowSelection{},
	}
}

func (s State) clone() State {
	out := State{
		Filters:    make(FilterState, len(s.Filters)),
		Sorting:    make(SortState, len(s.Sorting)),
		Pagination: s.Pagination,
		Visibility: make(VisibilityState, len(s.Visibility)),
		Selection:  make(RowSelection, len(s.Selection)),
	}
	copy(out.Filters, s.Filters)
	copy(out.Sorting, s.Sorting)
	for k, v := range s.Visibility {
		out.Visibility[k] = v
	}
	for k, v := range s.Selection {
		out.Selection[k] = v
	}
	return out
}

// Fingerprint is a deterministic textual encoding of the state, usable as a memoization key.
func (s State) Fingerprint() string {
	builder := &strings.Builder{}
	builder.WriteString("filters:")
	for i := range s.Filters {
		builder.WriteString(strconv.Quote(s.Filters[i].ColumnID))
		builder.WriteString("=")
		builder.WriteString(strconv.Quote(s.Filters[i].Value))
		builder.WriteString(";")
	}
	builder.WriteString("sort:")
	for i := range s.Sorting {
		builder.WriteString(strconv.Quote(s.Sorting[i].ColumnID))
		builder.WriteString(" ")
		builder.WriteString(s.Sorting[i].Direction.String())
		builder.WriteString(";")
	}
	fmt.Fprintf(builder, "page:%d/%d;", s.Pagination.PageIndex, s.Pagination.PageSize)

	builder.WriteString("visibility:")
	for _, k := range sortedKeys(s.Visibility) {
		fmt.Fprintf(builder, "%s=%t;", strconv.Quote(k), s.Visibility[k])
	}
	builder.WriteString("selection:")
	for _, k := range sortedKeys(s.Selection) {
		if s.Selection[k] {
			builder.WriteString(strconv.Quote(k))
			builder.WriteString(";")
		}
	}
	return builder.String()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validateState checks that the state only references columns of the schema in a way they allow.
func validateState[R any](schema *Schema[R], state State) error {
	if state.Pagination.PageSize <= 0 {
		return fmt.Errorf("page size %d: %w", state.Pagination.PageSize, ErrInvalidPageSize)
	}
	if len(state.Sorting) != 1 {
		return fmt.Errorf("got %d sort keys: %w", len(state.Sorting), ErrInvalidSort)
	}
	sortColumn, err := schema.Column(state.Sorting[0].ColumnID)
	if err != nil {
		return fmt.Errorf("invalid sort key: %w", err)
	}
	if !sortColumn.Sortable {
		return fmt.Errorf("invalid sort key '%s': %w", sortColumn.ID, ErrColumnNotSortable)
	}
	for i := range state.Filters {
		if _, err := schema.Column(state.Filters[i].ColumnID); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}
	for id, visible := range state.Visibility {
		column, err := schema.Column(id)
		if err != nil {
			return fmt.Errorf("invalid visibility entry: %w", err)
		}
		if !visible && !column.Hideable {
			return fmt.Errorf("invalid visibility entry '%s': %w", id, ErrColumnNotHideable)
		}
	}
	return nil
}
