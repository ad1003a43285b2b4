package table

import (
	"fmt"

	"github.com/google/btree"
	"golang.org/x/text/collate"

	"github.com/cube2222/octotable/octotable"
)

const BTreeDefaultDegree = 12

type Cell struct {
	ColumnID string
	Value    octotable.Value
}

type Row[R any] struct {
	ID string
	// Index is the position of the record in the collection.
	Index    int
	Record   R
	Cells    []Cell
	Selected bool
}

type Header struct {
	ColumnID  string
	Label     string
	Sortable  bool
	Hideable  bool
	Sorted    bool
	Direction Direction
}

// View is the render-ready result of filtering, sorting and paginating a collection.
type View[R any] struct {
	Rows    []Row[R]
	Headers []Header

	TotalRows       int
	PageCount       int
	PageIndex       int
	PageSize        int
	CanPreviousPage bool
	CanNextPage     bool
	// FirstRow and LastRow are the 1-based bounds of the page within the filtered rows, 0 when there are none.
	FirstRow int
	LastRow  int

	Filters       FilterState
	Sort          SortKey
	SelectedCount int
}

// ComputeView filters, sorts and paginates the records, in that order.
// It has no side effects, the records and state are left untouched.
func ComputeView[R any](records []R, schema *Schema[R], state State) (View[R], error) {
	if err := validateState(schema, state); err != nil {
		return View[R]{}, fmt.Errorf("couldn't validate state: %w", err)
	}

	filtered, err := filterRecords(records, schema, state.Filters, "")
	if err != nil {
		return View[R]{}, fmt.Errorf("couldn't filter records: %w", err)
	}

	sortKey := state.Sorting[0]
	sorted, err := sortRecords(records, schema, filtered, sortKey)
	if err != nil {
		return View[R]{}, fmt.Errorf("couldn't sort records: %w", err)
	}

	page := paginate(len(sorted), state.Pagination)

	visible := make([]*Column[R], 0, len(schema.columns))
	headers := make([]Header, 0, len(schema.columns))
	for i := range schema.columns {
		column := &schema.columns[i]
		if !state.Visibility.IsVisible(column.ID) {
			continue
		}
		visible = append(visible, column)
		headers = append(headers, Header{
			ColumnID:  column.ID,
			Label:     column.Label(),
			Sortable:  column.Sortable,
			Hideable:  column.Hideable,
			Sorted:    column.ID == sortKey.ColumnID,
			Direction: sortKey.Direction,
		})
	}

	rows := make([]Row[R], 0, page.end-page.start)
	for _, index := range sorted[page.start:page.end] {
		record := records[index]
		cells := make([]Cell, len(visible))
		for i, column := range visible {
			cells[i] = Cell{
				ColumnID: column.ID,
				Value:    column.Accessor(record),
			}
		}
		id := schema.RowID(index, record)
		rows = append(rows, Row[R]{
			ID:       id,
			Index:    index,
			Record:   record,
			Cells:    cells,
			Selected: state.Selection[id],
		})
	}

	selectedCount := 0
	for _, selected := range state.Selection {
		if selected {
			selectedCount++
		}
	}

	filters := make(FilterState, len(state.Filters))
	copy(filters, state.Filters)

	return View[R]{
		Rows:            rows,
		Headers:         headers,
		TotalRows:       len(sorted),
		PageCount:       page.count,
		PageIndex:       page.index,
		PageSize:        state.Pagination.PageSize,
		CanPreviousPage: page.index > 0,
		CanNextPage:     page.index < page.count-1,
		FirstRow:        page.firstRow(),
		LastRow:         page.end,
		Filters:         filters,
		Sort:            sortKey,
		SelectedCount:   selectedCount,
	}, nil
}

// filterRecords returns the indices of the records which pass every filter,
// in collection order. The filter on skipColumn, if any, is ignored.
func filterRecords[R any](records []R, schema *Schema[R], filters FilterState, skipColumn string) ([]int, error) {
	predicates := make([]func(record R) bool, 0, len(filters))
	for i := range filters {
		if filters[i].ColumnID == skipColumn || filters[i].Value == "" {
			continue
		}
		column, err := schema.Column(filters[i].ColumnID)
		if err != nil {
			return nil, err
		}
		value := filters[i].Value
		if column.Filter != nil {
			predicates = append(predicates, func(record R) bool {
				return column.Filter(record, value)
			})
		} else {
			predicates = append(predicates, func(record R) bool {
				return ContainsFold(column.Accessor(record).String(), value)
			})
		}
	}

	out := make([]int, 0, len(records))
recordLoop:
	for i := range records {
		for _, p := range predicates {
			if !p(records[i]) {
				continue recordLoop
			}
		}
		out = append(out, i)
	}
	return out, nil
}

type sortItem struct {
	// Position is the position in the filtered sequence, used to keep ties in order.
	Position int
	Index    int
	Compare  func(a, b int) int
}

func (item *sortItem) Less(than btree.Item) bool {
	thanTyped, ok := than.(*sortItem)
	if !ok {
		panic(fmt.Sprintf("invalid sort item comparison: %T", than))
	}

	if comp := item.Compare(item.Index, thanTyped.Index); comp != 0 {
		return comp < 0
	}
	return item.Position < thanTyped.Position
}

// sortRecords stably orders the given record indices by the sort key.
func sortRecords[R any](records []R, schema *Schema[R], indices []int, key SortKey) ([]int, error) {
	column, err := schema.Column(key.ColumnID)
	if err != nil {
		return nil, err
	}
	multiplier := key.Direction.Multiplier()

	var compare func(a, b int) int
	if column.Compare != nil {
		compare = func(a, b int) int {
			return sign(column.Compare(records[a], records[b])) * multiplier
		}
	} else {
		keys := make(map[int]octotable.Value, len(indices))
		for _, index := range indices {
			keys[index] = column.Accessor(records[index])
		}
		collator := newCollator(schema)
		compare = func(a, b int) int {
			return compareValues(collator, keys[a], keys[b]) * multiplier
		}
	}

	tree := btree.New(BTreeDefaultDegree)
	for position, index := range indices {
		tree.ReplaceOrInsert(&sortItem{
			Position: position,
			Index:    index,
			Compare:  compare,
		})
	}

	out := make([]int, 0, len(indices))
	tree.Ascend(func(item btree.Item) bool {
		out = append(out, item.(*sortItem).Index)
		return true
	})
	return out, nil
}

func newCollator[R any](schema *Schema[R]) *collate.Collator {
	return collate.New(schema.locale, collate.Numeric)
}

// compareValues is the default comparison: strings are collated, everything else uses the value ordering.
func compareValues(collator *collate.Collator, a, b octotable.Value) int {
	if a.TypeID == octotable.TypeIDString && b.TypeID == octotable.TypeIDString {
		return sign(collator.CompareString(a.Str, b.Str))
	}
	return a.Compare(b)
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

type pageWindow struct {
	index int
	count int
	start int
	end   int
}

func (p pageWindow) firstRow() int {
	if p.end == p.start {
		return 0
	}
	return p.start + 1
}

// paginate clamps the page index into the valid range and computes the page window.
func paginate(totalRows int, pagination Pagination) pageWindow {
	count := pageCount(totalRows, pagination.PageSize)
	index := clampPage(pagination.PageIndex, count)
	start := index * pagination.PageSize
	end := start + pagination.PageSize
	if end > totalRows {
		end = totalRows
	}
	if start > end {
		start = end
	}
	return pageWindow{
		index: index,
		count: count,
		start: start,
		end:   end,
	}
}

func pageCount(totalRows, pageSize int) int {
	count := (totalRows + pageSize - 1) / pageSize
	if count < 1 {
		return 1
	}
	return count
}

func clampPage(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}
