package table

import (
	"github.com/cube2222/octotable/octotable"
)

// PageRow is a row of a Page, holding one value per header.
type PageRow struct {
	ID       string
	Selected bool
	Values   []octotable.Value
}

// Page is a View without the records themselves, which is all a presentation layer needs.
type Page struct {
	Headers []Header
	Rows    []PageRow

	TotalRows       int
	PageCount       int
	PageIndex       int
	PageSize        int
	CanPreviousPage bool
	CanNextPage     bool
	FirstRow        int
	LastRow         int

	Filters       FilterState
	Sort          SortKey
	SelectedCount int
}

func (v View[R]) Page() Page {
	rows := make([]PageRow, len(v.Rows))
	for i := range v.Rows {
		values := make([]octotable.Value, len(v.Rows[i].Cells))
		for j := range v.Rows[i].Cells {
			values[j] = v.Rows[i].Cells[j].Value
		}
		rows[i] = PageRow{
			ID:       v.Rows[i].ID,
			Selected: v.Rows[i].Selected,
			Values:   values,
		}
	}
	return Page{
		Headers:         v.Headers,
		Rows:            rows,
		TotalRows:       v.TotalRows,
		PageCount:       v.PageCount,
		PageIndex:       v.PageIndex,
		PageSize:        v.PageSize,
		CanPreviousPage: v.CanPreviousPage,
		CanNextPage:     v.CanNextPage,
		FirstRow:        v.FirstRow,
		LastRow:         v.LastRow,
		Filters:         v.Filters,
		Sort:            v.Sort,
		SelectedCount:   v.SelectedCount,
	}
}
