package formats

import (
	"io"
	"strings"

	"github.com/kr/text"
	"github.com/olekukonko/tablewriter"

	"github.com/cube2222/octotable/table"
)

const ColumnWidth = 32

// TableFormatter draws an ASCII table. The first column holds the row ID, starred if the row is selected.
type TableFormatter struct {
	table *tablewriter.Table
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	t := tablewriter.NewWriter(w)
	t.SetColWidth(ColumnWidth)
	t.SetAutoWrapText(false)
	t.SetRowLine(false)

	return &TableFormatter{
		table: t,
	}
}

func (t *TableFormatter) SetHeaders(headers []table.Header) {
	header := make([]string, len(headers)+1)
	header[0] = "#"
	for i := range headers {
		label := headers[i].Label
		if headers[i].Sorted {
			if headers[i].Direction == table.Descending {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		header[i+1] = label
	}
	t.table.SetHeader(header)
	t.table.SetAutoFormatHeaders(false)
}

func (t *TableFormatter) Write(row table.PageRow) error {
	out := make([]string, len(row.Values)+1)
	out[0] = row.ID
	if row.Selected {
		out[0] += "*"
	}
	for i := range row.Values {
		out[i+1] = wrap(row.Values[i].String())
	}
	t.table.Append(out)
	return nil
}

func (t *TableFormatter) Close() error {
	t.table.Render()
	return nil
}

func wrap(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= ColumnWidth {
		return s
	}
	return text.Wrap(s, ColumnWidth)
}
