package formats

import (
	"encoding/csv"
	"io"

	"github.com/cube2222/octotable/table"
)

type CSVFormatter struct {
	writer *csv.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
	}
}

func (t *CSVFormatter) SetHeaders(headers []table.Header) {
	header := make([]string, len(headers))
	for i := range headers {
		header[i] = headers[i].ColumnID
	}
	t.writer.Write(header)
}

func (t *CSVFormatter) Write(row table.PageRow) error {
	out := make([]string, len(row.Values))
	for i := range row.Values {
		out[i] = row.Values[i].String()
	}
	return t.writer.Write(out)
}

func (t *CSVFormatter) Close() error {
	t.writer.Flush()
	return t.writer.Error()
}
