package formats

import (
	"fmt"
	"io"

	"github.com/cube2222/octotable/table"
)

// Format writes the rows of a single page.
type Format interface {
	SetHeaders(headers []table.Header)
	Write(row table.PageRow) error
	Close() error
}

var Names = []string{"table", "json", "csv"}

func New(name string, w io.Writer) (Format, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("invalid output format: '%s', expected one of %v", name, Names)
	}
}
