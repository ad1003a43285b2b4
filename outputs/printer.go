package outputs

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gosuri/uilive"
	"github.com/pkg/errors"

	"github.com/cube2222/octotable/outputs/formats"
	"github.com/cube2222/octotable/table"
)

// Printer renders pages of a view. In live mode every page replaces the previously printed one.
type Printer struct {
	w          io.Writer
	format     string
	liveWriter *uilive.Writer
	lastFrame  []byte
}

func NewPrinter(w io.Writer, format string, live bool) (*Printer, error) {
	if _, err := formats.New(format, io.Discard); err != nil {
		return nil, err
	}
	p := &Printer{
		w:      w,
		format: format,
	}
	if live {
		p.liveWriter = uilive.New()
		p.liveWriter.Out = w
	}
	return p, nil
}

// Print writes the page. The table format is followed by a footer with the page range, the sort and the filters.
func (p *Printer) Print(page table.Page) error {
	var buf bytes.Buffer
	format, err := formats.New(p.format, &buf)
	if err != nil {
		return err
	}

	format.SetHeaders(page.Headers)
	for i := range page.Rows {
		if err := format.Write(page.Rows[i]); err != nil {
			return fmt.Errorf("couldn't write row %s: %w", page.Rows[i].ID, err)
		}
	}
	if err := format.Close(); err != nil {
		return errors.Wrap(err, "couldn't close output formatter")
	}
	if p.format == "table" {
		buf.WriteString(Footer(page))
		buf.WriteString("\n")
	}

	if p.liveWriter == nil {
		_, err := buf.WriteTo(p.w)
		return err
	}
	p.lastFrame = append(p.lastFrame[:0], buf.Bytes()...)
	if _, err := p.liveWriter.Write(p.lastFrame); err != nil {
		return err
	}
	return p.liveWriter.Flush()
}

// Message writes a line below the current page. In live mode it's erased by the next page.
func (p *Printer) Message(format string, args ...interface{}) {
	if p.liveWriter != nil {
		p.liveWriter.Write(p.lastFrame)
		fmt.Fprintf(p.liveWriter, format+"\n", args...)
		// The live writer buffers everything, so errors only show up on flush.
		if err := p.liveWriter.Flush(); err != nil {
			log.Printf("couldn't write message: %s", err)
		}
		return
	}
	if _, err := fmt.Fprintf(p.w, format+"\n", args...); err != nil {
		log.Printf("couldn't write message: %s", err)
	}
}

func Footer(page table.Page) string {
	parts := make([]string, 0, 4)
	if page.TotalRows == 0 {
		parts = append(parts, "No matching rows")
	} else {
		parts = append(parts, fmt.Sprintf("Showing %d - %d of %d", page.FirstRow, page.LastRow, page.TotalRows))
	}
	parts = append(parts, fmt.Sprintf("page %d/%d", page.PageIndex+1, page.PageCount))
	if page.Sort.ColumnID != "" {
		parts = append(parts, fmt.Sprintf("sorted by %s %s", page.Sort.ColumnID, page.Sort.Direction))
	}
	if len(page.Filters) > 0 {
		filters := make([]string, len(page.Filters))
		for i := range page.Filters {
			filters[i] = fmt.Sprintf("%s~%q", page.Filters[i].ColumnID, page.Filters[i].Value)
		}
		parts = append(parts, "filters: "+strings.Join(filters, ", "))
	}
	if page.SelectedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", page.SelectedCount))
	}
	return strings.Join(parts, " · ")
}
