package formats

import (
	"fmt"
	"io"
	"time"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octotable/octotable"
	"github.com/cube2222/octotable/table"
)

// JSONFormatter writes one object per row, keyed by column ID.
type JSONFormatter struct {
	buf     []byte
	arena   *fastjson.Arena
	w       io.Writer
	headers []table.Header
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{
		buf:   make([]byte, 0, 1024),
		arena: new(fastjson.Arena),
		w:     w,
	}
}

func (t *JSONFormatter) SetHeaders(headers []table.Header) {
	t.headers = headers
}

func (t *JSONFormatter) Write(row table.PageRow) error {
	obj := t.arena.NewObject()
	for i := range t.headers {
		obj.Set(t.headers[i].ColumnID, ValueToJson(t.arena, row.Values[i]))
	}

	t.buf = obj.MarshalTo(t.buf)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	t.buf = t.buf[:0]
	t.arena.Reset()
	if err != nil {
		return fmt.Errorf("couldn't write row: %w", err)
	}
	return nil
}

func ValueToJson(arena *fastjson.Arena, value octotable.Value) *fastjson.Value {
	switch value.TypeID {
	case octotable.TypeIDNull:
		return arena.NewNull()
	case octotable.TypeIDInt:
		return arena.NewNumberInt(value.Int)
	case octotable.TypeIDFloat:
		return arena.NewNumberFloat64(value.Float)
	case octotable.TypeIDBoolean:
		if value.Boolean {
			return arena.NewTrue()
		}
		return arena.NewFalse()
	case octotable.TypeIDString:
		return arena.NewString(value.Str)
	case octotable.TypeIDTime:
		return arena.NewString(value.Time.Format(time.RFC3339))
	case octotable.TypeIDDuration:
		return arena.NewString(value.Duration.String())
	case octotable.TypeIDList:
		arr := arena.NewArray()
		for i := range value.List {
			arr.SetArrayItem(i, ValueToJson(arena, value.List[i]))
		}
		return arr
	default:
		panic(fmt.Sprintf("invalid octotable value type to print: %s", value.TypeID.String()))
	}
}

func (t *JSONFormatter) Close() error {
	return nil
}
