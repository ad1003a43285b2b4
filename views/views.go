package views

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
	"golang.org/x/text/language"

	"github.com/cube2222/octotable/datasources/json"
	"github.com/cube2222/octotable/table"
)

// Definition declares a view: the record type, how to decode it from an API payload,
// its columns and its initial state.
type Definition[R any] struct {
	ViewName        string
	ViewDescription string
	ColumnList      []table.Column[R]
	RowID           func(record R) string
	// SearchColumn is the column the free text search box is bound to.
	SearchColumn    string
	DefaultSort     table.SortKey
	DefaultPageSize int
	Decode          func(object *fastjson.Value) (R, error)
}

// Descriptor is a Definition with the record type erased.
type Descriptor interface {
	Name() string
	Description() string
	Columns() []ColumnInfo
	Load(data []byte, settings Settings) (Handle, error)
}

type ColumnInfo struct {
	ID            string
	Header        string
	Sortable      bool
	Hideable      bool
	CustomFilter  bool
	CustomCompare bool
}

// Settings override the initial state of a view. Zero values keep the view's defaults.
type Settings struct {
	PageSize   int
	Sort       string
	Descending bool
	Hidden     []string
	Locale     language.Tag
}

// Handle is a loaded view, ready to be driven by actions.
type Handle interface {
	Name() string
	SearchColumn() string
	Columns() []ColumnInfo
	Len() int
	Dispatch(actions ...table.Action) error
	Page() (table.Page, error)
	Facets(columnID string) ([]table.Facet, error)
	DeleteSelected() int
	State() table.State
	Generation() string
}

func (d *Definition[R]) Name() string {
	return d.ViewName
}

func (d *Definition[R]) Description() string {
	return d.ViewDescription
}

func (d *Definition[R]) Columns() []ColumnInfo {
	out := make([]ColumnInfo, len(d.ColumnList))
	for i, column := range d.ColumnList {
		out[i] = ColumnInfo{
			ID:            column.ID,
			Header:        column.Label(),
			Sortable:      column.Sortable,
			Hideable:      column.Hideable,
			CustomFilter:  column.Filter != nil,
			CustomCompare: column.Compare != nil,
		}
	}
	return out
}

func (d *Definition[R]) Schema(locale language.Tag) (*table.Schema[R], error) {
	schema, err := table.NewSchema(d.ColumnList...)
	if err != nil {
		return nil, fmt.Errorf("couldn't create %s schema: %w", d.ViewName, err)
	}
	if d.RowID != nil {
		schema = schema.WithRowID(d.RowID)
	}
	if locale != language.Und {
		schema = schema.WithLocale(locale)
	}
	return schema, nil
}

// DecodeAll decodes every object of the payload into a record.
func (d *Definition[R]) DecodeAll(data []byte) ([]R, error) {
	records := make([]R, 0)
	if err := json.ForEachObject(data, func(object *fastjson.Value) error {
		record, err := d.Decode(object)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("couldn't decode %s: %w", d.ViewName, err)
	}
	return records, nil
}

func (d *Definition[R]) Load(data []byte, settings Settings) (Handle, error) {
	records, err := d.DecodeAll(data)
	if err != nil {
		return nil, err
	}
	return d.Open(records, settings)
}

// Open creates a view over already decoded records.
func (d *Definition[R]) Open(records []R, settings Settings) (Handle, error) {
	schema, err := d.Schema(settings.Locale)
	if err != nil {
		return nil, err
	}

	sortKey := d.DefaultSort
	if settings.Sort != "" {
		sortKey = table.SortKey{ColumnID: settings.Sort}
	}
	if settings.Descending {
		sortKey.Direction = table.Descending
	}
	pageSize := d.DefaultPageSize
	if settings.PageSize != 0 {
		pageSize = settings.PageSize
	}

	tbl, err := table.New(records, schema, table.NewState(sortKey, pageSize))
	if err != nil {
		return nil, fmt.Errorf("couldn't create %s table: %w", d.ViewName, err)
	}
	for _, id := range settings.Hidden {
		if err := tbl.Dispatch(table.SetVisibility{ColumnID: id, Visible: false}); err != nil {
			return nil, fmt.Errorf("couldn't hide column: %w", err)
		}
	}

	return &handle[R]{
		definition: d,
		table:      tbl,
	}, nil
}

type handle[R any] struct {
	definition *Definition[R]
	table      *table.Table[R]
}

func (h *handle[R]) Name() string {
	return h.definition.ViewName
}

func (h *handle[R]) SearchColumn() string {
	return h.definition.SearchColumn
}

func (h *handle[R]) Columns() []ColumnInfo {
	return h.definition.Columns()
}

func (h *handle[R]) Len() int {
	return len(h.table.Records())
}

func (h *handle[R]) Dispatch(actions ...table.Action) error {
	return h.table.Dispatch(actions...)
}

func (h *handle[R]) Page() (table.Page, error) {
	view, err := h.table.View()
	if err != nil {
		return table.Page{}, err
	}
	return view.Page(), nil
}

func (h *handle[R]) Facets(columnID string) ([]table.Facet, error) {
	return h.table.Facets(columnID)
}

func (h *handle[R]) DeleteSelected() int {
	return h.table.DeleteSelected()
}

func (h *handle[R]) State() table.State {
	return h.table.State()
}

func (h *handle[R]) Generation() string {
	return h.table.Generation()
}

var registry = map[string]Descriptor{
	Countries.ViewName: Countries,
	Crypto.ViewName:    Crypto,
	Posts.ViewName:     Posts,
	Users.ViewName:     Users,
}

var ErrUnknownView = errors.New("unknown view")

func Get(name string) (Descriptor, error) {
	descriptor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("view '%s': %w", name, ErrUnknownView)
	}
	return descriptor, nil
}

// Names returns the names of all views in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
