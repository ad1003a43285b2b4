package table

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cube2222/octotable/octotable"
)

// Column describes one presentable attribute of a record.
// Accessor is required. Filter and Compare replace the default
// substring predicate and type-aware comparison respectively.
type Column[R any] struct {
	ID       string
	Header   string
	Accessor func(record R) octotable.Value
	Filter   func(record R, value string) bool
	Compare  func(a, b R) int
	Sortable bool
	Hideable bool
}

func (c *Column[R]) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// Schema is the immutable set of columns of a view, together with
// the way rows are identified and the locale strings are collated in.
type Schema[R any] struct {
	columns []Column[R]
	index   map[string]int
	rowID   func(index int, record R) string
	locale  language.Tag
}

func NewSchema[R any](columns ...Column[R]) (*Schema[R], error) {
	index := make(map[string]int, len(columns))
	for i := range columns {
		if columns[i].ID == "" {
			return nil, fmt.Errorf("column %d has no id: %w", i, ErrInvalidColumn)
		}
		if columns[i].Accessor == nil {
			return nil, fmt.Errorf("column '%s' has no accessor: %w", columns[i].ID, ErrInvalidColumn)
		}
		if _, ok := index[columns[i].ID]; ok {
			return nil, fmt.Errorf("column '%s' is declared twice: %w", columns[i].ID, ErrInvalidColumn)
		}
		index[columns[i].ID] = i
	}

	out := make([]Column[R], len(columns))
	copy(out, columns)

	return &Schema[R]{
		columns: out,
		index:   index,
		rowID: func(index int, record R) string {
			return strconv.Itoa(index)
		},
		locale: language.English,
	}, nil
}

// WithRowID returns a copy of the schema which identifies rows using the given function
// instead of their position in the collection.
func (s *Schema[R]) WithRowID(rowID func(record R) string) *Schema[R] {
	out := *s
	out.rowID = func(index int, record R) string {
		return rowID(record)
	}
	return &out
}

// WithLocale returns a copy of the schema which collates strings according to the given locale.
func (s *Schema[R]) WithLocale(locale language.Tag) *Schema[R] {
	out := *s
	out.locale = locale
	return &out
}

func (s *Schema[R]) Locale() language.Tag {
	return s.locale
}

func (s *Schema[R]) Columns() []Column[R] {
	return s.columns
}

func (s *Schema[R]) ColumnIDs() []string {
	out := make([]string, len(s.columns))
	for i := range s.columns {
		out[i] = s.columns[i].ID
	}
	return out
}

func (s *Schema[R]) Column(id string) (*Column[R], error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("column '%s': %w", id, ErrUnknownColumn)
	}
	return &s.columns[i], nil
}

func (s *Schema[R]) RowID(index int, record R) string {
	return s.rowID(index, record)
}

// ContainsFold reports whether substr is within text, ignoring case.
func ContainsFold(text, substr string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(text), folder.String(substr))
}

// MatchAny builds a filter which matches the value against all the given fields at once,
// so a single search box can look through e.g. both the name and the email of a user.
func MatchAny[R any](fields ...func(record R) string) func(record R, value string) bool {
	return func(record R, value string) bool {
		parts := make([]string, len(fields))
		for i := range fields {
			parts[i] = fields[i](record)
		}
		return ContainsFold(strings.Join(parts, " "), value)
	}
}

// MatchEach builds a filter which matches the value against each of the given fields separately,
// so unlike MatchAny a value never matches across the boundary of two fields.
func MatchEach[R any](fields ...func(record R) string) func(record R, value string) bool {
	return func(record R, value string) bool {
		for i := range fields {
			if ContainsFold(fields[i](record), value) {
				return true
			}
		}
		return false
	}
}
