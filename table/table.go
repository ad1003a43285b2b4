package table

import (
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Table keeps the state of a single view over a record collection.
// It's meant to be driven from a single goroutine.
type Table[R any] struct {
	schema     *Schema[R]
	records    []R
	state      State
	generation string
}

func New[R any](records []R, schema *Schema[R], initial State) (*Table[R], error) {
	if err := validateState(schema, initial); err != nil {
		return nil, fmt.Errorf("invalid initial state: %w", err)
	}
	return &Table[R]{
		schema:     schema,
		records:    records,
		state:      initial.clone(),
		generation: newGeneration(),
	}, nil
}

func newGeneration() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Dispatch applies the actions in order. If one of them fails, the state is left as it was before the call.
func (t *Table[R]) Dispatch(actions ...Action) error {
	state := t.state
	for _, action := range actions {
		var err error
		state, err = Reduce(t.records, t.schema, state, action)
		if err != nil {
			return err
		}
	}
	t.state = state
	return nil
}

func (t *Table[R]) View() (View[R], error) {
	return ComputeView(t.records, t.schema, t.state)
}

func (t *Table[R]) Facets(columnID string) ([]Facet, error) {
	return Facets(t.records, t.schema, t.state, columnID)
}

func (t *Table[R]) State() State {
	return t.state.clone()
}

func (t *Table[R]) Schema() *Schema[R] {
	return t.schema
}

func (t *Table[R]) Records() []R {
	return t.records
}

// Generation identifies the current record collection. It changes whenever the collection is replaced.
func (t *Table[R]) Generation() string {
	return t.generation
}

// ReplaceRecords swaps in a new collection. The page index and the selection are reset.
func (t *Table[R]) ReplaceRecords(records []R) {
	t.records = records
	t.generation = newGeneration()
	t.state = t.state.clone()
	t.state.Pagination.PageIndex = 0
	t.state.Selection = RowSelection{}
}

// DeleteSelected replaces the collection with a new one which doesn't contain the selected rows.
// The previous collection is left untouched. It returns the number of removed records.
func (t *Table[R]) DeleteSelected() int {
	remaining := make([]R, 0, len(t.records))
	for i := range t.records {
		if t.state.Selection[t.schema.RowID(i, t.records[i])] {
			continue
		}
		remaining = append(remaining, t.records[i])
	}
	removed := len(t.records) - len(remaining)
	if removed == 0 {
		return 0
	}
	t.ReplaceRecords(remaining)
	return removed
}
