package table

import (
	"fmt"

	"github.com/google/btree"

	"github.com/cube2222/octotable/octotable"
)

// Facet is a distinct value of a column along with the number of rows having it.
type Facet struct {
	Value octotable.Value
	Count int
}

type facetItem struct {
	Value   octotable.Value
	Count   int
	Compare func(a, b octotable.Value) int
}

func (item *facetItem) Less(than btree.Item) bool {
	thanTyped, ok := than.(*facetItem)
	if !ok {
		panic(fmt.Sprintf("invalid facet comparison: %T", than))
	}
	return item.Compare(item.Value, thanTyped.Value) < 0
}

// Facets lists the distinct values of a column, in ascending order, over the rows which pass
// all filters other than the one set on that column itself.
func Facets[R any](records []R, schema *Schema[R], state State, columnID string) ([]Facet, error) {
	column, err := schema.Column(columnID)
	if err != nil {
		return nil, fmt.Errorf("couldn't compute facets: %w", err)
	}
	filtered, err := filterRecords(records, schema, state.Filters, columnID)
	if err != nil {
		return nil, fmt.Errorf("couldn't filter records: %w", err)
	}

	collator := newCollator(schema)
	// Collation alone would merge values like "v01" and "v1".
	compare := func(a, b octotable.Value) int {
		if comp := compareValues(collator, a, b); comp != 0 {
			return comp
		}
		return a.Compare(b)
	}

	counts := btree.New(BTreeDefaultDegree)
	for _, index := range filtered {
		value := column.Accessor(records[index])
		item := counts.Get(&facetItem{Value: value, Compare: compare})
		var itemTyped *facetItem
		if item == nil {
			itemTyped = &facetItem{
				Value:   value,
				Count:   0,
				Compare: compare,
			}
		} else {
			var ok bool
			itemTyped, ok = item.(*facetItem)
			if !ok {
				panic(fmt.Sprintf("invalid facet item: %v", item))
			}
		}
		itemTyped.Count++
		counts.ReplaceOrInsert(itemTyped)
	}

	out := make([]Facet, 0, counts.Len())
	counts.Ascend(func(item btree.Item) bool {
		itemTyped := item.(*facetItem)
		out = append(out, Facet{Value: itemTyped.Value, Count: itemTyped.Count})
		return true
	})
	return out, nil
}
