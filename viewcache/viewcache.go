package viewcache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/cube2222/octotable/table"
)

// Source is anything that can compute pages of a view, like views.Handle.
type Source interface {
	Generation() string
	State() table.State
	Page() (table.Page, error)
}

// Cache memoizes computed pages, keyed by the record collection generation and the view state.
// Sets are applied asynchronously, so a page that was just stored may still be recomputed.
type Cache struct {
	cache *ristretto.Cache
}

// New creates a cache holding roughly maxRows page rows.
func New(maxRows int64) (*Cache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxRows * 10,
		MaxCost:     maxRows,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize view cache: %w", err)
	}
	return &Cache{
		cache: cache,
	}, nil
}

func Key(generation string, state table.State) string {
	return generation + "|" + state.Fingerprint()
}

func (c *Cache) Page(source Source) (table.Page, error) {
	key := Key(source.Generation(), source.State())
	if cached, ok := c.cache.Get(key); ok {
		return cached.(table.Page), nil
	}

	page, err := source.Page()
	if err != nil {
		return table.Page{}, err
	}
	c.cache.Set(key, page, int64(len(page.Rows)+1))
	return page, nil
}

func (c *Cache) Close() {
	c.cache.Close()
}
