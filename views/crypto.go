package views

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octotable/datasources/json"
	"github.com/cube2222/octotable/octotable"
	"github.com/cube2222/octotable/table"
)

// Coin is a record of the CoinGecko /coins/markets API. Missing numbers are nil.
type Coin struct {
	ID             string
	Symbol         string
	Name           string
	Image          string
	CurrentPrice   *float64
	MarketCap      *float64
	MarketCapRank  *float64
	PriceChange24h *float64
	TotalVolume    *float64
}

func decodeCoin(object *fastjson.Value) (Coin, error) {
	coin := Coin{
		ID:             json.String(object, "id"),
		Symbol:         json.String(object, "symbol"),
		Name:           json.String(object, "name"),
		Image:          json.String(object, "image"),
		CurrentPrice:   json.Float(object, "current_price"),
		MarketCap:      json.Float(object, "market_cap"),
		MarketCapRank:  json.Float(object, "market_cap_rank"),
		PriceChange24h: json.Float(object, "price_change_percentage_24h"),
		TotalVolume:    json.Float(object, "total_volume"),
	}
	if coin.ID == "" {
		return Coin{}, fmt.Errorf("coin without an id")
	}
	return coin, nil
}

var Crypto = &Definition[Coin]{
	ViewName:        "crypto",
	ViewDescription: "Cryptocurrency markets, searchable by coin name or symbol.",
	ColumnList: []table.Column[Coin]{
		{
			ID:     "market_cap_rank",
			Header: "Rank",
			Accessor: func(c Coin) octotable.Value {
				return nullableInt(c.MarketCapRank)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "name",
			Header: "Coin",
			Accessor: func(c Coin) octotable.Value {
				return octotable.NewString(c.Name)
			},
			Filter: table.MatchAny(
				func(c Coin) string { return c.Name },
				func(c Coin) string { return c.Symbol },
			),
			Sortable: true,
		},
		{
			ID:     "symbol",
			Header: "Symbol",
			Accessor: func(c Coin) octotable.Value {
				return octotable.NewString(c.Symbol)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "current_price",
			Header: "Price",
			Accessor: func(c Coin) octotable.Value {
				return nullableFloat(c.CurrentPrice)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "price_change_percentage_24h",
			Header: "24h %",
			Accessor: func(c Coin) octotable.Value {
				return nullableFloat(c.PriceChange24h)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "total_volume",
			Header: "Volume",
			Accessor: func(c Coin) octotable.Value {
				return nullableFloat(c.TotalVolume)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "market_cap",
			Header: "Market Cap",
			Accessor: func(c Coin) octotable.Value {
				return nullableFloat(c.MarketCap)
			},
			Sortable: true,
			Hideable: true,
		},
	},
	RowID: func(c Coin) string {
		return c.ID
	},
	SearchColumn:    "name",
	DefaultSort:     table.SortKey{ColumnID: "market_cap_rank"},
	DefaultPageSize: table.DefaultPageSize,
	Decode:          decodeCoin,
}
