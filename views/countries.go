package views

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octotable/datasources/json"
	"github.com/cube2222/octotable/octotable"
	"github.com/cube2222/octotable/table"
)

// Country is a record of the restcountries.com v3.1 API.
type Country struct {
	Code         string
	CommonName   string
	OfficialName string
	Capitals     []string
	Region       string
	Subregion    string
	Population   int
	Flag         string
	FlagAlt      string
}

func (c Country) Capital() string {
	if len(c.Capitals) == 0 {
		return ""
	}
	return c.Capitals[0]
}

func decodeCountry(object *fastjson.Value) (Country, error) {
	country := Country{
		Code:         json.String(object, "cca3"),
		CommonName:   json.String(object, "name", "common"),
		OfficialName: json.String(object, "name", "official"),
		Capitals:     json.Strings(object, "capital"),
		Region:       json.String(object, "region"),
		Subregion:    json.String(object, "subregion"),
		Population:   object.GetInt("population"),
		Flag:         json.String(object, "flag"),
		FlagAlt:      json.String(object, "flags", "alt"),
	}
	if country.CommonName == "" {
		return Country{}, fmt.Errorf("country without a common name")
	}
	return country, nil
}

var Countries = &Definition[Country]{
	ViewName:        "countries",
	ViewDescription: "Countries of the world, searchable by name, capital or region.",
	ColumnList: []table.Column[Country]{
		{
			ID:     "flag",
			Header: "Flag",
			Accessor: func(c Country) octotable.Value {
				return nullableString(c.Flag)
			},
			Hideable: true,
		},
		{
			ID:     "name",
			Header: "Name",
			Accessor: func(c Country) octotable.Value {
				return octotable.NewString(c.CommonName)
			},
			Filter: table.MatchAny(
				func(c Country) string { return c.CommonName },
				func(c Country) string { return c.OfficialName },
				Country.Capital,
				func(c Country) string { return c.Region },
			),
			Sortable: true,
		},
		{
			ID:     "capital",
			Header: "Capital",
			Accessor: func(c Country) octotable.Value {
				return nullableString(c.Capital())
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "region",
			Header: "Region",
			Accessor: func(c Country) octotable.Value {
				return octotable.NewString(c.Region)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "subregion",
			Header: "Subregion",
			Accessor: func(c Country) octotable.Value {
				return nullableString(c.Subregion)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "population",
			Header: "Population",
			Accessor: func(c Country) octotable.Value {
				return octotable.NewInt(c.Population)
			},
			Sortable: true,
			Hideable: true,
		},
	},
	RowID: func(c Country) string {
		if c.Code != "" {
			return c.Code
		}
		return c.CommonName
	},
	SearchColumn:    "name",
	DefaultSort:     table.SortKey{ColumnID: "name"},
	DefaultPageSize: table.DefaultPageSize,
	Decode:          decodeCountry,
}
