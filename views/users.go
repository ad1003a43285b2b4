package views

import (
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octotable/datasources/json"
	"github.com/cube2222/octotable/octotable"
	"github.com/cube2222/octotable/table"
)

type Address struct {
	Street  string
	Suite   string
	City    string
	Zipcode string
}

func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{a.Street, a.Suite, a.City, a.Zipcode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// User is a record of the JSONPlaceholder /users API.
type User struct {
	ID       int
	Name     string
	Username string
	Email    string
	Address  Address
	Phone    string
	Company  string
}

func decodeUser(object *fastjson.Value) (User, error) {
	if json.Float(object, "id") == nil {
		return User{}, fmt.Errorf("user without an id")
	}
	return User{
		ID:       object.GetInt("id"),
		Name:     json.String(object, "name"),
		Username: json.String(object, "username"),
		Email:    json.String(object, "email"),
		Address: Address{
			Street:  json.String(object, "address", "street"),
			Suite:   json.String(object, "address", "suite"),
			City:    json.String(object, "address", "city"),
			Zipcode: json.String(object, "address", "zipcode"),
		},
		Phone:   json.String(object, "phone"),
		Company: json.String(object, "company", "name"),
	}, nil
}

var Users = &Definition[User]{
	ViewName:        "users",
	ViewDescription: "Users, searchable by name or email. Location filters on the city, company on its name.",
	ColumnList: []table.Column[User]{
		{
			ID:     "name",
			Header: "Name",
			Accessor: func(u User) octotable.Value {
				return octotable.NewString(u.Name)
			},
			Filter: table.MatchAny(
				func(u User) string { return u.Name },
				func(u User) string { return u.Email },
			),
			Sortable: true,
		},
		{
			ID:     "username",
			Header: "Username",
			Accessor: func(u User) octotable.Value {
				return octotable.NewString(u.Username)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "email",
			Header: "Email",
			Accessor: func(u User) octotable.Value {
				return octotable.NewString(u.Email)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "address",
			Header: "Location",
			Accessor: func(u User) octotable.Value {
				return octotable.NewString(u.Address.String())
			},
			Filter: func(u User, value string) bool {
				return table.ContainsFold(u.Address.City, value)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "phone",
			Header: "Phone",
			Accessor: func(u User) octotable.Value {
				return octotable.NewString(u.Phone)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "company",
			Header: "Company",
			Accessor: func(u User) octotable.Value {
				return octotable.NewString(u.Company)
			},
			Filter: func(u User, value string) bool {
				return table.ContainsFold(u.Company, value)
			},
			Sortable: true,
			Hideable: true,
		},
	},
	RowID: func(u User) string {
		return fmt.Sprint(u.ID)
	},
	SearchColumn:    "name",
	DefaultSort:     table.SortKey{ColumnID: "name"},
	DefaultPageSize: table.DefaultPageSize,
	Decode:          decodeUser,
}
