package views

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octotable/datasources/json"
	"github.com/cube2222/octotable/octotable"
	"github.com/cube2222/octotable/table"
)

// Post is a record of the JSONPlaceholder /posts API.
type Post struct {
	ID     int
	UserID int
	Title  string
	Body   string
}

func decodePost(object *fastjson.Value) (Post, error) {
	if json.Float(object, "id") == nil {
		return Post{}, fmt.Errorf("post without an id")
	}
	return Post{
		ID:     object.GetInt("id"),
		UserID: object.GetInt("userId"),
		Title:  json.String(object, "title"),
		Body:   json.String(object, "body"),
	}, nil
}

const PostsPageSize = 6

var Posts = &Definition[Post]{
	ViewName:        "posts",
	ViewDescription: "Blog posts, searchable by title or body.",
	ColumnList: []table.Column[Post]{
		{
			ID:     "id",
			Header: "ID",
			Accessor: func(p Post) octotable.Value {
				return octotable.NewInt(p.ID)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "userId",
			Header: "User",
			Accessor: func(p Post) octotable.Value {
				return octotable.NewInt(p.UserID)
			},
			Sortable: true,
			Hideable: true,
		},
		{
			ID:     "title",
			Header: "Title",
			Accessor: func(p Post) octotable.Value {
				return octotable.NewString(p.Title)
			},
			// Title and body are matched separately, a query spanning both doesn't match.
			Filter: table.MatchEach(
				func(p Post) string { return p.Title },
				func(p Post) string { return p.Body },
			),
			Sortable: true,
		},
		{
			ID:     "body",
			Header: "Body",
			Accessor: func(p Post) octotable.Value {
				return octotable.NewString(p.Body)
			},
			Hideable: true,
		},
	},
	RowID: func(p Post) string {
		return fmt.Sprint(p.ID)
	},
	SearchColumn:    "title",
	DefaultSort:     table.SortKey{ColumnID: "id"},
	DefaultPageSize: PostsPageSize,
	Decode:          decodePost,
}
