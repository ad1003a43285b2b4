package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cube2222/octotable/table"
)

var ErrInvalidCommand = errors.New("invalid command")

// Command is a parsed line of input.
type Command interface {
	command()
}

// Dispatch applies actions to the view.
type Dispatch struct {
	Actions []table.Action
}

type DeleteSelected struct{}

type ShowFacets struct {
	ColumnID string
}

type Help struct{}

type Exit struct{}

// Redraw prints the current page again.
type Redraw struct{}

func (Dispatch) command()       {}
func (DeleteSelected) command() {}
func (ShowFacets) command()     {}
func (Help) command()           {}
func (Exit) command()           {}
func (Redraw) command()         {}

type argKind int

const (
	argNone argKind = iota
	argColumn
	argSortableColumn
	argHideableColumn
	argText
	argNumber
	argRowID
)

type commandSpec struct {
	name        string
	usage       string
	description string
	args        []argKind
}

var commandSpecs = []commandSpec{
	{"search", "search <text...>", "Filter the search column.", []argKind{argText}},
	{"filter", "filter <column> <text...>", "Filter a column by a case insensitive substring.", []argKind{argColumn, argText}},
	{"clear", "clear <column>", "Remove the filter of a column.", []argKind{argColumn}},
	{"sort", "sort <column>", "Sort by the column, or flip the direction if already sorted by it.", []argKind{argSortableColumn}},
	{"page", "page <n>", "Go to the n-th page.", []argKind{argNumber}},
	{"first", "first", "Go to the first page.", nil},
	{"prev", "prev", "Go to the previous page.", nil},
	{"next", "next", "Go to the next page.", nil},
	{"last", "last", "Go to the last page.", nil},
	{"size", "size <n>", "Change the page size.", []argKind{argNumber}},
	{"hide", "hide <column>", "Hide a column.", []argKind{argHideableColumn}},
	{"show", "show <column>", "Show a hidden column.", []argKind{argHideableColumn}},
	{"select", "select <row>", "Select a row by its ID.", []argKind{argRowID}},
	{"unselect", "unselect <row>", "Unselect a row by its ID.", []argKind{argRowID}},
	{"select-page", "select-page", "Select all rows of the current page.", nil},
	{"unselect-all", "unselect-all", "Clear the selection.", nil},
	{"delete", "delete", "Delete the selected rows.", nil},
	{"facets", "facets <column>", "List the distinct values of a column.", []argKind{argColumn}},
	{"help", "help", "Show this help.", nil},
	{"exit", "exit", "Quit.", nil},
}

// Parser turns lines of input into commands.
type Parser struct {
	SearchColumn string
	PageSizes    []int
}

func (p *Parser) Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Redraw{}, nil
	}
	name, rest := cut(line)

	switch name {
	case "search":
		return Dispatch{Actions: []table.Action{table.SetFilter{ColumnID: p.SearchColumn, Value: rest}}}, nil
	case "filter":
		column, value := cut(rest)
		if column == "" {
			return nil, usageError(name)
		}
		return Dispatch{Actions: []table.Action{table.SetFilter{ColumnID: column, Value: value}}}, nil
	case "clear":
		if rest == "" {
			return nil, usageError(name)
		}
		return Dispatch{Actions: []table.Action{table.ClearFilter{ColumnID: rest}}}, nil
	case "sort":
		if rest == "" {
			return nil, usageError(name)
		}
		return Dispatch{Actions: []table.Action{table.ToggleSort{ColumnID: rest}}}, nil
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return nil, usageError(name)
		}
		return Dispatch{Actions: []table.Action{table.GoToPage{PageIndex: n - 1}}}, nil
	case "first":
		return Dispatch{Actions: []table.Action{table.FirstPage{}}}, nil
	case "prev":
		return Dispatch{Actions: []table.Action{table.PreviousPage{}}}, nil
	case "next":
		return Dispatch{Actions: []table.Action{table.NextPage{}}}, nil
	case "last":
		return Dispatch{Actions: []table.Action{table.LastPage{}}}, nil
	case "size":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, usageError(name)
		}
		if !p.allowedPageSize(n) {
			return nil, fmt.Errorf("%w: page size must be one of %v", ErrInvalidCommand, p.PageSizes)
		}
		return Dispatch{Actions: []table.Action{table.SetPageSize{PageSize: n}}}, nil
	case "hide", "show":
		if rest == "" {
			return nil, usageError(name)
		}
		return Dispatch{Actions: []table.Action{table.SetVisibility{ColumnID: rest, Visible: name == "show"}}}, nil
	case "select", "unselect":
		if rest == "" {
			return nil, usageError(name)
		}
		return Dispatch{Actions: []table.Action{table.SetRowSelected{RowID: rest, Selected: name == "select"}}}, nil
	case "select-page":
		return Dispatch{Actions: []table.Action{table.SelectPageRows{Selected: true}}}, nil
	case "unselect-all":
		return Dispatch{Actions: []table.Action{table.ResetSelection{}}}, nil
	case "delete":
		return DeleteSelected{}, nil
	case "facets":
		if rest == "" {
			return nil, usageError(name)
		}
		return ShowFacets{ColumnID: rest}, nil
	case "help":
		return Help{}, nil
	case "exit", "quit":
		return Exit{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command '%s', type help for a list of commands", ErrInvalidCommand, name)
	}
}

func (p *Parser) allowedPageSize(n int) bool {
	if len(p.PageSizes) == 0 {
		return n > 0
	}
	for _, size := range p.PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

func cut(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i == -1 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func usageError(name string) error {
	for _, spec := range commandSpecs {
		if spec.name == name {
			return fmt.Errorf("%w, usage: %s", ErrInvalidCommand, spec.usage)
		}
	}
	return ErrInvalidCommand
}

func HelpText() string {
	var sb strings.Builder
	for _, spec := range commandSpecs {
		fmt.Fprintf(&sb, "  %-28s %s\n", spec.usage, spec.description)
	}
	return sb.String()
}
