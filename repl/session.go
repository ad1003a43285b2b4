package repl

import (
	"fmt"
	"log"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/cube2222/octotable/outputs"
	"github.com/cube2222/octotable/table"
	"github.com/cube2222/octotable/viewcache"
	"github.com/cube2222/octotable/views"
)

// Session drives a single view from user input.
type Session struct {
	handle  views.Handle
	cache   *viewcache.Cache
	printer *outputs.Printer
	parser  Parser
	exiting bool
}

// NewSession creates a session. The cache may be nil.
func NewSession(handle views.Handle, cache *viewcache.Cache, printer *outputs.Printer, pageSizes []int) *Session {
	return &Session{
		handle:  handle,
		cache:   cache,
		printer: printer,
		parser: Parser{
			SearchColumn: handle.SearchColumn(),
			PageSizes:    pageSizes,
		},
	}
}

// Run prints the first page and reads commands until exit.
func (s *Session) Run() error {
	if err := s.printPage(); err != nil {
		return err
	}
	prompt.New(
		s.executor,
		s.Complete,
		prompt.OptionPrefix(s.handle.Name()+"> "),
		prompt.OptionTitle("octotable"),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && s.exiting
		}),
	).Run()
	return nil
}

func (s *Session) executor(line string) {
	exit, err := s.Execute(line)
	if err != nil {
		log.Printf("command %q failed: %s", line, err)
		s.printer.Message("Error: %s", err)
	}
	s.exiting = exit
}

// Execute runs a single line of input. It returns true if the session should end.
func (s *Session) Execute(line string) (bool, error) {
	command, err := s.parser.Parse(line)
	if err != nil {
		return false, err
	}

	switch command := command.(type) {
	case Dispatch:
		if err := s.handle.Dispatch(command.Actions...); err != nil {
			return false, err
		}
		return false, s.printPage()

	case DeleteSelected:
		removed := s.handle.DeleteSelected()
		log.Printf("deleted %d rows from %s", removed, s.handle.Name())
		if err := s.printPage(); err != nil {
			return false, err
		}
		s.printer.Message("Deleted %d rows.", removed)
		return false, nil

	case ShowFacets:
		facets, err := s.handle.Facets(command.ColumnID)
		if err != nil {
			return false, err
		}
		lines := make([]string, len(facets))
		for i := range facets {
			value := facets[i].Value.String()
			if facets[i].Value.IsNull() {
				value = "<null>"
			}
			lines[i] = fmt.Sprintf("  %s (%d)", value, facets[i].Count)
		}
		s.printer.Message("Values of %s:\n%s", command.ColumnID, strings.Join(lines, "\n"))
		return false, nil

	case Help:
		s.printer.Message("Commands:\n%s", strings.TrimRight(HelpText(), "\n"))
		return false, nil

	case Redraw:
		return false, s.printPage()

	case Exit:
		return true, nil

	default:
		panic(fmt.Sprintf("invalid command: %T", command))
	}
}

func (s *Session) printPage() error {
	var page table.Page
	var err error
	if s.cache != nil {
		page, err = s.cache.Page(s.handle)
	} else {
		page, err = s.handle.Page()
	}
	if err != nil {
		return fmt.Errorf("couldn't compute page: %w", err)
	}
	return s.printer.Print(page)
}

// Complete suggests command names, and column IDs or row IDs as their arguments.
func (s *Session) Complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	word := d.GetWordBeforeCursor()
	fields := strings.Fields(before)

	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(before, " ")) {
		suggestions := make([]prompt.Suggest, len(commandSpecs))
		for i, spec := range commandSpecs {
			suggestions[i] = prompt.Suggest{Text: spec.name, Description: spec.description}
		}
		return prompt.FilterHasPrefix(suggestions, word, true)
	}

	argIndex := len(fields) - 1
	if strings.HasSuffix(before, " ") {
		argIndex = len(fields)
	}
	var kind argKind
	for _, spec := range commandSpecs {
		if spec.name == fields[0] && argIndex-1 < len(spec.args) {
			kind = spec.args[argIndex-1]
		}
	}

	var suggestions []prompt.Suggest
	switch kind {
	case argColumn, argSortableColumn, argHideableColumn:
		for _, column := range s.handle.Columns() {
			if (kind == argSortableColumn && !column.Sortable) || (kind == argHideableColumn && !column.Hideable) {
				continue
			}
			suggestions = append(suggestions, prompt.Suggest{Text: column.ID, Description: column.Header})
		}
	case argRowID:
		page, err := s.handle.Page()
		if err != nil {
			return nil
		}
		for _, row := range page.Rows {
			suggestions = append(suggestions, prompt.Suggest{Text: row.ID})
		}
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}
