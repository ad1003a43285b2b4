package table

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidColumn     = errors.New("invalid column definition")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrColumnNotSortable = errors.New("column is not sortable")
	ErrColumnNotHideable = errors.New("column can't be hidden")
	ErrInvalidPageSize   = errors.New("page size must be positive")
	ErrInvalidSort       = errors.New("exactly one sort key must be active")
	ErrUnknownRow        = errors.New("unknown row")
	ErrUnknownAction     = errors.New("unknown action")
)
