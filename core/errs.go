package core

import "errors"

var (
	ErrColumnLength    = errors.New("column length differs from labels")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrInvalidWindow   = errors.New("invalid window token")
)
