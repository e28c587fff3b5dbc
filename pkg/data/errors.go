package data

import (
	"errors"
	"fmt"
)

var (
	// ErrArchive is returned when the archive cannot be opened.
	ErrArchive = errors.New("archive unreadable")
	// ErrEntryNotFound is returned when the archive has no entry with the requested name.
	ErrEntryNotFound = errors.New("entry not found in archive")
	// ErrParse is returned when the entry is not well-formed delimited text.
	ErrParse = errors.New("malformed delimited text")
	// ErrEncoding is returned for unknown character encodings.
	ErrEncoding = errors.New("unsupported encoding")

	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLength          = errors.New("column length mismatch")
	ErrKind            = errors.New("unexpected column kind")
)

// ColumnError ties a schema failure to the column that caused it.
type ColumnError struct {
	Column string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }
