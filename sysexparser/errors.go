package sysexparser

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("io error")

	ErrInvalidToken  = errors.New("invalid hex token")
	ErrMissingColumn = errors.New("missing required column")
)

// ParseError reports a registry row that could not be converted.
type ParseError struct {
	Line  int
	Row   []string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("parse error")
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if len(e.Row) > 0 {
		fmt.Fprintf(&sb, " (row: %s)", strings.Join(e.Row, ","))
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IOError reports a failure to read the source or to write the destination.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func newIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// ErrorKind classifies err for logs and metrics labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
