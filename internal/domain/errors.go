package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// SchemaError reports required columns absent from an uploaded table.
type SchemaError struct {
	Missing []string
}

func (e SchemaError) Error() string {
	switch len(e.Missing) {
	case 0:
		return "schema error"
	case 1:
		return fmt.Sprintf("missing required column %q", e.Missing[0])
	default:
		quoted := make([]string, 0, len(e.Missing))
		for _, m := range e.Missing {
			quoted = append(quoted, fmt.Sprintf("%q", m))
		}
		return "missing required columns " + strings.Join(quoted, ", ")
	}
}

// ParseError marks input bytes that could not be read as a table.
// Line is 1-based and counts the header; zero means unknown.
type ParseError struct {
	Line   int
	Column string
	Msg    string
	Err    error
}

func (e ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " on line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " in column %q", e.Column)
	}
	switch {
	case e.Msg != "":
		b.WriteString(": " + e.Msg)
	case e.Err != nil:
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e ParseError) Unwrap() error { return e.Err }

type MissingFileError struct{}

func (MissingFileError) Error() string { return "No file uploaded" }

type TooLargeError struct {
	Limit int64
}

func (e TooLargeError) Error() string {
	if e.Limit <= 0 {
		return "upload too large"
	}
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsSchema(err error) bool {
	var target SchemaError
	return errors.As(err, &target)
}

func IsParse(err error) bool {
	var target ParseError
	return errors.As(err, &target)
}

func IsMissingFile(err error) bool {
	var target MissingFileError
	return errors.As(err, &target)
}

func IsTooLarge(err error) bool {
	var target TooLargeError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
