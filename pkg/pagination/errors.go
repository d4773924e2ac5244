package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every [*Error].
var ErrInvalidArgument = errors.New("invalid argument")

// Code identifies which argument was rejected.
type Code string

const (
	CodeTotalItemsNotPositive   Code = "total number of items must be a positive number"
	CodePageSizeNotPositive     Code = "page size must be a positive number"
	CodeLastPageNotPositive     Code = "last page number must be a positive number"
	CodeCurrentPageNotPositive  Code = "current page number must be a positive number"
	CodeCurrentPageAfterLast    Code = "current page number must not be greater than last page number"
	CodePageOutOfRange          Code = "page number must be between 1 and the last page number"
	CodeNoPageSizeOptions       Code = "page size options must have at least one option"
	CodeUnknownButtonIdentifier Code = "unknown button identifier"
)

// Error describes a rejected argument. It matches [ErrInvalidArgument] with
// [errors.Is].
type Error struct {
	Op     string
	Code   Code
	Detail string
}

func newError(op string, code Code) *Error {
	return &Error{Op: op, Code: code}
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Detail)
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return ErrInvalidArgument
}
