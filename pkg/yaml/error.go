package yaml

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// ErrorWrapper applies a fixed set of [ErrorOpt]s to every [*Error] it wraps.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{
		Opts: opts,
	}
}

// Wrap applies the wrapper's options, then opts, to err if it is an [*Error].
// Other errors are returned unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	for _, opt := range ew.Opts {
		opt(yamlErr)
	}

	for _, opt := range opts {
		opt(yamlErr)
	}

	return yamlErr
}

// Error is a YAML error located either by a [*yaml.Path] or by the
// [*token.Token] where it occurred. When Source is set, the message includes
// the annotated source around the location.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor enables ANSI colors in the annotated source.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

func (e Error) Error() string {
	if e.Err == nil {
		return ""
	}

	switch {
	case e.Token != nil:
		var pp printer.Printer

		return fmt.Sprintf("[%d:%d] %v:\n%s",
			e.Token.Position.Line, e.Token.Position.Column, e.Err,
			pp.PrintErrorToken(e.Token, e.Colored),
		)

	case e.Path != nil:
		if len(e.Source) == 0 {
			return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
		}

		src, err := e.Path.AnnotateSource(e.Source, e.Colored)
		if err != nil {
			return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
		}

		return fmt.Sprintf("error at %s: %v:\n%s", e.Path.String(), e.Err, src)
	}

	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}
