package yaml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// DefaultEncoderOptions are used by [NewEncoder] and [Marshal].
var DefaultEncoderOptions = []yaml.EncodeOption{
	yaml.Indent(2),
	yaml.IndentSequence(true),
}

type Encoder struct {
	e *yaml.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		e: yaml.NewEncoder(w, DefaultEncoderOptions...),
	}
}

func (e *Encoder) Encode(v any) error {
	return e.e.Encode(v) //nolint:wrapcheck // Return the original error.
}

func (e *Encoder) Close() error {
	return e.e.Close() //nolint:wrapcheck // Return the original error.
}

// Marshal encodes v as a single document.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := NewEncoder(&buf)

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}

	return buf.Bytes(), nil
}
