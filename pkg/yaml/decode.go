package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder creates a [Decoder] reading from r. Extra options are appended
// to the defaults.
func NewDecoder(r io.Reader, opts ...yaml.DecodeOption) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, append([]yaml.DecodeOption{yaml.AllowDuplicateMapKey()}, opts...)...),
	}
}

// Decode decodes the next document into v. Syntax and type errors are
// returned as [*Error] with the token where they occurred.
func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	return err //nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
}

// Unmarshal decodes a single document from data.
func Unmarshal(data []byte, v any, opts ...yaml.DecodeOption) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}
