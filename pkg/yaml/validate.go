package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates decoded YAML documents against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var schema any

	err := json.Unmarshal(schemaData, &schema)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(url, schema)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	jss, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: jss}, nil
}

func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate validates data against the schema. Failures are returned as an
// [*Error] whose Path points at the most specific failing location.
func (s *Validator) Validate(data any) error {
	err := s.schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &Error{
		Err:  validationErr,
		Path: pathFromLocation(mostSpecificLocation(validationErr)),
	}
}

// mostSpecificLocation returns the longest InstanceLocation among err and its
// causes.
func mostSpecificLocation(err *jsonschema.ValidationError) []string {
	longest := err.InstanceLocation

	for _, cause := range err.Causes {
		if loc := mostSpecificLocation(cause); len(loc) > len(longest) {
			longest = loc
		}
	}

	return longest
}

func pathFromLocation(location []string) *yaml.Path {
	pb := NewPathBuilder().Root()

	for _, part := range location {
		if index, err := strconv.ParseUint(part, 10, 0); err == nil {
			pb = pb.Index(uint(index))

			continue
		}

		pb = pb.Child(part)
	}

	return pb.Build()
}
