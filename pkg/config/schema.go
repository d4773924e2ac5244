package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/macropower/kontrol/pkg/yaml"
)

//go:generate go run ../../internal/schemagen -o ../../kontrol.v1beta1.json

const schemaURL = "/" + SchemaFileName

// Schema reflects the JSON schema of [Config]. Definitions are inlined since
// generic type names cannot be used as references.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}

	return r.Reflect(&Config{})
}

// SchemaJSON returns the indented JSON encoding of [Schema].
func SchemaJSON() ([]byte, error) {
	b, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}

// DefaultValidator returns the validator compiled from [Schema]. It is
// compiled once.
var DefaultValidator = sync.OnceValues(func() (*yaml.Validator, error) {
	b, err := SchemaJSON()
	if err != nil {
		return nil, err
	}

	v, err := yaml.NewValidator(schemaURL, b)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return v, nil
})
