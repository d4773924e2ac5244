// Package v1beta1 contains the v1beta1 API types for kontrol configuration.
package v1beta1

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

const (
	// APIVersion is the current API version for all kontrol configuration kinds.
	APIVersion = "kontrol.macropower.dev/v1beta1"

	// KindConfiguration is the kind of the demo configuration file.
	KindConfiguration = "Configuration"
)

var (
	// ValidAPIVersions contains all valid API versions.
	ValidAPIVersions = []string{APIVersion}

	// ValidKinds contains all valid kinds.
	ValidKinds = []string{KindConfiguration}

	ErrUnknownAPIVersion = errors.New("unknown apiVersion")
	ErrUnknownKind       = errors.New("unknown kind")
)

// TypeMeta contains the API version and kind metadata common to all config types.
type TypeMeta struct {
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// NewTypeMeta returns the current [TypeMeta] for kind.
func NewTypeMeta(kind string) TypeMeta {
	return TypeMeta{APIVersion: APIVersion, Kind: kind}
}

func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Validate checks the API version and kind against the known values.
func (tm TypeMeta) Validate() error {
	if !slices.Contains(ValidAPIVersions, tm.APIVersion) {
		return fmt.Errorf("%w: %q", ErrUnknownAPIVersion, tm.APIVersion)
	}
	if !slices.Contains(ValidKinds, tm.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, tm.Kind)
	}

	return nil
}

// Object is the interface that all config types implement.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// ExtendSchemaWithEnums restricts the apiVersion and kind properties of jss
// to the given values. Missing properties are left alone.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	addConsts(jss, "apiVersion", "API Version", apiVersions)
	addConsts(jss, "kind", "Kind", kinds)
}

func addConsts(jss *jsonschema.Schema, property, title string, values []string) {
	if jss.Properties == nil {
		return
	}

	prop, ok := jss.Properties.Get(property)
	if !ok {
		return
	}

	for _, v := range values {
		prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: v,
			Title: title,
		})
	}

	_, _ = jss.Properties.Set(property, prop)
}
