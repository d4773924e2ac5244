// Package yaml wraps [github.com/goccy/go-yaml] with the decoder and encoder
// settings used for kontrol configuration files, and validates decoded
// documents against a JSON schema, reporting failures as [*Error] values that
// point at the offending YAML path.
package yaml
