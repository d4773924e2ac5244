package config

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"

	"github.com/macropower/kontrol/api"
	"github.com/macropower/kontrol/api/v1beta1"
	"github.com/macropower/kontrol/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator Validator
	colored   bool
}

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// WithColor enables colored source annotations in errors.
func WithColor(colored bool) LoaderOpt {
	return func(o *loaderOptions) {
		o.colored = colored
	}
}

// Loader is a generic configuration loader that handles validation,
// YAML parsing, and error formatting for any config type T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
// The newFunc parameter is the constructor for type T (e.g., config.New).
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	options := &loaderOptions{
		validator: defaultValidator,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: options.validator,
		yamlError: yaml.NewErrorWrapper(
			yaml.WithSource(data),
			yaml.WithColor(options.colored),
		),
	}
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Validate validates the configuration data against the schema.
func (l *Loader[T]) Validate() error {
	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyConfig)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyConfig)
		if err != nil {
			return l.yamlError.Wrap(err)
		}
	}

	return nil
}

// Load parses and returns the configuration. When T has a Validate method,
// it runs after defaults are applied.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	cfg := l.newFunc()

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(cfg)
	if err != nil {
		var zero T
		return zero, l.yamlError.Wrap(err)
	}

	cfg.EnsureDefaults()

	if v, ok := any(cfg).(interface{ Validate() error }); ok {
		err = v.Validate()
		if err != nil {
			var zero T
			return zero, l.yamlError.Wrap(err)
		}
	}

	return cfg, nil
}

// Theme returns the ui.theme value of the configuration data, or an empty
// string. It also works on data that is not valid YAML, so that errors about
// that data can be styled.
func (l *Loader[T]) Theme() string {
	return getTheme(l.data)
}

func getTheme(data []byte) string {
	var themeName string

	path := yaml.NewPathBuilder().Root().Child("ui").Child("theme").Build()

	err := path.Read(bytes.NewReader(data), &themeName)
	if err == nil {
		return themeName
	}

	slog.Debug("could not read theme, config might be invalid")

	themeName = extractThemeWithRegex(data)
	if themeName != "" {
		slog.Debug("extracted theme using regex fallback", slog.String("theme", themeName))
	}

	return themeName
}

var (
	// Matches "ui:" at the start of a line and captures the indented lines
	// below it.
	uiSectionRe = regexp.MustCompile(`(?m)^ui:\s*$((?:\n[ \t]+.*)*)`)
	// Matches an indented "theme:" and captures its double quoted, single
	// quoted or bare value.
	themeValueRe = regexp.MustCompile(`\n[ \t]+theme:\s*(?:"([^"#\n]+)"|'([^'#\n]+)'|([^\s#\n]+))`)
)

// extractThemeWithRegex looks for the pattern:
//
//	ui:
//	  foo: bar
//	  # ...
//	  theme: <value>
//
// And extracts the theme value.
func extractThemeWithRegex(data []byte) string {
	uiMatches := uiSectionRe.FindStringSubmatch(string(data))
	if len(uiMatches) < 2 {
		return ""
	}

	themeMatches := themeValueRe.FindStringSubmatch(uiMatches[1])
	if len(themeMatches) < 4 {
		return ""
	}

	for _, m := range themeMatches[1:] {
		if m != "" {
			return strings.TrimSpace(m)
		}
	}

	return ""
}
