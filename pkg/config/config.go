package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/kontrol/api"
	"github.com/macropower/kontrol/api/v1beta1"
	"github.com/macropower/kontrol/pkg/log"
	"github.com/macropower/kontrol/pkg/pagination"
	"github.com/macropower/kontrol/pkg/ui"
	"github.com/macropower/kontrol/pkg/yaml"
)

const (
	// FileName is the name of the configuration file.
	FileName = "kontrol.yaml"
	// SchemaFileName is the name of the JSON schema written next to it.
	SchemaFileName = "kontrol.v1beta1.json"
)

//go:embed config.yaml
var defaultConfigYAML []byte

// Default paginator settings, matching config.yaml.
const (
	DefaultTotalItems          = 1000
	DefaultAdjacentPageNumbers = 2
)

// DefaultPageSizeOptions are the page sizes offered when none are configured.
var DefaultPageSizeOptions = []int{10, 25, 50}

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	//nolint:revive // Inline tag is read by goccy/go-yaml and invopop/jsonschema.
	v1beta1.TypeMeta `json:",inline"`

	// UI configures the theme and key binds.
	UI *ui.Config `json:"ui,omitempty" jsonschema:"title=UI"`
	// Paginator configures the paginator of the item list.
	Paginator *pagination.Config `json:"paginator,omitempty" jsonschema:"title=Paginator"`
	// Dropdown configures the sort order dropdown.
	Dropdown *ui.SortConfig `json:"dropdown,omitempty" jsonschema:"title=Dropdown"`
}

// New returns a [Config] with all defaults applied.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.NewTypeMeta(v1beta1.KindConfiguration),
	}
	c.EnsureDefaults()

	return c
}

// DefaultPaginator returns the paginator settings used when the file has
// none.
func DefaultPaginator() *pagination.Config {
	return &pagination.Config{
		TotalItems:          DefaultTotalItems,
		PageSizeOptions:     append([]int(nil), DefaultPageSizeOptions...),
		AdjacentPageNumbers: DefaultAdjacentPageNumbers,
		ButtonIDs:           append([]pagination.ButtonID(nil), pagination.DefaultButtonIDs...),
	}
}

func (c *Config) EnsureDefaults() {
	if c.UI == nil {
		c.UI = ui.DefaultConfig()
	} else {
		c.UI.EnsureDefaults()
	}

	if c.Paginator == nil {
		c.Paginator = DefaultPaginator()
	}

	if c.Dropdown == nil {
		c.Dropdown = &ui.SortConfig{}
	}

	c.Dropdown.EnsureDefaults()
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, v1beta1.ValidKinds)
}

// Validate checks the requirements that the schema cannot express.
func (c *Config) Validate() error {
	err := c.TypeMeta.Validate()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	var errs []error

	if c.Paginator != nil {
		err = c.Paginator.Validate()
		if err != nil {
			errs = append(errs, err)
		}
	}

	if c.UI != nil && c.UI.KeyBinds != nil {
		err = c.UI.KeyBinds.Validate()
		if err != nil {
			errs = append(errs, fmt.Errorf("key binds: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Options maps c onto the options of the demo program.
func (c *Config) Options(logs *log.Buffer, logger *slog.Logger) ui.Options {
	return ui.Options{
		UI:        c.UI,
		Logs:      logs,
		Logger:    logger,
		Sort:      *c.Dropdown,
		Paginator: *c.Paginator,
	}
}

// ReloadMsg maps c onto the message that applies it to a running program.
func (c *Config) ReloadMsg() ui.ConfigReloadMsg {
	return ui.ConfigReloadMsg{
		Sort:      *c.Dropdown,
		Paginator: *c.Paginator,
	}
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c) //nolint:wrapcheck // Already wrapped.
}

// Load reads, validates and decodes the configuration file at path.
func Load(path string, v Validator, opts ...LoaderOpt) (*Config, error) {
	l, err := NewLoaderFromFile(path, New, v, opts...)
	if err != nil {
		return nil, err
	}

	err = l.Validate()
	if err != nil {
		return nil, err
	}

	return l.Load()
}

// WriteDefaultConfig writes the embedded default configuration to path, and
// the JSON schema next to it. An existing file is kept unless force is set,
// in which case it is moved to a backup first.
func WriteDefaultConfig(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force)
	if err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	schema, err := SchemaJSON()
	if err != nil {
		return err
	}

	schemaPath := filepath.Join(filepath.Dir(path), SchemaFileName)
	slog.Debug("write JSON schema",
		slog.String("path", schemaPath),
	)

	err = os.WriteFile(schemaPath, schema, 0o600)
	if err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}

	return nil
}

// GetPath returns the default configuration file path.
func GetPath() string {
	return api.GetConfigPath(FileName)
}
