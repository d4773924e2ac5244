package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/kontrol/pkg/yaml"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"paginator": {
			"type": "object",
			"properties": {
				"totalNumberOfItems": {"type": "integer", "minimum": 1},
				"pageSizeOptions": {
					"type": "array",
					"minItems": 1,
					"items": {"type": "integer", "minimum": 1}
				}
			},
			"required": ["totalNumberOfItems", "pageSizeOptions"]
		},
		"dropdown": {
			"type": "object",
			"properties": {
				"options": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {"displayValue": {"type": "string"}},
						"required": ["displayValue"]
					}
				}
			}
		}
	}
}`

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		schema string
		errMsg string
	}{
		"valid schema":   {schema: testSchema},
		"empty schema":   {schema: `{}`},
		"invalid json":   {schema: `{"invalid": json}`, errMsg: "unmarshal schema"},
		"invalid schema": {schema: `{"type": "invalid_type"}`, errMsg: "compile schema"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := yaml.NewValidator("test.json", []byte(tc.schema))
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)
				assert.Nil(t, v)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, v)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	v := yaml.MustNewValidator("test.json", []byte(testSchema))

	tcs := map[string]struct {
		doc      string
		wantPath string
	}{
		"valid": {
			doc: "paginator:\n  totalNumberOfItems: 100\n  pageSizeOptions: [10, 25]\n",
		},
		"missing required field": {
			doc:      "paginator:\n  totalNumberOfItems: 100\n",
			wantPath: "$.paginator",
		},
		"empty page size options": {
			doc:      "paginator:\n  totalNumberOfItems: 100\n  pageSizeOptions: []\n",
			wantPath: "$.paginator.pageSizeOptions",
		},
		"invalid array item": {
			doc:      "paginator:\n  totalNumberOfItems: 100\n  pageSizeOptions: [10, 0]\n",
			wantPath: "$.paginator.pageSizeOptions[1]",
		},
		"invalid object in array": {
			doc:      "dropdown:\n  options:\n    - displayValue: A\n    - value: b\n",
			wantPath: "$.dropdown.options[1]",
		},
		"wrong type": {
			doc:      "paginator:\n  totalNumberOfItems: many\n  pageSizeOptions: [10]\n",
			wantPath: "$.paginator.totalNumberOfItems",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var data any
			require.NoError(t, yaml.Unmarshal([]byte(tc.doc), &data))

			err := v.Validate(data)
			if tc.wantPath == "" {
				require.NoError(t, err)

				return
			}

			var yerr *yaml.Error
			require.ErrorAs(t, err, &yerr)
			require.NotNil(t, yerr.Path)
			assert.Equal(t, tc.wantPath, yerr.Path.String())
		})
	}
}

func TestMustNewValidator_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		yaml.MustNewValidator("bad.json", []byte(`not json`))
	})
}
