package yaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/kontrol/pkg/yaml"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	path := yaml.NewPathBuilder().Root().Child("paginator").Child("pageSize").Build()

	tcs := map[string]struct {
		err  *yaml.Error
		want string
	}{
		"no location": {
			err:  yaml.NewError(errors.New("bad document")),
			want: "bad document",
		},
		"path without source": {
			err:  yaml.NewError(errors.New("must be >= 1"), yaml.WithPath(path)),
			want: "error at $.paginator.pageSize: must be >= 1",
		},
		"empty error": {
			err:  yaml.NewError(nil, yaml.WithPath(path)),
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestError_AnnotatedSource(t *testing.T) {
	t.Parallel()

	source := []byte("paginator:\n  totalNumberOfItems: 10\n  pageSize: 0\n")

	err := yaml.NewError(
		errors.New("must be >= 1"),
		yaml.WithPath(yaml.NewPathBuilder().Root().Child("paginator").Child("pageSize").Build()),
		yaml.WithSource(source),
	)

	msg := err.Error()
	assert.Contains(t, msg, "error at $.paginator.pageSize: must be >= 1")
	assert.Contains(t, msg, "pageSize: 0")
}

func TestErrorWrapper(t *testing.T) {
	t.Parallel()

	ew := yaml.NewErrorWrapper(yaml.WithSource([]byte("a: b")))

	require.NoError(t, ew.Wrap(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, ew.Wrap(plain))

	wrapped := ew.Wrap(yaml.NewError(errors.New("inner")), yaml.WithColor(true))

	var yerr *yaml.Error
	require.ErrorAs(t, wrapped, &yerr)
	assert.Equal(t, []byte("a: b"), yerr.Source)
	assert.True(t, yerr.Colored)
}

func TestDecoder_SyntaxError(t *testing.T) {
	t.Parallel()

	var v map[string]any

	err := yaml.Unmarshal([]byte("a: [1, 2\nb: c\n"), &v)
	require.Error(t, err)

	var yerr *yaml.Error
	require.ErrorAs(t, err, &yerr)
	assert.NotNil(t, yerr.Token)
}

func TestMarshalUnmarshal(t *testing.T) {
	t.Parallel()

	type doc struct {
		Name  string `json:"name"`
		Sizes []int  `json:"sizes"`
	}

	out, err := yaml.Marshal(doc{Name: "kontrol", Sizes: []int{10, 25}})
	require.NoError(t, err)
	assert.Equal(t, "name: kontrol\nsizes:\n  - 10\n  - 25\n", string(out))

	var got doc
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, doc{Name: "kontrol", Sizes: []int{10, 25}}, got)
}
