package api_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/kontrol/api"
)

//nolint:paralleltest // We need to set environment variables, so run tests sequentially.
func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		setupEnv func(t *testing.T)
		want     string
	}{
		"XDG_CONFIG_HOME is set": {
			setupEnv: func(t *testing.T) {
				t.Helper()
				t.Setenv("XDG_CONFIG_HOME", "/custom/config")
			},
			want: "/custom/config/kontrol/kontrol.yaml",
		},
		"XDG_CONFIG_HOME is empty and HOME is set": {
			setupEnv: func(t *testing.T) {
				t.Helper()
				t.Setenv("XDG_CONFIG_HOME", "")
				t.Setenv("HOME", "/test/home")
			},
			want: "/test/home/.config/kontrol/kontrol.yaml",
		},
		"XDG_CONFIG_HOME and HOME are empty": {
			setupEnv: func(t *testing.T) {
				t.Helper()
				t.Setenv("XDG_CONFIG_HOME", "")
				t.Setenv("HOME", "")
			},
			want: filepath.Join(os.TempDir(), "kontrol", "kontrol.yaml"), //nolint:usetesting // Needs to equal host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			tc.setupEnv(t)

			assert.Equal(t, tc.want, api.GetConfigPath("kontrol.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup   func(t *testing.T) string
		want    []byte
		wantErr error
	}{
		"regular file": {
			setup: func(t *testing.T) string {
				t.Helper()

				path := filepath.Join(t.TempDir(), "kontrol.yaml")
				require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

				return path
			},
			want: []byte("content"),
		},
		"missing file": {
			setup: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantErr: fs.ErrNotExist,
		},
		"directory": {
			setup: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
			wantErr: api.ErrIsDirectory,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := api.ReadFile(tc.setup(t))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWriteIfNotExists(t *testing.T) {
	t.Parallel()

	t.Run("new file in nested directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "kontrol.yaml")
		require.NoError(t, api.WriteIfNotExists(path, []byte("new")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("existing file is kept", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "kontrol.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, api.WriteIfNotExists(path, []byte("new")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, api.WriteIfNotExists(t.TempDir(), []byte("new")), api.ErrIsDirectory)
	})
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing    string
		force       bool
		want        string
		wantBackups int
	}{
		"new file": {
			want: "default",
		},
		"existing file without force": {
			existing: "custom",
			want:     "custom",
		},
		"existing file with force": {
			existing:    "custom",
			force:       true,
			want:        "default",
			wantBackups: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "kontrol.yaml")

			if tc.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o600))
			}

			require.NoError(t, api.WriteDefaultFile(path, []byte("default"), tc.force))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))

			backups, err := filepath.Glob(filepath.Join(dir, "kontrol.yaml.*.old"))
			require.NoError(t, err)
			assert.Len(t, backups, tc.wantBackups)

			for _, b := range backups {
				old, err := os.ReadFile(b)
				require.NoError(t, err)
				assert.Equal(t, tc.existing, string(old))
			}
		})
	}
}
