package version_test

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/kontrol/pkg/version"
)

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	vcs := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
	}

	tcs := map[string]struct {
		bi        *debug.BuildInfo
		version   string
		want      string
		wantRev   string
		wantDirty bool
	}{
		"no build info": {
			want:    "unknown",
			wantRev: "unknown",
		},
		"explicit version": {
			version:   "v1.2.3",
			bi:        &debug.BuildInfo{Main: debug.Module{Version: "v0.0.1"}, Settings: vcs},
			want:      "v1.2.3",
			wantRev:   "0123456",
			wantDirty: true,
		},
		"module version": {
			bi:      &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}},
			want:    "v0.4.0",
			wantRev: "unknown",
		},
		"devel build": {
			bi:        &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: vcs},
			want:      "0123456-dirty",
			wantRev:   "0123456",
			wantDirty: true,
		},
		"short revision": {
			bi: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
			}},
			want:    "abc",
			wantRev: "abc",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			info := version.FromBuildInfo(tc.version, tc.bi)

			assert.Equal(t, tc.want, info.Short())
			assert.Equal(t, tc.wantRev, info.Revision)
			assert.Equal(t, tc.wantDirty, info.Modified)
			assert.Contains(t, info.String(), tc.want)
			assert.NotEmpty(t, info.Platform)
		})
	}
}
