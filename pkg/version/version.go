// Package version reports how the kontrol binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set via ldflags for release builds.
var Version string

// develVersion is the main module version of builds outside "go install".
const develVersion = "(devel)"

// Info describes a build.
type Info struct {
	Version   string
	Revision  string
	GoVersion string
	Platform  string
	Modified  bool
}

// Get returns the build information of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()

	return FromBuildInfo(Version, bi)
}

// FromBuildInfo resolves build information. An explicit version wins over
// the module version, which wins over the VCS revision. bi may be nil.
func FromBuildInfo(version string, bi *debug.BuildInfo) Info {
	info := Info{
		Version:   version,
		Revision:  "unknown",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi == nil {
		return info
	}

	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value[:min(len(s.Value), 7)]
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != develVersion {
		info.Version = bi.Main.Version
	}

	return info
}

// Short returns the version, or the revision when there is none.
func (i Info) Short() string {
	if i.Version != "" {
		return i.Version
	}

	if i.Modified {
		return i.Revision + "-dirty"
	}

	return i.Revision
}

func (i Info) String() string {
	return fmt.Sprintf("%s (revision %s, %s, %s)", i.Short(), i.Revision, i.GoVersion, i.Platform)
}

// GetVersion returns the short version of the running binary.
func GetVersion() string {
	return Get().Short()
}
