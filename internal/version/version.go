// Package version exposes build metadata stamped in via -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// These values are overridden at build time via -ldflags "-X ...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown" // RFC3339 UTC preferred
)

type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders a one-line summary such as "tplan dev (unknown, go1.25 linux/amd64)".
func (i Info) String() string {
	return fmt.Sprintf("tplan %s (%s, %s %s)", i.Version, i.GitCommit, i.GoVersion, i.Platform)
}
