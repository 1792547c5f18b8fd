// Package build describes the running binary. Release builds inject a JSON
// document through -ldflags; otherwise the module information the Go
// toolchain embeds is used.
package build

import (
	"encoding/json"
	"log/slog"
	"runtime"
	"runtime/debug"
)

// Info contains build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"` //nolint:tagliatelle
	GitBranch string `json:"git_branch"` //nolint:tagliatelle
	BuildTime string `json:"build_time"` //nolint:tagliatelle
	GoVersion string `json:"go_version"` //nolint:tagliatelle
}

// Parse deserializes a JSON string into build Info.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if len(js) == 0 || js == "{}" {
		return nil, false
	}

	var info Info

	err := json.Unmarshal([]byte(js), &info)
	if err != nil {
		slog.Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// Current returns the injected info when js parses, filling gaps from the
// toolchain's embedded build information. version is used when neither
// source names one.
func Current(version, js string) *Info {
	info, ok := Parse(js)
	if !ok {
		info = &Info{}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}

		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}

	if info.Version == "" {
		info.Version = version
	}

	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}

	return info
}
