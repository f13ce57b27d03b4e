package utils

import (
	"runtime/debug"
	"strings"
)

// version is set with -ldflags "-X github.com/gnomegl/gitrank/internal/utils.version=..."
var version string

// GetVersion returns the build version without a leading "v". It falls back
// to the module version from the build info, then "unknown".
func GetVersion() string {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		} else {
			v = "unknown"
		}
	}
	return strings.TrimPrefix(v, "v")
}
