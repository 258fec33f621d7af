// Package version reports the build version of the format-blocks module, for callers that embed
// it and want to log or display which revision computed a layout.
package version

import "runtime/debug"

// Version returns the module version from embedded build info, or "unknown" if the binary was
// not built with module information (e.g. `go build` of a single file outside a module).
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/Spacerat/format-blocks" {
			return dep.Version
		}
	}
	return info.Main.Version
}
