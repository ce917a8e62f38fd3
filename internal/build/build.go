// Package build holds build-time information.
package build

// Version is the relock release version. It defaults to "dev" and is set by
// linker flags on release builds.
var Version = "dev"
