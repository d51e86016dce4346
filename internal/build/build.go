// Package build holds build-time information for the glow binary.
package build

// Version is the application version reported by the version command.
// It defaults to "dev" and is overwritten by linker flags in releases.
var Version = "dev"
