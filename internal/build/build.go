// Package build carries version information stamped at build time.
package build

// Version identifies the running binary. The default "dev" is
// replaced via -ldflags on release builds.
var Version = "dev"
