// Package version reports build information.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/gochat/version.Version=1.0.0"
package version
