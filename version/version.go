// Package version holds the symbolic version of the htdate binary.
package version

// Version is the symbolic version (if any) of the running code. Set at
// build time with:
//
//	go build -ldflags "-X github.com/nettime/htdate/version.Version=$(git describe --tags)"
var Version = "unknown"
