// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/fullpipe/twa-sdk-types/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/fullpipe/twa-sdk-types/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/fullpipe/twa-sdk-types/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/twatypes
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent is sent with every page request.
func UserAgent() string {
	return "twatypes/" + Version + " (+https://github.com/fullpipe/twa-sdk-types)"
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
