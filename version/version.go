// Package version reports the version of the statsd module and of the Go
// runtime it was built with.
package version

import (
	"runtime"
	"strings"
	"sync"
)

// Version of the statsd module.
const Version = "1.0.0"

var (
	vsnOnce sync.Once
	vsn     string
)

func isDevel(vsn string) bool {
	return strings.Count(vsn, " ") > 2 || strings.HasPrefix(vsn, "devel")
}

// GoVersion reports the Go version, in a format that is consumable by
// metrics tools.
func GoVersion() string {
	vsnOnce.Do(func() {
		vsn = strings.TrimPrefix(runtime.Version(), "go")
	})
	return vsn
}

// DevelGoVersion reports whether the version of Go that compiled or ran
// this library is a development ("tip") version. Tip versions include a
// commit SHA and change frequently, so they are less useful as a metric
// tag.
func DevelGoVersion() bool {
	return isDevel(GoVersion())
}
