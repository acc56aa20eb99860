//go:build unix

package procstats

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

func collectRusageInfo() (rusageInfo, error) {
	rusage := unix.Rusage{}
	if err := unix.Getrusage(unix.RUSAGE_SELF, &rusage); err != nil {
		return rusageInfo{}, err
	}

	maxrss := int64(rusage.Maxrss)
	if runtime.GOOS != "darwin" { // getrusage reports kilobytes outside of macOS
		maxrss *= 1024
	}

	return rusageInfo{
		utime:   time.Duration(rusage.Utime.Nano()),
		stime:   time.Duration(rusage.Stime.Nano()),
		maxrss:  maxrss,
		minflt:  int64(rusage.Minflt),
		majflt:  int64(rusage.Majflt),
		inblock: int64(rusage.Inblock),
		oublock: int64(rusage.Oublock),
		nvcsw:   int64(rusage.Nvcsw),
		nivcsw:  int64(rusage.Nivcsw),
	}, nil
}
