//go:build !unix

package procstats

import "errors"

func collectRusageInfo() (rusageInfo, error) {
	return rusageInfo{}, errors.New("procstats: resource usage counters are only available on unix systems")
}
