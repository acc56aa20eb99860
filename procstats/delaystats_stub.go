//go:build !linux

package procstats

import "errors"

func collectDelayInfo(int) (DelayInfo, error) {
	return DelayInfo{}, errors.New("procstats: delay accounting is only available on linux")
}
