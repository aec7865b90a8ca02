//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

func countInstructions(f func() error) (instructions uint64, err error) {
	var pv *perf.ProfileValue
	if pv, err = perf.CPUInstructions(f); err != nil {
		return
	}
	instructions = pv.Value
	return
}
