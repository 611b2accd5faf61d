//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

func countInstructions(fn func() error) (instructions uint64, err error) {
	var (
		pv    *perf.ProfileValue
		inner error
	)
	pv, err = perf.CPUInstructions(func() error {
		inner = fn()
		return inner
	})
	if inner != nil {
		return 0, inner
	}
	if err != nil {
		return
	}
	instructions = pv.Value
	return
}
