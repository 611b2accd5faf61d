package utils

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
)

// BLASBackend names the BLAS implementation gonum dispatches to. Building
// with -tags netlib swaps the pure Go one for OpenBLAS.
var BLASBackend = "gonum"

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v)
	case complex128:
		return cmplx.IsNaN(v)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case []complex128:
		for _, z := range v {
			if cmplx.IsNaN(z) {
				return true
			}
		}
	}
	return false
}

func NaNArrayC(N int) (v []complex128) {
	v = make([]complex128, N)
	for i := range v {
		v[i] = cmplx.NaN()
	}
	return
}
