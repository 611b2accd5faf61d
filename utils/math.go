package utils

import (
	"math"
	"math/cmplx"
)

// Linspace returns N equally spaced points on [min, max], endpoints included
func Linspace(min, max float64, N int) (x []float64) {
	x = make([]float64, N)
	switch N {
	case 0:
		return
	case 1:
		x[0] = min
		return
	}
	dx := (max - min) / float64(N-1)
	for i := range x {
		x[i] = min + float64(i)*dx
	}
	x[N-1] = max
	return
}

// CAbs1 is the |Re|+|Im| norm used by LAPACK for cheap complex magnitude tests
func CAbs1(z complex128) float64 {
	return math.Abs(real(z)) + math.Abs(imag(z))
}

func IsRealC(z complex128) bool {
	return imag(z) == 0
}

func IsImagC(z complex128) bool {
	return real(z) == 0 && imag(z) != 0
}

func IsFiniteC(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}
