package mathieu

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/mat"
)

// Evaluate returns ce_n(y; q) (se_n for odd classes) for the requested
// harmonics at every sample of the spectrum.
func (sp *Spectrum) Evaluate(harmonics []int, y []float64) (*FunctionTable, error) {
	return sp.evaluate(harmonics, y, false)
}

// EvaluateDerivative returns the y derivative of the functions Evaluate
// returns.
func (sp *Spectrum) EvaluateDerivative(harmonics []int, y []float64) (*FunctionTable, error) {
	return sp.evaluate(harmonics, y, true)
}

func (sp *Spectrum) evaluate(harmonics []int, y []float64, derivative bool) (ft *FunctionTable, err error) {
	var (
		N  = sp.Recurrence.N
		nH = len(harmonics)
		nY = len(y)
		nQ = len(sp.Q)
	)
	for _, h := range harmonics {
		if h < 0 || h >= N {
			err = fmt.Errorf("%w: %d not in [0, %d)", ErrHarmonicRange, h, N)
			return
		}
	}
	ft = NewFunctionTable(append([]int(nil), harmonics...), append([]float64(nil), y...), nQ)
	if nH == 0 || nY == 0 {
		return
	}
	var (
		C       = sp.basis(y, derivative)
		batches = min(max(sp.ParallelDegree, 1), nQ)
	)
	parallel.Range(0, nQ, batches, func(low, high int) {
		var (
			Are = mat.NewDense(nH, N, nil)
			Aim = mat.NewDense(nH, N, nil)
			Fre = mat.NewDense(nH, nY, nil)
			Fim = mat.NewDense(nH, nY, nil)
		)
		for s := low; s < high; s++ {
			if !sp.Samples[s].OK() {
				nan := cmplx.NaN()
				for i := range harmonics {
					for j := 0; j < nY; j++ {
						ft.Set(i, j, s, nan)
					}
				}
				continue
			}
			for i, h := range harmonics {
				for r := 0; r < N; r++ {
					c := sp.Coefficients.At(h, r, s)
					Are.Set(i, r, real(c))
					Aim.Set(i, r, imag(c))
				}
			}
			Fre.Mul(Are, C)
			Fim.Mul(Aim, C)
			for i := range harmonics {
				for j := 0; j < nY; j++ {
					ft.Set(i, j, s, complex(Fre.At(i, j), Fim.At(i, j)))
				}
			}
		}
	})
	return
}

// basis is the N×len(y) matrix cos(k_r y_j) (sin for odd classes), or its
// y derivative.
func (sp *Spectrum) basis(y []float64, derivative bool) (C *mat.Dense) {
	var (
		N     = sp.Recurrence.N
		class = sp.Class
	)
	C = mat.NewDense(N, len(y), nil)
	for r := 0; r < N; r++ {
		k := float64(class.Wavenumber(r))
		for j, yj := range y {
			var v float64
			switch {
			case class.Even() && !derivative:
				v = math.Cos(k * yj)
			case class.Even():
				v = -k * math.Sin(k*yj)
			case !derivative:
				v = math.Sin(k * yj)
			default:
				v = k * math.Cos(k*yj)
			}
			C.Set(r, j, v)
		}
	}
	return
}
