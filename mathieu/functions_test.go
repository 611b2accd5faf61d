package mathieu

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomathieu/utils"
)

func TestEvaluate(t *testing.T) {
	{ // q = 0, M = 10: ce_0 is the constant 1 under unit normalization
		cfg := DefaultConfig(EvenPi, 10)
		cfg.Normalization = NormUnit
		sv, err := NewSolver(cfg)
		require.NoError(t, err)
		sp, err := sv.Solve([]complex128{0})
		require.NoError(t, err)
		assert.Equal(t, 0., real(sp.Values.At(0, 0)))
		y := utils.Linspace(0, math.Pi, 33)
		ft, err := sp.Evaluate([]int{0, 2}, y)
		require.NoError(t, err)
		for j, yj := range y {
			assert.InDelta(t, 1, real(ft.At(0, j, 0)), 1.e-14)
			assert.InDelta(t, 0, imag(ft.At(0, j, 0)), 1.e-14)
			assert.InDelta(t, math.Cos(4*yj), real(ft.At(1, j, 0)), 1.e-14)
		}
		assert.Equal(t, []int{0, 2}, ft.Harmonics)
		assert.Len(t, ft.Profile(1, 0), len(y))
	}
	{ // ∫ce_n ce_m over one period is π δ_nm under the classical scale
		var (
			nY = 256
			y  = make([]float64, nY)
			dy = 2 * math.Pi / float64(nY)
		)
		for j := range y {
			y[j] = float64(j) * dy
		}
		for _, class := range []Class{EvenPi, EvenTwoPi, OddPi, OddTwoPi} {
			sv := newTestSolver(t, class, 24)
			sp, err := sv.Solve([]complex128{1, 3, 2.5i})
			require.NoError(t, err)
			harmonics := []int{0, 1, 2, 3}
			ft, err := sp.Evaluate(harmonics, y)
			require.NoError(t, err)
			for s := range sp.Q {
				for i := range harmonics {
					for k := range harmonics {
						var sum complex128
						for j := range y {
							sum += ft.At(i, j, s) * ft.At(k, j, s) * complex(dy, 0)
						}
						expected := 0.
						if i == k {
							expected = math.Pi
						}
						assert.InDelta(t, 0, cmplx.Abs(sum-complex(expected, 0)), 1.e-9,
							"%v s = %d (%d, %d)", class, s, i, k)
					}
				}
			}
		}
	}
	{ // Derivative matches a central difference
		var (
			h  = 1.e-5
			y0 = []float64{0.3, 1.1, 2.9}
			yp = make([]float64, len(y0))
			ym = make([]float64, len(y0))
		)
		for j := range y0 {
			yp[j], ym[j] = y0[j]+h, y0[j]-h
		}
		for _, class := range []Class{EvenPi, OddTwoPi} {
			sv := newTestSolver(t, class, 20)
			sp, err := sv.Solve([]complex128{complex(1, 2)})
			require.NoError(t, err)
			d, err := sp.EvaluateDerivative([]int{0, 3}, y0)
			require.NoError(t, err)
			fp, _ := sp.Evaluate([]int{0, 3}, yp)
			fm, _ := sp.Evaluate([]int{0, 3}, ym)
			for i := 0; i < 2; i++ {
				for j := range y0 {
					fd := (fp.At(i, j, 0) - fm.At(i, j, 0)) / complex(2*h, 0)
					assert.InDelta(t, 0, cmplx.Abs(fd-d.At(i, j, 0)), 1.e-6, "%v", class)
				}
			}
		}
	}
	{ // The worker count comes from the solver configuration and does not change results
		var (
			q   = []complex128{0.5, 2i, complex(1, 1), 4, 7i}
			y   = utils.Linspace(0, math.Pi, 17)
			fts []*FunctionTable
		)
		for _, degree := range []int{1, 3} {
			cfg := DefaultConfig(OddPi, 20)
			cfg.ParallelDegree = degree
			sv, err := NewSolver(cfg)
			require.NoError(t, err)
			sp, err := sv.Solve(q)
			require.NoError(t, err)
			assert.Equal(t, degree, sp.ParallelDegree)
			ft, err := sp.Evaluate([]int{0, 1, 2}, y)
			require.NoError(t, err)
			fts = append(fts, ft)
		}
		require.Len(t, fts[1].Data, len(fts[0].Data))
		for i := range fts[0].Data {
			assert.InDelta(t, 0, cmplx.Abs(fts[0].Data[i]-fts[1].Data[i]), 1.e-12)
		}
	}
	{ // Errors and failed samples
		sv := newTestSolver(t, EvenPi, 10)
		sp, err := sv.Solve([]complex128{1, 2})
		require.NoError(t, err)
		_, err = sp.Evaluate([]int{0, 5}, []float64{0})
		assert.True(t, errors.Is(err, ErrHarmonicRange))
		_, err = sp.EvaluateDerivative([]int{-1}, []float64{0})
		assert.True(t, errors.Is(err, ErrHarmonicRange))

		sp.Samples[0].Err = ErrNoConvergence
		sp.fillNaN(0)
		ft, err := sp.Evaluate([]int{1}, []float64{0, 1})
		require.NoError(t, err)
		assert.True(t, cmplx.IsNaN(ft.At(0, 1, 0)))
		assert.False(t, cmplx.IsNaN(ft.At(0, 1, 1)))

		ft, err = sp.Evaluate(nil, []float64{0, 1})
		require.NoError(t, err)
		assert.Empty(t, ft.Data)
	}
}
