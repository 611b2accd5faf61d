package mathieu

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestComplexSchur(t *testing.T) {
	{ // Triangular input needs no sweeps
		n := 3
		h := []complex128{
			1, 2, 3,
			0, 4i, 5,
			0, 0, -1,
		}
		its, err := complexSchur(n, h, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, its)
		assert.Equal(t, complex128(4i), h[4])
	}
	{ // Eigenpairs of a general complex recurrence matrix
		rc, _ := NewRecurrence(EvenPi, 16)
		for _, q := range []complex128{complex(0.7, 0.3), complex(2, 3), complex(-5, 12)} {
			var (
				N = rc.N
				A = rc.ComplexAt(q, nil)
				T = rc.ComplexAt(q, nil)
				z = make([]complex128, N*N)
			)
			_, err := complexSchur(N, T, z, 0)
			require.NoError(t, err)
			var trace, sum complex128
			for i := 0; i < N; i++ {
				trace += A[i*N+i]
				sum += T[i*N+i]
				for j := 0; j < i; j++ {
					assert.Equal(t, complex128(0), T[i*N+j])
				}
			}
			assert.InDelta(t, 0, cmplx.Abs(trace-sum)/cmplx.Abs(trace), 1.e-12)
			V := triangularEigenvectors(N, T, z)
			v := make([]complex128, N)
			for k := 0; k < N; k++ {
				for i := 0; i < N; i++ {
					v[i] = V[i*N+k]
				}
				assert.Less(t, matVecResidual(N, A, T[k*N+k], v), 1.e-9, "q = %v, k = %d", q, k)
			}
		}
	}
	{ // A full upper Hessenberg input ends exactly triangular
		var (
			n = 6
			A = make([]complex128, n*n)
			T = make([]complex128, n*n)
			z = make([]complex128, n*n)
		)
		for i := 0; i < n; i++ {
			for j := i - 1; j < n; j++ {
				if j < 0 {
					continue
				}
				A[i*n+j] = complex(float64(i+2*j+1)/7, float64(3*i-j)/5)
			}
		}
		copy(T, A)
		its, err := complexSchur(n, T, z, 0)
		require.NoError(t, err)
		assert.Greater(t, its, 0)
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				assert.Equal(t, complex128(0), T[i*n+j], "(%d, %d)", i, j)
			}
		}
		V := triangularEigenvectors(n, T, z)
		v := make([]complex128, n)
		for k := 0; k < n; k++ {
			for i := 0; i < n; i++ {
				v[i] = V[i*n+k]
			}
			assert.Less(t, matVecResidual(n, A, T[k*n+k], v), 1.e-9, "k = %d", k)
		}
	}
	{ // The sweep budget turns into ErrNoConvergence
		rc, _ := NewRecurrence(EvenPi, 10)
		T := rc.ComplexAt(complex(2, 3), nil)
		its, err := complexSchur(rc.N, T, nil, 1)
		assert.True(t, errors.Is(err, ErrNoConvergence))
		assert.Equal(t, 2, its)
	}
	{ // Complex QR agrees with the realized real form on the imaginary axis
		rc, _ := NewRecurrence(EvenPi, 20)
		for _, s := range []float64{0.5, 1.466466, 1.5, 3} {
			var (
				N   = rc.N
				T   = rc.ComplexAt(complex(0, s), nil)
				eig mat.Eigen
			)
			_, err := complexSchur(N, T, nil, 0)
			require.NoError(t, err)
			R, err := rc.RealizedAt(s, nil)
			require.NoError(t, err)
			require.True(t, eig.Factorize(R, mat.EigenNone))
			realized := eig.Values(nil)
			schur := make([]complex128, N)
			for i := range schur {
				schur[i] = T[i*N+i]
			}
			for i := range schur {
				assert.InDelta(t, 0, nearestDistance(schur[i], realized), 1.e-8, "s = %v, i = %d", s, i)
			}
		}
	}
}

func nearestDistance(z complex128, set []complex128) (d float64) {
	d = math.Inf(1)
	for _, w := range set {
		d = math.Min(d, cmplx.Abs(z-w))
	}
	return
}

// matVecResidual is ||A v - a v|| / ||v|| for row major A.
func matVecResidual(N int, A []complex128, a complex128, v []complex128) float64 {
	var num, den float64
	for i := 0; i < N; i++ {
		var sum complex128
		for j := 0; j < N; j++ {
			sum += A[i*N+j] * v[j]
		}
		d := cmplx.Abs(sum - a*v[i])
		num += d * d
		den += cmplx.Abs(v[i]) * cmplx.Abs(v[i])
	}
	return math.Sqrt(num / den)
}

func cAbsDiff(a, b complex128) float64 { return cmplx.Abs(a - b) }
