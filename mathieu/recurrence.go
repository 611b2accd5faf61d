// Package mathieu solves the periodic Mathieu eigen-problem
//
//	y'' + (a - 2q cos 2x) y = 0
//
// for batches of real or complex q by truncating the three term recurrence of
// the Fourier coefficients, and evaluates the resulting ce/se functions.
package mathieu

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/notargets/gomathieu/utils"
	"gonum.org/v1/gonum/mat"
)

const sqrtHalf = 0.7071067811865476

// Recurrence holds the q independent structure of the truncated recurrence
// matrix A(q) = diag(k_r^2) + q·P for one class and truncation order. It is
// built once and substituted for every sample of a batch.
type Recurrence struct {
	Class      Class
	Order      int // M, the Fourier modes k = 0..M-1 shared by all classes
	N          int // M/2, the modes carried by this class
	Diagonal   []float64
	Pattern    utils.CSR
	realizable bool
}

func NewRecurrence(class Class, M int) (rc *Recurrence, err error) {
	if M <= 0 || M%2 != 0 {
		err = fmt.Errorf("%w: M = %d", ErrTruncationOrder, M)
		return
	}
	if class > OddTwoPi {
		err = fmt.Errorf("%w: %d", ErrUnknownClass, uint8(class))
		return
	}
	var (
		N   = M / 2
		dok = utils.NewDOK(N, N)
	)
	rc = &Recurrence{
		Class:    class,
		Order:    M,
		N:        N,
		Diagonal: make([]float64, N),
	}
	for r := 0; r < N; r++ {
		k := float64(class.Wavenumber(r))
		rc.Diagonal[r] = k * k
	}
	// Period 2π classes fold the cos/sin(-x) term back onto the first row
	switch class {
	case EvenTwoPi:
		dok.Set(0, 0, 1)
	case OddTwoPi:
		dok.Set(0, 0, -1)
	}
	for r := 0; r < N-1; r++ {
		v := 1.
		if class == EvenPi && r == 0 {
			// symmetric form of the a A_0 = q A_2, (a-4) A_2 = q(2A_0 + A_4) rows
			v = math.Sqrt2
		}
		dok.Set(r, r+1, v)
		dok.Set(r+1, r, v)
	}
	dok.SetReadOnly(fmt.Sprintf("%v recurrence pattern, M = %d", class, M))
	rc.Pattern = dok.ToCSR()
	rc.realizable = !rc.Pattern.HasDiagonal()
	return
}

// Realizable reports whether purely imaginary q maps to a real matrix under
// the similarity S = diag(i^r).
func (rc *Recurrence) Realizable() bool { return rc.realizable }

// SymmetricAt writes A(q) for real q into dst, allocating when dst is nil or
// of the wrong size.
func (rc *Recurrence) SymmetricAt(q float64, dst *mat.SymDense) *mat.SymDense {
	if dst == nil || dst.SymmetricDim() != rc.N {
		dst = mat.NewSymDense(rc.N, nil)
	} else {
		dst.Zero()
	}
	for i, d := range rc.Diagonal {
		dst.SetSym(i, i, d)
	}
	rc.Pattern.DoNonZero(func(i, j int, v float64) {
		if i <= j {
			dst.SetSym(i, j, dst.At(i, j)+q*v)
		}
	})
	return dst
}

// RealizedAt writes S⁻¹A(i·s)S with S = diag(i^r), a real non-symmetric
// matrix with the same spectrum as A(i·s). Eigenvectors map back with
// v_r = i^r w_r.
func (rc *Recurrence) RealizedAt(s float64, dst *mat.Dense) (*mat.Dense, error) {
	if !rc.realizable {
		return nil, fmt.Errorf("%w: %v", ErrNotRealizable, rc.Class)
	}
	if dst == nil || dst.IsEmpty() {
		dst = mat.NewDense(rc.N, rc.N, nil)
	} else if r, c := dst.Dims(); r != rc.N || c != rc.N {
		dst = mat.NewDense(rc.N, rc.N, nil)
	} else {
		dst.Zero()
	}
	for i, d := range rc.Diagonal {
		dst.Set(i, i, d)
	}
	rc.Pattern.DoNonZero(func(i, j int, v float64) {
		switch {
		case j == i+1:
			dst.Set(i, j, -s*v)
		case j == i-1:
			dst.Set(i, j, s*v)
		}
	})
	return dst, nil
}

// ComplexAt writes A(q) row major into dst.
func (rc *Recurrence) ComplexAt(q complex128, dst []complex128) []complex128 {
	var (
		N = rc.N
	)
	if len(dst) != N*N {
		dst = make([]complex128, N*N)
	} else {
		for i := range dst {
			dst[i] = 0
		}
	}
	for i, d := range rc.Diagonal {
		dst[i*N+i] = complex(d, 0)
	}
	rc.Pattern.DoNonZero(func(i, j int, v float64) {
		dst[i*N+j] += q * complex(v, 0)
	})
	return dst
}

// ClassicalAt writes the recurrence acting on the classical coefficients A_k
// (non-symmetric for ce_{2n}: row 1 carries 2q A_0).
func (rc *Recurrence) ClassicalAt(q complex128, dst []complex128) []complex128 {
	var (
		N = rc.N
	)
	dst = rc.ComplexAt(q, dst)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			dst[i*N+j] *= complex(rc.Class.coefficientScale(i)/rc.Class.coefficientScale(j), 0)
		}
	}
	return dst
}

// Residual returns ||A v - a v|| / ||v|| for classical coefficients v.
func (rc *Recurrence) Residual(q, a complex128, v []complex128) float64 {
	var (
		N       = rc.N
		C       = rc.ClassicalAt(q, nil)
		num, dn float64
	)
	for i := 0; i < N; i++ {
		var sum complex128
		for j := 0; j < N; j++ {
			sum += C[i*N+j] * v[j]
		}
		d := cmplx.Abs(sum - a*v[i])
		num += d * d
		dn += cmplx.Abs(v[i]) * cmplx.Abs(v[i])
	}
	return math.Sqrt(num / dn)
}

func imagUnitPower(r int) complex128 {
	switch r % 4 {
	case 0:
		return 1
	case 1:
		return 1i
	case 2:
		return -1
	}
	return -1i
}
