package mathieu

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// LocateExceptionalPoint bisects the imaginary axis q = i·s between sLo and
// sHi for the point where the pair (n, n+1), ordered by real part, turns from
// two real eigenvalues into a conjugate pair. It returns s and the coalesced
// characteristic value. Only classes whose pattern has no diagonal qualify,
// since their matrix is real along the imaginary axis.
func LocateExceptionalPoint(class Class, M, n int, sLo, sHi, tol float64) (s float64, a complex128, err error) {
	var (
		rc  *Recurrence
		dst *mat.Dense
		eig mat.Eigen
	)
	if rc, err = NewRecurrence(class, M); err != nil {
		return
	}
	if !rc.Realizable() {
		err = fmt.Errorf("%w: %v", ErrNotRealizable, class)
		return
	}
	if n < 0 || n+1 >= rc.N {
		err = fmt.Errorf("%w: pair (%d, %d) with N = %d", ErrHarmonicRange, n, n+1, rc.N)
		return
	}
	if tol <= 0 {
		tol = 1.e-10
	}
	pair := func(s float64) (lo, hi complex128, err error) {
		if dst, err = rc.RealizedAt(s, dst); err != nil {
			return
		}
		if ok := eig.Factorize(dst, mat.EigenNone); !ok {
			err = fmt.Errorf("%w: realized solve at s = %v", ErrNoConvergence, s)
			return
		}
		values := eig.Values(nil)
		sort.SliceStable(values, func(i, j int) bool {
			if real(values[i]) != real(values[j]) {
				return real(values[i]) < real(values[j])
			}
			return imag(values[i]) < imag(values[j])
		})
		return values[n], values[n+1], nil
	}
	coalesced := func(s float64) (bool, complex128, error) {
		lo, hi, err := pair(s)
		return imag(lo) != 0 || imag(hi) != 0, (lo + hi) / 2, err
	}
	var (
		cLo, cHi bool
		mid      complex128
	)
	if cLo, _, err = coalesced(sLo); err != nil {
		return
	}
	if cHi, a, err = coalesced(sHi); err != nil {
		return
	}
	if cLo || !cHi {
		err = fmt.Errorf("%w: s in [%v, %v], pair (%d, %d)", ErrNotBracketed, sLo, sHi, n, n+1)
		return
	}
	for it := 0; it < 200 && sHi-sLo > tol; it++ {
		s = 0.5 * (sLo + sHi)
		var c bool
		if c, mid, err = coalesced(s); err != nil {
			return
		}
		if c {
			sHi, a = s, mid
		} else {
			sLo = s
		}
	}
	s = 0.5 * (sLo + sHi)
	a = complex(real(a), 0)
	return
}
