package mathieu

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/notargets/gomathieu/utils"
)

// complexSchur reduces the upper Hessenberg matrix h (row major, n×n) to
// upper triangular Schur form T = Zᴴ h Z with single shift QR sweeps built
// from Givens rotations. There is no Hessenberg reduction step: callers pass
// the tridiagonal recurrence matrices. h is overwritten by T; z, when non nil,
// accumulates Z. maxIts bounds the total number of sweeps, 30·max(10, n) when
// not positive.
func complexSchur(n int, h, z []complex128, maxIts int) (iterations int, err error) {
	var (
		hi, its int
		cs      = make([]float64, n)
		sn      = make([]complex128, n)
	)
	if maxIts <= 0 {
		maxIts = 30 * max(10, n)
	}
	if z != nil {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				z[i*n+j] = 0
			}
			z[i*n+i] = 1
		}
	}
	hi = n - 1
	for hi >= 0 {
		// find the start of the unreduced active block
		l := hi
		for ; l > 0; l-- {
			tst := utils.CAbs1(h[(l-1)*n+l-1]) + utils.CAbs1(h[l*n+l])
			if tst == 0 {
				tst = hessenbergNorm(n, h)
			}
			if utils.CAbs1(h[l*n+l-1]) <= utils.MACHEPS*tst {
				h[l*n+l-1] = 0
				break
			}
		}
		if l == hi {
			hi--
			its = 0
			continue
		}
		its++
		iterations++
		if iterations > maxIts {
			err = fmt.Errorf("%w: complex QR stalled at row %d after %d sweeps",
				ErrNoConvergence, hi, maxIts)
			return
		}
		mu := wilkinsonShift(h[(hi-1)*n+hi-1], h[(hi-1)*n+hi], h[hi*n+hi-1], h[hi*n+hi])
		if its%10 == 0 {
			// exceptional shift breaks up cycling
			mu = h[hi*n+hi] + complex(utils.CAbs1(h[hi*n+hi-1]), 0)
		}
		for k := l; k <= hi; k++ {
			h[k*n+k] -= mu
		}
		for k := l; k < hi; k++ {
			c, s := givens(h[k*n+k], h[(k+1)*n+k])
			cs[k], sn[k] = c, s
			for j := k; j < n; j++ {
				h1, h2 := h[k*n+j], h[(k+1)*n+j]
				h[k*n+j] = complex(c, 0)*h1 + s*h2
				h[(k+1)*n+j] = -cmplx.Conj(s)*h1 + complex(c, 0)*h2
			}
			// the right rotations below rely on R being exactly triangular
			h[(k+1)*n+k] = 0
		}
		for k := l; k < hi; k++ {
			c, s := complex(cs[k], 0), sn[k]
			iMax := k + 2
			if iMax > hi {
				iMax = hi
			}
			for i := 0; i <= iMax; i++ {
				h1, h2 := h[i*n+k], h[i*n+k+1]
				h[i*n+k] = h1*c + h2*cmplx.Conj(s)
				h[i*n+k+1] = -h1*s + h2*c
			}
			if z != nil {
				for i := 0; i < n; i++ {
					z1, z2 := z[i*n+k], z[i*n+k+1]
					z[i*n+k] = z1*c + z2*cmplx.Conj(s)
					z[i*n+k+1] = -z1*s + z2*c
				}
			}
		}
		for k := l; k <= hi; k++ {
			h[k*n+k] += mu
		}
	}
	return
}

// givens returns c, s with [c s; -conj(s) c]·[x; y] = [r; 0], c real.
func givens(x, y complex128) (c float64, s complex128) {
	switch {
	case y == 0:
		return 1, 0
	case x == 0:
		return 0, cmplx.Conj(y) / complex(cmplx.Abs(y), 0)
	}
	var (
		ax  = cmplx.Abs(x)
		nrm = math.Hypot(ax, cmplx.Abs(y))
	)
	c = ax / nrm
	s = (x / complex(ax, 0)) * cmplx.Conj(y) / complex(nrm, 0)
	return
}

// wilkinsonShift returns the eigenvalue of [a b; c d] closest to d.
func wilkinsonShift(a, b, c, d complex128) complex128 {
	var (
		half = (a - d) / 2
		disc = cmplx.Sqrt(half*half + b*c)
		m1   = (a+d)/2 + disc
		m2   = (a+d)/2 - disc
	)
	if cmplx.Abs(m1-d) < cmplx.Abs(m2-d) {
		return m1
	}
	return m2
}

func hessenbergNorm(n int, h []complex128) (nrm float64) {
	for i := 0; i < n; i++ {
		var row float64
		for j := 0; j < n; j++ {
			row += utils.CAbs1(h[i*n+j])
		}
		nrm = math.Max(nrm, row)
	}
	return
}

// triangularEigenvectors solves (T - t_kk I) x = 0 with x_k = 1 for every k
// and returns the columns Z x, row major n×n. Near-singular pivots are
// perturbed to eps·||T|| as LAPACK's ztrevc does.
func triangularEigenvectors(n int, t, z []complex128) (v []complex128) {
	var (
		x    = make([]complex128, n)
		smin = math.Max(utils.MACHEPS*hessenbergNorm(n, t), math.SmallestNonzeroFloat64)
	)
	v = make([]complex128, n*n)
	for k := 0; k < n; k++ {
		lambda := t[k*n+k]
		for i := range x {
			x[i] = 0
		}
		x[k] = 1
		for i := k - 1; i >= 0; i-- {
			var sum complex128
			for j := i + 1; j <= k; j++ {
				sum += t[i*n+j] * x[j]
			}
			d := t[i*n+i] - lambda
			if utils.CAbs1(d) < smin {
				d = complex(smin, 0)
			}
			x[i] = -sum / d
		}
		for i := 0; i < n; i++ {
			var sum complex128
			for j := 0; j <= k; j++ {
				sum += z[i*n+j] * x[j]
			}
			v[i*n+k] = sum
		}
	}
	return
}
