package mathieu

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/cmplxs"
)

// selfOrthogonalTol bounds |Σ w_r c_r²| / Σ w_r |c_r|² below which the bilinear norm
// is treated as vanished.
const selfOrthogonalTol = 1.e-12

// Normalization selects the scale of the stored Fourier coefficients.
type Normalization uint8

const (
	// NormClassical is 2A_0² + Σ A_2r² = 1 for ce_{2n} and Σ A² = 1 for the
	// other classes, i.e. ∫ce² = π over one 2π period.
	NormClassical Normalization = iota
	// NormUnit is Σ A² = 1 over the stored coefficients for every class, so
	// q = 0 gives A_r = δ_nr and ce_0 = 1.
	NormUnit
)

func (n Normalization) String() string {
	switch n {
	case NormClassical:
		return "classical"
	case NormUnit:
		return "unit"
	}
	return fmt.Sprintf("Normalization(%d)", uint8(n))
}

func ParseNormalization(name string) (n Normalization, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classical":
		n = NormClassical
	case "unit":
		n = NormUnit
	default:
		err = fmt.Errorf("unknown normalization %q", name)
	}
	return
}

// normWeight is the weight of coefficient r in the bilinear norm.
func (sv *Solver) normWeight(r int) float64 {
	if sv.cfg.Normalization == NormClassical {
		s := sv.rec.Class.coefficientScale(r)
		return 1 / (s * s)
	}
	return 1
}

// normalize scales the classical coefficient vector c of harmonic h to unit
// weighted bilinear norm Σ w_r c_r² = 1 and fixes its sign. The sum is not
// conjugated so the result is analytic in q. Real q uses the classical sign
// ce(0) > 0 or se'(0) > 0. Complex q keeps Re⟨prev, c⟩ ≥ 0 against the
// branch's previous vector and falls back to the classical rule on the real
// part.
func (sv *Solver) normalize(q complex128, h int, c, prev []complex128) (warn error) {
	var (
		bilinear complex128
		euclid   float64
	)
	for r, v := range c {
		w := sv.normWeight(r)
		bilinear += complex(w, 0) * v * v
		euclid += w * real(v*cmplx.Conj(v))
	}
	if euclid == 0 {
		return
	}
	if cmplx.Abs(bilinear) <= selfOrthogonalTol*euclid {
		cmplxs.Scale(complex(1/math.Sqrt(euclid), 0), c)
		warn = ErrSelfOrthogonal
	} else {
		cmplxs.Scale(1/cmplx.Sqrt(bilinear), c)
	}
	var flip bool
	if !isReal(q) && prev != nil {
		flip = real(cmplxs.Dot(prev, c)) < 0
	} else {
		flip = real(sv.signReference(c)) < 0
	}
	if flip {
		cmplxs.Scale(-1, c)
	}
	return
}

// signReference is ce(0) for even classes and se'(0) for odd classes.
func (sv *Solver) signReference(c []complex128) (ref complex128) {
	var (
		class = sv.rec.Class
	)
	for r, v := range c {
		if class.Even() {
			ref += v
		} else {
			ref += v * complex(float64(class.Wavenumber(r)), 0)
		}
	}
	return
}

// truncationCheck flags harmonics whose last retained coefficient has not
// decayed below TruncationTolerance relative to the largest one.
func (sv *Solver) truncationCheck(h int, v []complex128) *TruncationWarning {
	var (
		last = cmplx.Abs(v[len(v)-1])
		max  = cmplx.Abs(cmplxs.MaxAbs(v))
	)
	if max == 0 {
		return nil
	}
	if ratio := last / max; ratio > sv.cfg.TruncationTolerance || math.IsNaN(ratio) {
		return &TruncationWarning{Harmonic: h, Ratio: ratio}
	}
	return nil
}
