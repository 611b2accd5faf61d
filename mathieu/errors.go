package mathieu

import (
	"errors"
	"fmt"
)

var (
	ErrTruncationOrder        = errors.New("truncation order must be a positive even integer")
	ErrEmptyBatch             = errors.New("empty q batch")
	ErrInvalidQ               = errors.New("q must be finite")
	ErrNoConvergence          = errors.New("eigen-decomposition did not converge")
	ErrAmbiguousBranch        = errors.New("ambiguous eigenvalue branch assignment")
	ErrSelfOrthogonal         = errors.New("eigenvector is self-orthogonal under the bilinear norm")
	ErrTruncationInsufficient = errors.New("trailing coefficient above truncation tolerance")
	ErrHarmonicRange          = errors.New("harmonic index out of range")
	ErrNotRealizable          = errors.New("recurrence has no real similarity form for this q")
	ErrUnknownClass           = errors.New("unknown parity/period class")
	ErrNotBracketed           = errors.New("interval does not bracket a coalescence")
)

// BranchAmbiguity records a tracking step where rival candidates were equally
// close to the previous sample in both distance and phase.
type BranchAmbiguity struct {
	Sample   int
	Q        complex128
	Branches []int
}

func (b *BranchAmbiguity) Error() string {
	return fmt.Sprintf("%v: sample %d (q = %v) branches %v", ErrAmbiguousBranch, b.Sample, b.Q, b.Branches)
}

func (b *BranchAmbiguity) Is(target error) bool {
	return target == ErrAmbiguousBranch
}

// TruncationWarning flags a harmonic whose coefficients have not decayed by
// the last retained term.
type TruncationWarning struct {
	Harmonic int
	Ratio    float64
}

func (w *TruncationWarning) Error() string {
	return fmt.Sprintf("%v: harmonic %d, |A_last|/max|A| = %.3e", ErrTruncationInsufficient, w.Harmonic, w.Ratio)
}

func (w *TruncationWarning) Is(target error) bool {
	return target == ErrTruncationInsufficient
}
