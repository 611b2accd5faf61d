package mathieu

import (
	"fmt"
	"math/cmplx"
	"sort"
	"time"

	"github.com/notargets/gomathieu/utils"
	"gonum.org/v1/gonum/mat"
)

// Method names the eigen-decomposition used for a sample.
type Method uint8

const (
	MethodSymmetric Method = iota // real q, LAPACK Dsyev through mat.EigenSym
	MethodRealized                // imaginary q, real similarity form through mat.Eigen
	MethodSchur                   // general complex q, complex shifted QR
)

func (m Method) String() string {
	switch m {
	case MethodSymmetric:
		return "symmetric"
	case MethodRealized:
		return "realized"
	case MethodSchur:
		return "schur"
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// Sample is the per-q status slot of a Spectrum. A non-nil Err means the
// decomposition failed and the table entries of this sample are NaN.
type Sample struct {
	Q                 complex128
	Method            Method
	Err               error
	Ambiguity         *BranchAmbiguity
	Warnings          []error
	ContinuationSteps int
}

func (s *Sample) OK() bool { return s.Err == nil }

// Spectrum is the labeled eigen-decomposition of a q batch. Tables are
// indexed by harmonic first and by the caller's sample order last.
type Spectrum struct {
	Class          Class
	Order          int
	Normalization  Normalization
	Recurrence     *Recurrence
	Q              []complex128
	Values         *ValueTable
	Coefficients   *CoefficientTable
	Samples        []Sample
	ParallelDegree int // workers used by Evaluate
}

// Harmonics is the number of harmonics (and coefficients) per sample.
func (sp *Spectrum) Harmonics() int { return sp.Recurrence.N }

type Solver struct {
	cfg Config
	rec *Recurrence
}

func NewSolver(cfg Config) (sv *Solver, err error) {
	cfg.setDefaults()
	sv = &Solver{cfg: cfg}
	if sv.rec, err = NewRecurrence(cfg.Class, cfg.TruncationOrder); err != nil {
		return nil, err
	}
	return
}

func (sv *Solver) Recurrence() *Recurrence { return sv.rec }

// eigenpairs is one unlabeled decomposition. vectors holds the symmetric
// form eigenvectors in columns, row major.
type eigenpairs struct {
	values  []complex128
	vectors []complex128
}

type workspace struct {
	sym    *mat.SymDense
	dense  *mat.Dense
	cplx   []complex128
	eigSym mat.EigenSym
	eig    mat.Eigen
}

func (sv *Solver) decompose(q complex128, ws *workspace, wantVectors bool) (ep eigenpairs, method Method, err error) {
	var (
		N = sv.rec.N
	)
	ep.values = make([]complex128, N)
	switch {
	case utils.IsRealC(q):
		method = MethodSymmetric
		ws.sym = sv.rec.SymmetricAt(real(q), ws.sym)
		if ok := ws.eigSym.Factorize(ws.sym, wantVectors); !ok {
			err = fmt.Errorf("%w: symmetric solve at q = %v", ErrNoConvergence, q)
			return
		}
		for i, v := range ws.eigSym.RawValues() {
			ep.values[i] = complex(v, 0)
		}
		if wantVectors {
			var V mat.Dense
			ws.eigSym.VectorsTo(&V)
			ep.vectors = make([]complex128, N*N)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					ep.vectors[i*N+j] = complex(V.At(i, j), 0)
				}
			}
		}
	case utils.IsImagC(q) && sv.rec.Realizable():
		method = MethodRealized
		if ws.dense, err = sv.rec.RealizedAt(imag(q), ws.dense); err != nil {
			return
		}
		kind := mat.EigenNone
		if wantVectors {
			kind = mat.EigenRight
		}
		if ok := ws.eig.Factorize(ws.dense, kind); !ok {
			err = fmt.Errorf("%w: realized solve at q = %v", ErrNoConvergence, q)
			return
		}
		ws.eig.Values(ep.values)
		if wantVectors {
			var W mat.CDense
			ws.eig.VectorsTo(&W)
			ep.vectors = make([]complex128, N*N)
			for i := 0; i < N; i++ {
				phase := imagUnitPower(i)
				for j := 0; j < N; j++ {
					ep.vectors[i*N+j] = phase * W.At(i, j)
				}
			}
		}
	default:
		method = MethodSchur
		ws.cplx = sv.rec.ComplexAt(q, ws.cplx)
		var z []complex128
		if wantVectors {
			z = make([]complex128, N*N)
		}
		if _, err = complexSchur(N, ws.cplx, z, sv.cfg.MaxQRSweeps); err != nil {
			err = fmt.Errorf("q = %v: %w", q, err)
			return
		}
		for i := 0; i < N; i++ {
			ep.values[i] = ws.cplx[i*N+i]
		}
		if wantVectors {
			ep.vectors = triangularEigenvectors(N, ws.cplx, z)
		}
	}
	return
}

// Solve decomposes every q of the batch, labels the eigenpairs by continuation
// from q = 0 in order of increasing |q| and normalizes the eigenvectors.
// Only invalid input is returned as an error; per-sample failures, ambiguities
// and truncation warnings are attached to Spectrum.Samples.
func (sv *Solver) Solve(q []complex128) (sp *Spectrum, err error) {
	var (
		nQ      = len(q)
		N       = sv.rec.N
		logger  = sv.cfg.Logger
		started = time.Now()
	)
	if nQ == 0 {
		err = ErrEmptyBatch
		return
	}
	for s, qs := range q {
		if !utils.IsFiniteC(qs) {
			err = fmt.Errorf("%w: q[%d] = %v", ErrInvalidQ, s, qs)
			return
		}
	}
	sp = &Spectrum{
		Class:          sv.cfg.Class,
		Order:          sv.cfg.TruncationOrder,
		Normalization:  sv.cfg.Normalization,
		Recurrence:     sv.rec,
		Q:              append([]complex128(nil), q...),
		Values:         NewValueTable(N, nQ),
		Coefficients:   NewCoefficientTable(N, N, nQ),
		Samples:        make([]Sample, nQ),
		ParallelDegree: sv.cfg.ParallelDegree,
	}
	logger.Info("solving batch", "class", sv.cfg.Class, "M", sv.cfg.TruncationOrder,
		"samples", nQ, "parallel", sv.cfg.ParallelDegree)

	raw := make([]eigenpairs, nQ)
	pm := utils.NewPartitionMap(sv.cfg.ParallelDegree, nQ)
	pm.Run(func(bn, kMin, kMax int) {
		ws := &workspace{}
		for s := kMin; s < kMax; s++ {
			t0 := time.Now()
			sample := &sp.Samples[s]
			sample.Q = q[s]
			raw[s], sample.Method, sample.Err = sv.decompose(q[s], ws, true)
			if sample.Err == nil {
				sv.cfg.Metrics.ObserveSolve(sample.Method.String(), time.Since(t0).Seconds())
			}
		}
	})

	order := make([]int, nQ)
	for s := range order {
		order[s] = s
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cmplx.Abs(q[order[i]]) < cmplx.Abs(q[order[j]])
	})

	tr := newTracker(sv)
	for _, s := range order {
		sample := &sp.Samples[s]
		if sample.Err != nil {
			sv.cfg.Metrics.ObserveFailure()
			logger.Warn("sample failed", "sample", s, "q", q[s], "err", sample.Err)
			sp.fillNaN(s)
			continue
		}
		perm, amb := tr.advanceTo(s, q[s], raw[s].values)
		sample.ContinuationSteps = tr.lastSteps
		sv.cfg.Metrics.ObserveContinuation(tr.lastSteps)
		if amb != nil {
			sample.Ambiguity = amb
			sv.cfg.Metrics.ObserveAmbiguity()
			logger.Warn("ambiguous branch assignment", "sample", s, "q", q[s], "branches", amb.Branches)
		}
		sv.store(sp, s, raw[s], perm, tr)
	}
	logger.Info("batch solved", "samples", nQ, "elapsed", time.Since(started))
	return
}

// store writes the labeled eigenvalues of sample s and the eigenvectors as
// normalized classical Fourier coefficients.
func (sv *Solver) store(sp *Spectrum, s int, ep eigenpairs, perm []int, tr *tracker) {
	var (
		N      = sv.rec.N
		q      = sp.Q[s]
		sample = &sp.Samples[s]
		c      = make([]complex128, N)
	)
	for h := 0; h < N; h++ {
		col := perm[h]
		sp.Values.Set(h, s, ep.values[col])
		for r := 0; r < N; r++ {
			c[r] = ep.vectors[r*N+col] * complex(sv.rec.Class.coefficientScale(r), 0)
		}
		if warn := sv.normalize(q, h, c, tr.vectors[h]); warn != nil {
			sample.Warnings = append(sample.Warnings, fmt.Errorf("harmonic %d: %w", h, warn))
			sv.cfg.Logger.Warn("normalization fallback", "sample", s, "harmonic", h, "err", warn)
		}
		if q != 0 {
			if warn := sv.truncationCheck(h, c); warn != nil {
				sample.Warnings = append(sample.Warnings, warn)
				sv.cfg.Metrics.ObserveTruncation()
				sv.cfg.Logger.Debug("truncation", "sample", s, "harmonic", h, "ratio", warn.Ratio)
			}
		}
		if tr.vectors[h] == nil {
			tr.vectors[h] = make([]complex128, N)
		}
		copy(tr.vectors[h], c)
		sp.Coefficients.SetVector(h, s, c)
	}
}

func (sp *Spectrum) fillNaN(s int) {
	var (
		N   = sp.Recurrence.N
		nan = utils.NaNArrayC(N)
	)
	for h := 0; h < N; h++ {
		sp.Values.Set(h, s, nan[h])
		sp.Coefficients.SetVector(h, s, nan)
	}
}

// Failed returns the indices of samples whose decomposition failed.
func (sp *Spectrum) Failed() (idx []int) {
	for s := range sp.Samples {
		if !sp.Samples[s].OK() {
			idx = append(idx, s)
		}
	}
	return
}
