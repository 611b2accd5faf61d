package mathieu

import (
	"math"
	"math/cmplx"
	"sort"
)

// tracker labels eigenvalue sets by continuity. It starts from the q = 0
// diagonal, whose order k_0^2 < k_1^2 < ... defines the harmonic labels, and
// must be advanced in order of increasing |q|.
type tracker struct {
	sv        *Solver
	ws        *workspace
	q         complex128
	values    []complex128   // labeled eigenvalues at q
	velocity  []complex128   // last displacement of each branch
	vectors   [][]complex128 // last normalized eigenvector of each branch
	lastSteps int
}

func newTracker(sv *Solver) (tr *tracker) {
	var (
		N = sv.rec.N
	)
	tr = &tracker{
		sv:       sv,
		ws:       &workspace{},
		values:   make([]complex128, N),
		velocity: make([]complex128, N),
		vectors:  make([][]complex128, N),
	}
	for r, d := range sv.rec.Diagonal {
		tr.values[r] = complex(d, 0)
	}
	return
}

// advanceTo labels the eigenvalues of sample s at q. perm[h] is the index
// into values of harmonic h. Long steps are subdivided with eigenvalue-only
// solves so that every matching step is at most TrackStep long.
func (tr *tracker) advanceTo(s int, q complex128, values []complex128) (perm []int, amb *BranchAmbiguity) {
	var (
		dq     = q - tr.q
		nSteps = int(math.Ceil(cmplx.Abs(dq) / tr.sv.cfg.TrackStep))
		rivals []int
	)
	tr.lastSteps = 0
	if !isReal(q) {
		for k := 1; k < nSteps; k++ {
			qk := tr.q + dq*complex(float64(k)/float64(nSteps), 0)
			ep, _, err := tr.sv.decompose(qk, tr.ws, false)
			if err != nil {
				tr.sv.cfg.Logger.Debug("continuation step skipped", "q", qk, "err", err)
				continue
			}
			tr.lastSteps++
			// intermediate points advance the state but do not move tr.q
			_, stepRivals := tr.label(qk, ep.values)
			rivals = append(rivals, stepRivals...)
		}
	}
	perm, stepRivals := tr.label(q, values)
	rivals = append(rivals, stepRivals...)
	tr.q = q
	if len(rivals) != 0 {
		amb = &BranchAmbiguity{Sample: s, Q: q, Branches: uniqueSorted(rivals)}
	}
	return
}

// label matches values to the current branches and advances the state.
func (tr *tracker) label(q complex128, values []complex128) (perm []int, rivals []int) {
	if isReal(q) {
		// real q is a Sturm-Liouville problem: simple, real, ascending values
		perm = argsortReal(values)
	} else {
		perm, rivals = tr.match(values)
	}
	for h, c := range perm {
		tr.velocity[h] = values[c] - tr.values[h]
		tr.values[h] = values[c]
	}
	return
}

type pairing struct {
	branch, cand int
	dist, phase  float64
}

// match is a global greedy nearest-neighbour assignment. Pairs whose
// distances agree within TieTolerance and that compete for the same branch or
// candidate are rivals; the smallest phase-angle difference between the
// branch's last displacement and the candidate displacement wins. When rivals
// also tie in phase the step is ambiguous: the branches that received the
// tied candidates are returned and those candidates are dealt to them in
// ascending (Im, Re) order, so past a coalescence the lower label takes the
// member of the conjugate pair with negative imaginary part.
func (tr *tracker) match(values []complex128) (perm []int, rivals []int) {
	var (
		N      = len(tr.values)
		tol    = tr.sv.cfg.TieTolerance
		pairs  = make([]pairing, 0, N*N)
		usedB  = make([]bool, N)
		usedC  = make([]bool, N)
		tiedC  = make(map[int]bool)
		tiny   = math.SmallestNonzeroFloat64
		phTol  = tol * math.Pi
		assign = 0
	)
	perm = make([]int, N)
	for b := 0; b < N; b++ {
		for c := 0; c < N; c++ {
			pairs = append(pairs, pairing{
				branch: b,
				cand:   c,
				dist:   cmplx.Abs(values[c] - tr.values[b]),
				phase:  phaseDifference(tr.velocity[b], values[c]-tr.values[b]),
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].dist < pairs[j].dist
	})
	for i := 0; i < len(pairs) && assign < N; i++ {
		p := pairs[i]
		if usedB[p.branch] || usedC[p.cand] {
			continue
		}
		group := []pairing{p}
		band := p.dist*(1+tol) + tiny
		for j := i + 1; j < len(pairs) && pairs[j].dist <= band; j++ {
			o := pairs[j]
			if usedB[o.branch] || usedC[o.cand] {
				continue
			}
			if o.branch == p.branch || o.cand == p.cand {
				group = append(group, o)
			}
		}
		if len(group) > 1 {
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].phase < group[j].phase
			})
			if group[1].phase-group[0].phase <= phTol {
				for _, o := range group {
					if o.phase-group[0].phase <= phTol {
						tiedC[o.cand] = true
					}
				}
			}
			p = group[0]
		}
		perm[p.branch] = p.cand
		usedB[p.branch], usedC[p.cand] = true, true
		assign++
	}
	if len(tiedC) == 0 {
		return
	}
	var cands []int
	for b := 0; b < N; b++ {
		if tiedC[perm[b]] {
			rivals = append(rivals, b)
			cands = append(cands, perm[b])
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		vi, vj := values[cands[i]], values[cands[j]]
		if imag(vi) != imag(vj) {
			return imag(vi) < imag(vj)
		}
		return real(vi) < real(vj)
	})
	for k, b := range rivals {
		perm[b] = cands[k]
	}
	return
}

// phaseDifference is the absolute angle between the previous displacement v
// and the candidate displacement d, zero when either is zero.
func phaseDifference(v, d complex128) float64 {
	if v == 0 || d == 0 {
		return 0
	}
	return math.Abs(cmplx.Phase(d / v))
}

func argsortReal(values []complex128) (perm []int) {
	perm = make([]int, len(values))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return real(values[perm[i]]) < real(values[perm[j]])
	})
	return
}

func isReal(q complex128) bool { return imag(q) == 0 }

func uniqueSorted(in []int) (out []int) {
	seen := make(map[int]bool, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return
}
