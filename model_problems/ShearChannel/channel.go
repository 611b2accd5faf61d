// Package ShearChannel synthesizes the passive scalar field of a periodic
// channel with sinusoidal shear,
//
//	θ_t + (1/ε) cos(2y) θ_x = θ_xx + θ_yy / 4
//
// from the Mathieu expansion of each streamwise wavenumber k. Separating
// θ = Y(y) exp(ikx - λt) gives Mathieu's equation for ce_{2n}(y; q_k) with
// q_k = i·2k/ε and decay rate λ = a_{2n}(q_k)/4 + k².
package ShearChannel

import (
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/notargets/gomathieu/mathieu"
)

type Channel struct {
	Epsilon     float64
	Wavenumbers []float64
	Amplitudes  []complex128 // F_k, one per wavenumber
	Y           []float64
	Spectrum    *mathieu.Spectrum
	Functions   *mathieu.FunctionTable // ce_{2n}(y_j; q_k) for every harmonic
	weights     []complex128           // 2·A_0 per (n, k)
}

// NewChannel solves every q_k in one batch. A sample that fails to solve is
// an error here since the field would be incomplete; branch ambiguities and
// truncation warnings stay on Spectrum.Samples.
func NewChannel(epsilon float64, M int, wavenumbers []float64, amplitudes []complex128,
	y []float64, logger ...*slog.Logger) (c *Channel, err error) {
	if epsilon == 0 || math.IsNaN(epsilon) {
		err = fmt.Errorf("epsilon must be a non zero number, have %v", epsilon)
		return
	}
	if len(wavenumbers) != len(amplitudes) {
		err = fmt.Errorf("%d wavenumbers with %d amplitudes", len(wavenumbers), len(amplitudes))
		return
	}
	var (
		cfg = mathieu.DefaultConfig(mathieu.EvenPi, M)
		sv  *mathieu.Solver
		q   = make([]complex128, len(wavenumbers))
	)
	if len(logger) != 0 {
		cfg.Logger = logger[0]
	}
	if sv, err = mathieu.NewSolver(cfg); err != nil {
		return
	}
	for i, k := range wavenumbers {
		q[i] = complex(0, 2*k/epsilon)
	}
	c = &Channel{
		Epsilon:     epsilon,
		Wavenumbers: wavenumbers,
		Amplitudes:  amplitudes,
		Y:           y,
	}
	if c.Spectrum, err = sv.Solve(q); err != nil {
		return nil, err
	}
	if failed := c.Spectrum.Failed(); len(failed) != 0 {
		s := failed[0]
		return nil, fmt.Errorf("wavenumber %v (q = %v): %w", wavenumbers[s], q[s], c.Spectrum.Samples[s].Err)
	}
	var (
		N         = c.Spectrum.Harmonics()
		harmonics = make([]int, N)
	)
	for n := range harmonics {
		harmonics[n] = n
	}
	if c.Functions, err = c.Spectrum.Evaluate(harmonics, y); err != nil {
		return nil, err
	}
	c.weights = make([]complex128, N*len(wavenumbers))
	for n := 0; n < N; n++ {
		for s := range wavenumbers {
			c.weights[n*len(wavenumbers)+s] = 2 * c.Spectrum.Coefficients.At(n, 0, s)
		}
	}
	return
}

// DecayRates returns λ = a_{2n}/4 + k² indexed [k][n].
func (c *Channel) DecayRates() (lambda [][]complex128) {
	var (
		N = c.Spectrum.Harmonics()
	)
	lambda = make([][]complex128, len(c.Wavenumbers))
	for s, k := range c.Wavenumbers {
		lambda[s] = make([]complex128, N)
		for n := 0; n < N; n++ {
			lambda[s][n] = c.Spectrum.Values.At(n, s)/4 + complex(k*k, 0)
		}
	}
	return
}

// Field evaluates θ(x, y_j, t) on the channel grid:
//
//	θ = Re Σ_k F_k Σ_n 2A_0^{(2n)}(q_k) ce_{2n}(y; q_k) exp(ikx - λ_{kn} t)
//
// At t = 0 the inner sum is the expansion of a y independent profile, so
// θ(x, y, 0) = Re(F_k exp(ikx)) summed over k.
func (c *Channel) Field(x, t float64) (theta []float64) {
	var (
		N      = c.Spectrum.Harmonics()
		nK     = len(c.Wavenumbers)
		lambda = c.DecayRates()
	)
	theta = make([]float64, len(c.Y))
	for s, k := range c.Wavenumbers {
		phase := c.Amplitudes[s] * cmplx.Exp(complex(0, k*x))
		for n := 0; n < N; n++ {
			amp := phase * c.weights[n*nK+s] * cmplx.Exp(-lambda[s][n]*complex(t, 0))
			if amp == 0 {
				continue
			}
			for j := range c.Y {
				theta[j] += real(amp * c.Functions.At(n, j, s))
			}
		}
	}
	return
}
