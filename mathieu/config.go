package mathieu

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/notargets/gomathieu/metrics"
)

// Config carries every solver knob explicitly; nothing is package level.
//
// TruncationOrder M must grow with |q|: the coefficients of harmonic n decay
// once the wavenumber 2r passes roughly 2·sqrt(|q|), so M ≳ 4·sqrt(|q|) + 2n + 20
// keeps the leading harmonics at double precision. The solver does not enforce
// this; it reports ErrTruncationInsufficient warnings instead.
type Config struct {
	Class               Class
	TruncationOrder     int
	Normalization       Normalization
	TrackStep           float64 // largest |Δq| between tracked eigenvalue sets
	TieTolerance        float64 // relative band inside which two matches are rivals
	TruncationTolerance float64 // bound on |A_last|/max|A|
	ParallelDegree      int
	MaxQRSweeps         int // total sweep budget of the complex QR, 30·max(10, N) when zero
	Logger              *slog.Logger
	Metrics             *metrics.Collector
}

func DefaultConfig(class Class, M int) Config {
	return Config{
		Class:               class,
		TruncationOrder:     M,
		TrackStep:           0.05,
		TieTolerance:        1.e-9,
		TruncationTolerance: 1.e-8,
		ParallelDegree:      runtime.NumCPU(),
	}
}

func (cfg *Config) setDefaults() {
	def := DefaultConfig(cfg.Class, cfg.TruncationOrder)
	if cfg.TrackStep <= 0 {
		cfg.TrackStep = def.TrackStep
	}
	if cfg.TieTolerance <= 0 {
		cfg.TieTolerance = def.TieTolerance
	}
	if cfg.TruncationTolerance <= 0 {
		cfg.TruncationTolerance = def.TruncationTolerance
	}
	if cfg.ParallelDegree < 1 {
		cfg.ParallelDegree = def.ParallelDegree
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
