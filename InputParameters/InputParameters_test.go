package InputParameters

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomathieu/mathieu"
)

func TestSolveParameters(t *testing.T) {
	{ // The example file parses into an imaginary axis sweep
		ip := &SolveParameters{}
		require.NoError(t, ip.Parse([]byte(ExampleFile)))
		require.NoError(t, ip.Validate())
		assert.Equal(t, "ce2n", ip.Class)
		assert.Equal(t, 20, ip.TruncationOrder)
		assert.Equal(t, []int{0, 1}, ip.Harmonics)
		q := ip.Samples()
		require.Len(t, q, 301)
		assert.Equal(t, complex128(0), q[0])
		assert.Equal(t, complex(0, 3), q[300])
		for _, qs := range q {
			assert.Equal(t, 0., real(qs))
		}
		y := ip.Grid()
		assert.Len(t, y, 65)
		assert.Equal(t, math.Pi, y[64])

		cfg, err := ip.Config()
		require.NoError(t, err)
		assert.Equal(t, mathieu.EvenPi, cfg.Class)
		assert.Equal(t, mathieu.NormClassical, cfg.Normalization)
		assert.Equal(t, 0.05, cfg.TrackStep)
	}
	{ // Explicit q list and overrides
		ip := &SolveParameters{}
		require.NoError(t, ip.Parse([]byte(`
Class: odd-2pi
Normalization: unit
TruncationOrder: 12
QList: [[1, 0], [0, 1.5], [2, -3]]
TrackStep: 0.01
ParallelDegree: 2
`)))
		require.NoError(t, ip.Validate())
		assert.Equal(t, []complex128{1, 1.5i, complex(2, -3)}, ip.Samples())
		cfg, err := ip.Config()
		require.NoError(t, err)
		assert.Equal(t, mathieu.OddTwoPi, cfg.Class)
		assert.Equal(t, mathieu.NormUnit, cfg.Normalization)
		assert.Equal(t, 0.01, cfg.TrackStep)
		assert.Equal(t, 2, cfg.ParallelDegree)
	}
	{ // Rays off the axes
		ip := &SolveParameters{QMin: 0, QMax: 2, QCount: 3, QPhase: 45}
		q := ip.Samples()
		assert.InDelta(t, math.Sqrt2, real(q[2]), 1.e-15)
		assert.InDelta(t, math.Sqrt2, imag(q[2]), 1.e-15)
		ip.QPhase = -90
		assert.Equal(t, complex(0, -2), ip.Samples()[2])
	}
	{ // Validation failures
		base := SolveParameters{Class: "ce2n", TruncationOrder: 10, QCount: 4, QMax: 1}
		require.NoError(t, base.Validate())

		ip := base
		ip.TruncationOrder = 9
		assert.True(t, errors.Is(ip.Validate(), mathieu.ErrTruncationOrder))
		ip = base
		ip.Class = "ce2"
		assert.True(t, errors.Is(ip.Validate(), mathieu.ErrUnknownClass))
		ip = base
		ip.Harmonics = []int{5}
		assert.True(t, errors.Is(ip.Validate(), mathieu.ErrHarmonicRange))
		ip = base
		ip.QCount = 0
		assert.Error(t, ip.Validate())
		ip = base
		ip.QMax = math.NaN()
		assert.True(t, errors.Is(ip.Validate(), mathieu.ErrInvalidQ))
		ip = base
		ip.Normalization = "l2"
		assert.Error(t, ip.Validate())
	}
}
