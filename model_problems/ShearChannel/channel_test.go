package ShearChannel

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomathieu/utils"
)

func TestChannel(t *testing.T) {
	var (
		y = utils.Linspace(0, math.Pi, 41)
	)
	{ // At t = 0 the truncated basis reproduces the y independent profile
		c, err := NewChannel(1, 24, []float64{1, 2}, []complex128{1, complex(0.5, -0.25)}, y)
		require.NoError(t, err)
		for _, x := range []float64{0, 0.7, 2} {
			theta := c.Field(x, 0)
			expected := real(cmplx.Exp(complex(0, x))) + real(complex(0.5, -0.25)*cmplx.Exp(complex(0, 2*x)))
			for j := range y {
				assert.InDelta(t, expected, theta[j], 1.e-9, "x = %v y = %v", x, y[j])
			}
		}
	}
	{ // Decay rates and long time behaviour
		c, err := NewChannel(2, 20, []float64{0, 1}, []complex128{0.5, 1}, y)
		require.NoError(t, err)
		lambda := c.DecayRates()
		require.Len(t, lambda, 2)
		// k = 0 is plain diffusion across the channel, λ = n²
		for n := 0; n < 4; n++ {
			assert.InDelta(t, float64(n*n), real(lambda[0][n]), 1.e-12)
		}
		for n := range lambda[1] {
			assert.Greater(t, real(lambda[1][n]), 1.)
		}
		// the mean survives, everything else decays
		theta := c.Field(0.3, 50)
		for j := range theta {
			assert.InDelta(t, 0.5, theta[j], 1.e-12, "y = %v", y[j])
		}
	}
	{ // Input checks
		_, err := NewChannel(0, 20, []float64{1}, []complex128{1}, y)
		assert.Error(t, err)
		_, err = NewChannel(1, 20, []float64{1, 2}, []complex128{1}, y)
		assert.Error(t, err)
		_, err = NewChannel(1, 7, []float64{1}, []complex128{1}, y)
		assert.Error(t, err)
	}
}
