package utils

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMath(t *testing.T) {
	{ // Linspace keeps both endpoints exactly
		x := Linspace(0, math.Pi, 5)
		assert.Equal(t, 5, len(x))
		assert.Equal(t, 0., x[0])
		assert.Equal(t, math.Pi, x[4])
		assert.InDelta(t, math.Pi/2, x[2], 1.e-15)
		assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
		assert.Empty(t, Linspace(2, 3, 0))
	}
	{ // Complex classification
		assert.True(t, IsRealC(3))
		assert.False(t, IsRealC(3i))
		assert.True(t, IsImagC(3i))
		assert.False(t, IsImagC(0))
		assert.False(t, IsImagC(complex(1, 1)))
		assert.True(t, IsFiniteC(complex(1, -1)))
		assert.False(t, IsFiniteC(cmplx.NaN()))
		assert.False(t, IsFiniteC(cmplx.Inf()))
		assert.Equal(t, 7., CAbs1(complex(-3, 4)))
	}
	{ // NaN helpers
		v := NaNArrayC(3)
		assert.True(t, IsNan(v))
		assert.True(t, IsNan(v[1]))
		assert.False(t, IsNan([]float64{1, 2}))
		assert.True(t, IsNan(math.NaN()))
		assert.False(t, IsNan("nan"))
	}
}
