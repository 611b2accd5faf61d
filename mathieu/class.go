package mathieu

import (
	"fmt"
	"strings"
)

// Class selects the parity and period of the periodic Mathieu functions.
type Class uint8

const (
	EvenPi    Class = iota // ce_{2n}, period π
	EvenTwoPi              // ce_{2n+1}, period 2π
	OddPi                  // se_{2n+2}, period π
	OddTwoPi               // se_{2n+1}, period 2π
)

var classNameMap = map[string]Class{
	"ce2n":     EvenPi,
	"even-pi":  EvenPi,
	"ce2n+1":   EvenTwoPi,
	"even-2pi": EvenTwoPi,
	"se2n+2":   OddPi,
	"odd-pi":   OddPi,
	"se2n+1":   OddTwoPi,
	"odd-2pi":  OddTwoPi,
}

func ParseClass(name string) (c Class, err error) {
	var ok bool
	if c, ok = classNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return
}

func (c Class) String() string {
	switch c {
	case EvenPi:
		return "ce2n"
	case EvenTwoPi:
		return "ce2n+1"
	case OddPi:
		return "se2n+2"
	case OddTwoPi:
		return "se2n+1"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

func (c Class) Even() bool { return c == EvenPi || c == EvenTwoPi }

// Wavenumber is the Fourier wavenumber carried by coefficient r.
func (c Class) Wavenumber(r int) int {
	switch c {
	case EvenPi:
		return 2 * r
	case OddPi:
		return 2*r + 2
	default:
		return 2*r + 1
	}
}

// Order is the conventional function order of harmonic n, e.g. 2n for ce_{2n}.
func (c Class) Order(n int) int {
	return c.Wavenumber(n)
}

// coefficientScale converts the symmetric eigenvector to classical Fourier
// coefficients. Only A_0 of ce_{2n} differs, by 1/√2.
func (c Class) coefficientScale(r int) float64 {
	if c == EvenPi && r == 0 {
		return sqrtHalf
	}
	return 1
}
