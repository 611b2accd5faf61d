package InputParameters

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ghodss/yaml"

	"github.com/notargets/gomathieu/mathieu"
	"github.com/notargets/gomathieu/utils"
)

// Parameters obtained from the YAML input file
type SolveParameters struct {
	Title               string       `yaml:"Title"`
	Class               string       `yaml:"Class"`
	Normalization       string       `yaml:"Normalization"`
	TruncationOrder     int          `yaml:"TruncationOrder"`
	QMin                float64      `yaml:"QMin"`
	QMax                float64      `yaml:"QMax"`
	QCount              int          `yaml:"QCount"`
	QPhase              float64      `yaml:"QPhase"` // Degrees, 90 is the positive imaginary axis
	QList               [][2]float64 `yaml:"QList"`  // Explicit [re, im] pairs, used instead of the sweep
	GridPoints          int          `yaml:"GridPoints"`
	Harmonics           []int        `yaml:"Harmonics"`
	TrackStep           float64      `yaml:"TrackStep"`
	TieTolerance        float64      `yaml:"TieTolerance"`
	TruncationTolerance float64      `yaml:"TruncationTolerance"`
	ParallelDegree      int          `yaml:"ParallelDegree"`
}

const ExampleFile = `
########################################
Title: "Imaginary axis sweep through the first exceptional point"
Class: ce2n            # ce2n, ce2n+1, se2n+2, se2n+1
Normalization: classical # or unit
TruncationOrder: 20
QMin: 0
QMax: 3
QCount: 301
QPhase: 90             # degrees
GridPoints: 65         # y in [0, pi]
Harmonics: [0, 1]
########################################
`

func (ip *SolveParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *SolveParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Class\n", ip.Class)
	fmt.Printf("[%d]\t\t\t\t= Truncation Order\n", ip.TruncationOrder)
	if len(ip.QList) != 0 {
		fmt.Printf("%v\t= Q List\n", ip.QList)
	} else {
		fmt.Printf("[%8.5f, %8.5f] x %d\t= Q Range\n", ip.QMin, ip.QMax, ip.QCount)
		fmt.Printf("%8.5f\t\t= Q Phase (degrees)\n", ip.QPhase)
	}
	fmt.Printf("[%d]\t\t\t\t= Grid Points\n", ip.GridPoints)
	fmt.Printf("%v\t\t\t= Harmonics\n", ip.Harmonics)
}

func (ip *SolveParameters) Validate() (err error) {
	if _, err = mathieu.ParseClass(ip.Class); err != nil {
		return
	}
	if _, err = mathieu.ParseNormalization(ip.Normalization); err != nil {
		return
	}
	if ip.TruncationOrder <= 0 || ip.TruncationOrder%2 != 0 {
		return fmt.Errorf("%w: TruncationOrder = %d", mathieu.ErrTruncationOrder, ip.TruncationOrder)
	}
	if len(ip.QList) == 0 {
		if ip.QCount < 1 {
			return fmt.Errorf("QCount must be positive when QList is empty, have %d", ip.QCount)
		}
		if utils.IsNan([]float64{ip.QMin, ip.QMax, ip.QPhase}) {
			return fmt.Errorf("%w: QMin, QMax and QPhase must be numbers", mathieu.ErrInvalidQ)
		}
	}
	for _, h := range ip.Harmonics {
		if h < 0 || h >= ip.TruncationOrder/2 {
			return fmt.Errorf("%w: %d with TruncationOrder %d", mathieu.ErrHarmonicRange, h, ip.TruncationOrder)
		}
	}
	if ip.GridPoints < 0 {
		return fmt.Errorf("GridPoints must not be negative, have %d", ip.GridPoints)
	}
	return
}

// Samples expands the q batch: QList verbatim, otherwise QCount magnitudes
// from QMin to QMax along the ray at QPhase degrees.
func (ip *SolveParameters) Samples() (q []complex128) {
	if len(ip.QList) != 0 {
		q = make([]complex128, len(ip.QList))
		for i, p := range ip.QList {
			q[i] = complex(p[0], p[1])
		}
		return
	}
	var (
		rho = utils.Linspace(ip.QMin, ip.QMax, ip.QCount)
		ray complex128
	)
	// exact axis directions keep real and imaginary sweeps on their fast paths
	switch phase := math.Mod(ip.QPhase, 360); phase {
	case 0:
		ray = 1
	case 90, -270:
		ray = 1i
	case 180, -180:
		ray = -1
	case 270, -90:
		ray = -1i
	default:
		ray = cmplx.Rect(1, phase*math.Pi/180)
	}
	q = make([]complex128, len(rho))
	for i, r := range rho {
		q[i] = complex(r, 0) * ray
	}
	return
}

// Grid is GridPoints equally spaced y on [0, π]
func (ip *SolveParameters) Grid() []float64 {
	return utils.Linspace(0, math.Pi, ip.GridPoints)
}

// Config maps the file onto a solver configuration; Validate first.
func (ip *SolveParameters) Config() (cfg mathieu.Config, err error) {
	var (
		class mathieu.Class
		norm  mathieu.Normalization
	)
	if class, err = mathieu.ParseClass(ip.Class); err != nil {
		return
	}
	if norm, err = mathieu.ParseNormalization(ip.Normalization); err != nil {
		return
	}
	cfg = mathieu.DefaultConfig(class, ip.TruncationOrder)
	cfg.Normalization = norm
	if ip.TrackStep > 0 {
		cfg.TrackStep = ip.TrackStep
	}
	if ip.TieTolerance > 0 {
		cfg.TieTolerance = ip.TieTolerance
	}
	if ip.TruncationTolerance > 0 {
		cfg.TruncationTolerance = ip.TruncationTolerance
	}
	if ip.ParallelDegree > 0 {
		cfg.ParallelDegree = ip.ParallelDegree
	}
	return
}
