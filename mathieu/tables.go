package mathieu

// ValueTable holds characteristic values indexed by (harmonic, sample).
type ValueTable struct {
	NHarm, NQ int
	Data      []complex128
}

func NewValueTable(nHarm, nQ int) *ValueTable {
	return &ValueTable{NHarm: nHarm, NQ: nQ, Data: make([]complex128, nHarm*nQ)}
}

func (t *ValueTable) At(h, s int) complex128     { return t.Data[h*t.NQ+s] }
func (t *ValueTable) Set(h, s int, v complex128) { t.Data[h*t.NQ+s] = v }

// Harmonic returns a copy of the values of one harmonic across the batch.
func (t *ValueTable) Harmonic(h int) (row []complex128) {
	row = make([]complex128, t.NQ)
	copy(row, t.Data[h*t.NQ:(h+1)*t.NQ])
	return
}

// CoefficientTable holds classical Fourier coefficients indexed by
// (harmonic, coefficient, sample).
type CoefficientTable struct {
	NHarm, NCoef, NQ int
	Data             []complex128
}

func NewCoefficientTable(nHarm, nCoef, nQ int) *CoefficientTable {
	return &CoefficientTable{NHarm: nHarm, NCoef: nCoef, NQ: nQ,
		Data: make([]complex128, nHarm*nCoef*nQ)}
}

func (t *CoefficientTable) index(h, r, s int) int     { return (h*t.NCoef+r)*t.NQ + s }
func (t *CoefficientTable) At(h, r, s int) complex128 { return t.Data[t.index(h, r, s)] }
func (t *CoefficientTable) Set(h, r, s int, v complex128) {
	t.Data[t.index(h, r, s)] = v
}

// SetVector stores the coefficients v of harmonic h at sample s.
func (t *CoefficientTable) SetVector(h, s int, v []complex128) {
	for r := 0; r < t.NCoef; r++ {
		t.Set(h, r, s, v[r])
	}
}

// Vector returns a copy of the coefficients of harmonic h at sample s.
func (t *CoefficientTable) Vector(h, s int) (v []complex128) {
	v = make([]complex128, t.NCoef)
	for r := range v {
		v[r] = t.At(h, r, s)
	}
	return
}

// FunctionTable holds function values indexed by (harmonic, grid point,
// sample). Harmonics lists which harmonic each leading index refers to.
type FunctionTable struct {
	Harmonics []int
	Y         []float64
	NQ        int
	Data      []complex128
}

func NewFunctionTable(harmonics []int, y []float64, nQ int) *FunctionTable {
	return &FunctionTable{Harmonics: harmonics, Y: y, NQ: nQ,
		Data: make([]complex128, len(harmonics)*len(y)*nQ)}
}

func (t *FunctionTable) index(h, j, s int) int     { return (h*len(t.Y)+j)*t.NQ + s }
func (t *FunctionTable) At(h, j, s int) complex128 { return t.Data[t.index(h, j, s)] }
func (t *FunctionTable) Set(h, j, s int, v complex128) {
	t.Data[t.index(h, j, s)] = v
}

// Profile returns a copy of one function on the grid at sample s.
func (t *FunctionTable) Profile(h, s int) (f []complex128) {
	f = make([]complex128, len(t.Y))
	for j := range f {
		f[j] = t.At(h, j, s)
	}
	return
}
