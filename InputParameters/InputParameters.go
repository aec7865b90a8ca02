package InputParameters

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/blockcoupled/coeff"
	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/ldu"
	"github.com/notargets/blockcoupled/types"
)

var ErrInvalidCase = errors.New("invalid case")

// CellBlock replaces the diagonal coefficient of one cell with a full tensor,
// given as a flat row-major list.
type CellBlock struct {
	Cell  int                   `json:"Cell"`
	Block hyper.Tensor[float64] `json:"Block"`
}

// Parameters obtained from the YAML case file. Each coefficient list holds one
// value for a scalar coefficient, Components values for a linear one or
// Components^2 row-major values for a square one, and is used for every cell
// or face.
type CaseParameters struct {
	Title          string      `json:"Title"`
	Components     int         `json:"Components"`
	Cells          int         `json:"Cells"`
	Faces          [][2]int    `json:"Faces"` // Lower/upper cell pairs, a chain when empty
	Diag           []float64   `json:"Diag"`
	DiagBlocks     []CellBlock `json:"DiagBlocks"` // Per cell overrides of Diag
	Upper          []float64   `json:"Upper"`
	Lower          []float64   `json:"Lower"` // Empty for a symmetric matrix
	Source         []float64   `json:"Source"`
	Smoother       string      `json:"Smoother"`
	Sweeps         int         `json:"Sweeps"`
	MaxIterations  int         `json:"MaxIterations"`
	Tolerance      float64     `json:"Tolerance"`
	ParallelDegree int         `json:"ParallelDegree"`
}

func (cp *CaseParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, cp); err != nil {
		return
	}
	cp.setDefaults()
	return cp.Validate()
}

func (cp *CaseParameters) setDefaults() {
	if cp.Smoother == "" {
		cp.Smoother = types.GaussSeidel.String()
	}
	if cp.Sweeps == 0 {
		cp.Sweeps = 1
	}
	if cp.MaxIterations == 0 {
		cp.MaxIterations = 1000
	}
	if cp.Tolerance == 0 {
		cp.Tolerance = 1.e-6
	}
}

// Level reports the coefficient level a list of values describes.
func (cp *CaseParameters) Level(values []float64) (types.ActiveLevel, error) {
	switch len(values) {
	case 0:
		return types.Unallocated, nil
	case 1:
		return types.Scalar, nil
	case cp.Components:
		return types.Linear, nil
	case cp.Components * cp.Components:
		return types.Square, nil
	}
	return types.Unallocated, fmt.Errorf("%d coefficient values for %d components: %w",
		len(values), cp.Components, ErrInvalidCase)
}

func (cp *CaseParameters) SmootherType() (types.SmootherType, error) {
	st, ok := types.SmootherNameMap[strings.ToLower(cp.Smoother)]
	if !ok {
		return types.SmootherNone, fmt.Errorf("unknown smoother %q: %w", cp.Smoother, ErrInvalidCase)
	}
	return st, nil
}

func (cp *CaseParameters) Validate() (err error) {
	switch {
	case cp.Components < 1:
		return fmt.Errorf("Components = %d: %w", cp.Components, ErrInvalidCase)
	case cp.Cells < 1:
		return fmt.Errorf("Cells = %d: %w", cp.Cells, ErrInvalidCase)
	case len(cp.Diag) == 0:
		return fmt.Errorf("no Diag coefficient: %w", ErrInvalidCase)
	case len(cp.Source) != cp.Components:
		return fmt.Errorf("%d Source values for %d components: %w",
			len(cp.Source), cp.Components, ErrInvalidCase)
	case len(cp.Lower) != 0 && len(cp.Upper) == 0:
		return fmt.Errorf("Lower given without Upper: %w", ErrInvalidCase)
	case cp.Tolerance < 0 || math.IsNaN(cp.Tolerance):
		return fmt.Errorf("Tolerance = %g: %w", cp.Tolerance, ErrInvalidCase)
	}
	for _, cb := range cp.DiagBlocks {
		switch {
		case cb.Cell < 0 || cb.Cell >= cp.Cells:
			return fmt.Errorf("DiagBlocks cell %d outside %d cells: %w", cb.Cell, cp.Cells, ErrInvalidCase)
		case cb.Block.RowLength() != cp.Components:
			return fmt.Errorf("DiagBlocks cell %d is %s for %d components: %w",
				cb.Cell, cb.Block.TypeName(), cp.Components, ErrInvalidCase)
		}
	}
	for _, values := range [][]float64{cp.Diag, cp.Upper, cp.Lower} {
		if _, err = cp.Level(values); err != nil {
			return
		}
	}
	if _, err = cp.SmootherType(); err != nil {
		return
	}
	if _, err = cp.Addressing(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCase, err)
	}
	return
}

func (cp *CaseParameters) Addressing() (*ldu.Addressing, error) {
	if len(cp.Faces) == 0 {
		return ldu.ChainAddressing(cp.Cells), nil
	}
	lower := make([]int, len(cp.Faces))
	upper := make([]int, len(cp.Faces))
	for f, face := range cp.Faces {
		lower[f], upper[f] = face[0], face[1]
	}
	return ldu.NewAddressing(cp.Cells, lower, upper)
}

// Coeff builds the block coefficient described by values.
func (cp *CaseParameters) Coeff(values []float64) (c *coeff.BlockCoeff[float64], err error) {
	var level types.ActiveLevel
	if level, err = cp.Level(values); err != nil {
		return
	}
	switch level {
	case types.Scalar:
		c = coeff.NewScalarCoeff(cp.Components, values[0])
	case types.Linear:
		c = coeff.NewLinearCoeff(hyper.NewVectorFrom(values))
	case types.Square:
		c = coeff.NewSquareCoeff(hyper.NewTensorFrom(cp.Components, values))
	default:
		c = coeff.NewBlockCoeff[float64](cp.Components)
	}
	return
}

// Build assembles the matrix and source field of the case.
func (cp *CaseParameters) Build() (m *ldu.BlockMatrix[float64], b field.VectorField[float64], err error) {
	var addr *ldu.Addressing
	if addr, err = cp.Addressing(); err != nil {
		return
	}
	m = ldu.NewBlockMatrix[float64](addr, cp.Components)
	fill := func(cf *coeff.CoeffField[float64], values []float64) (err error) {
		var c *coeff.BlockCoeff[float64]
		if c, err = cp.Coeff(values); err != nil || c.ActiveType() == types.Unallocated {
			return
		}
		for i := 0; i < cf.Size(); i++ {
			cf.SetCoeff(i, c)
		}
		return
	}
	if err = fill(m.Diag, cp.Diag); err != nil {
		return
	}
	for _, cb := range cp.DiagBlocks {
		m.Diag.SetCoeff(cb.Cell, coeff.NewSquareCoeff(cb.Block))
	}
	if err = fill(m.Upper, cp.Upper); err != nil {
		return
	}
	if len(cp.Lower) != 0 {
		m.Lower = coeff.NewCoeffField[float64](addr.NFaces(), cp.Components)
		if err = fill(m.Lower, cp.Lower); err != nil {
			return
		}
	}
	b = field.NewVectorField[float64](cp.Cells, cp.Components)
	for _, v := range b {
		copy(v, cp.Source)
	}
	return
}

func (cp *CaseParameters) Print(w io.Writer) {
	level := func(values []float64) string {
		l, _ := cp.Level(values)
		return l.String()
	}
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", cp.Title)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Components\n", cp.Components)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Cells\n", cp.Cells)
	if len(cp.Faces) == 0 {
		fmt.Fprintf(w, "[chain]\t\t\t\t= Faces\n")
	} else {
		fmt.Fprintf(w, "[%d]\t\t\t\t= Faces\n", len(cp.Faces))
	}
	fmt.Fprintf(w, "[%s]\t\t\t= Diag\n", level(cp.Diag))
	for _, cb := range cp.DiagBlocks {
		fmt.Fprintf(w, "%s\t= DiagBlocks[%d]\n", cb.Block, cb.Cell)
	}
	fmt.Fprintf(w, "[%s]\t\t\t= Upper\n", level(cp.Upper))
	if len(cp.Lower) == 0 {
		fmt.Fprintf(w, "[symmetric]\t\t\t= Lower\n")
	} else {
		fmt.Fprintf(w, "[%s]\t\t\t= Lower\n", level(cp.Lower))
	}
	fmt.Fprintf(w, "[%s]\t\t\t= Smoother\n", cp.Smoother)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Sweeps\n", cp.Sweeps)
	fmt.Fprintf(w, "[%d]\t\t\t\t= MaxIterations\n", cp.MaxIterations)
	fmt.Fprintf(w, "%8.2e\t\t= Tolerance\n", cp.Tolerance)
	fmt.Fprintf(w, "[%d]\t\t\t\t= ParallelDegree\n", cp.ParallelDegree)
}
