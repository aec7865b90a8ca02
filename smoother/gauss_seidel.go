// Package smoother relaxes block coupled ldu systems.
package smoother

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/coeff"
	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/ldu"
	"github.com/notargets/blockcoupled/types"
)

// Smoother improves x towards the solution of A x = b in place.
type Smoother[T constraints.Float] interface {
	Precondition(x, b field.VectorField[T])
	Name() string
}

// TransposeSmoother also relaxes the transposed system A^T x = b.
type TransposeSmoother[T constraints.Float] interface {
	Smoother[T]
	PreconditionT(x, b field.VectorField[T])
}

// GaussSeidel sweeps forward then back over the cells. A square diagonal is
// split into its diagonal, which is inverted, and the remaining in-cell
// coupling, which is lagged onto the source.
type GaussSeidel[T constraints.Float] struct {
	m       *ldu.BlockMatrix[T]
	nSweeps int
	invDiag *coeff.CoeffField[T]
	luDiag  field.TensorField[T]
	// exact inverse, only for a diagonal matrix with square coefficients
	invSquare field.TensorField[T]
	bPrime    field.VectorField[T]
	bPlusLU   field.VectorField[T]
	// sweeps over A^T, built on first use
	transposed *GaussSeidel[T]
}

func NewGaussSeidel[T constraints.Float](m *ldu.BlockMatrix[T], nSweeps int) (gs *GaussSeidel[T]) {
	if nSweeps < 1 {
		nSweeps = 1
	}
	gs = &GaussSeidel[T]{
		m:       m,
		nSweeps: nSweeps,
		invDiag: coeff.NewCoeffField[T](m.Addr.Size, m.N),
		bPrime:  field.NewVectorField[T](m.Addr.Size, m.N),
	}
	gs.calcInvDiag()
	return
}

func (gs *GaussSeidel[T]) Name() string { return types.GaussSeidel.String() }

func (gs *GaussSeidel[T]) calcInvDiag() {
	d := gs.m.Diag
	switch d.ActiveType() {
	case types.Scalar:
		inv := gs.invDiag.ToScalar()
		for k, s := range d.AsScalar() {
			inv[k] = 1 / s
		}
	case types.Linear:
		inv := gs.invDiag.ToLinear()
		for k, v := range d.AsLinear() {
			copy(inv[k], hyper.ScalarOverVector(1, v))
		}
	case types.Square:
		if gs.m.Diagonal() {
			gs.invSquare = field.Inv(nil, d.AsSquare())
			return
		}
		var (
			active = d.AsSquare()
			lf     = field.ContractLinear(nil, active)
			inv    = gs.invDiag.ToLinear()
		)
		gs.luDiag = field.ExpandLinear(nil, lf)
		for k := range active {
			gs.luDiag[k] = gs.luDiag[k].Subtract(active[k])
			copy(inv[k], hyper.ScalarOverVector(1, lf[k]))
		}
		gs.bPlusLU = field.NewVectorField[T](gs.m.Addr.Size, gs.m.N)
	default:
		panic(fmt.Errorf("gauss seidel: diagonal is %s: %w", d.ActiveType(), coeff.ErrInactive))
	}
}

func (gs *GaussSeidel[T]) Precondition(x, b field.VectorField[T]) {
	if gs.m.Diagonal() {
		for c := range x {
			if gs.invSquare != nil {
				copy(x[c], gs.invSquare[c].MulVec(b[c]))
			} else {
				copy(x[c], gs.invDiag.MultiplyCell(c, b[c]))
			}
		}
		return
	}
	for sweep := 0; sweep < gs.nSweeps; sweep++ {
		rhs := b
		if gs.luDiag != nil {
			for c := range b {
				copy(gs.bPlusLU[c], b[c].Add(gs.luDiag[c].MulVec(x[c])))
			}
			rhs = gs.bPlusLU
		}
		gs.sweep(x, rhs)
	}
}

// PreconditionT relaxes A^T x = b. The transposed matrix swaps the roles of
// the lower and upper coefficients and transposes every square block.
func (gs *GaussSeidel[T]) PreconditionT(x, b field.VectorField[T]) {
	if gs.transposed == nil {
		gs.transposed = NewGaussSeidel(gs.m.Transpose(), gs.nSweeps)
	}
	gs.transposed.Precondition(x, b)
}

func (gs *GaussSeidel[T]) sweep(x, b field.VectorField[T]) {
	var (
		a  = gs.m.Addr
		bp = gs.bPrime
	)
	for c := range b {
		copy(bp[c], b[c])
	}
	for row := 0; row < a.Size; row++ {
		gs.solveRow(row, x)
		// Distribute the neighbour side using the new x
		for f := a.OwnerStart[row]; f < a.OwnerStart[row+1]; f++ {
			u := a.Upper[f]
			bp[u] = bp[u].Subtract(gs.m.LowerMultiplyCell(f, x[row]))
		}
	}
	for row := a.Size - 1; row >= 0; row-- {
		gs.solveRow(row, x)
	}
}

func (gs *GaussSeidel[T]) solveRow(row int, x field.VectorField[T]) {
	var (
		a   = gs.m.Addr
		cur = gs.bPrime[row].Copy()
	)
	for f := a.OwnerStart[row]; f < a.OwnerStart[row+1]; f++ {
		cur = cur.Subtract(gs.m.Upper.MultiplyCell(f, x[a.Upper[f]]))
	}
	copy(x[row], gs.invDiag.MultiplyCell(row, cur))
}

var _ TransposeSmoother[float64] = (*GaussSeidel[float64])(nil)

