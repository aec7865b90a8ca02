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

// Cholesky is the block incomplete Cholesky (ILU for an asymmetric matrix)
// factorisation M = (D* + L) inv(D*) (D* + U), with no fill-in beyond the
// matrix faces. As a smoother it iterates x += inv(M) (b - A x).
type Cholesky[T constraints.Float] struct {
	m       *ldu.BlockMatrix[T]
	r       *field.Runner
	nSweeps int
	// inverse of the factorised diagonal D*
	preconDiag *coeff.CoeffField[T]
	mT         *ldu.BlockMatrix[T]
}

// NewCholesky factorises the diagonal. It panics with a *hyper.SingularError
// when a factorised diagonal block is singular.
func NewCholesky[T constraints.Float](m *ldu.BlockMatrix[T], r *field.Runner, nSweeps int) (ch *Cholesky[T]) {
	if nSweeps < 1 {
		nSweeps = 1
	}
	ch = &Cholesky[T]{
		m:          m,
		r:          r,
		nSweeps:    nSweeps,
		preconDiag: m.Diag.Clone(),
	}
	ch.calcPreconDiag()
	return
}

func (ch *Cholesky[T]) Name() string { return types.Cholesky.String() }

// level is the level every factorised diagonal block is held at, the higher of
// the diagonal and off-diagonal levels.
func (ch *Cholesky[T]) level() (level types.ActiveLevel) {
	level = ch.m.Diag.ActiveType()
	if level == types.Unallocated {
		panic(fmt.Errorf("cholesky: diagonal is %s: %w", level, coeff.ErrInactive))
	}
	for _, cf := range []*coeff.CoeffField[T]{ch.m.Upper, ch.m.Lower} {
		if cf != nil && cf.ActiveType() > level {
			level = cf.ActiveType()
		}
	}
	return
}

func promoteTo[T constraints.Float](c *coeff.BlockCoeff[T], level types.ActiveLevel) *coeff.BlockCoeff[T] {
	switch level {
	case types.Scalar:
		if c.ActiveType() == types.Unallocated {
			c.ToScalar()
		}
	case types.Linear:
		c.ToLinear()
	case types.Square:
		c.ToSquare()
	}
	return c
}

// calcPreconDiag eliminates each face in order, D*[u] -= L inv(D*[l]) U, then
// inverts D*.
func (ch *Cholesky[T]) calcPreconDiag() {
	var (
		a     = ch.m.Addr
		level = ch.level()
		pd    = ch.preconDiag
	)
	switch level {
	case types.Linear:
		pd.ToLinear()
	case types.Square:
		pd.ToSquare()
	}
	if !ch.m.Diagonal() {
		for f := 0; f < a.NFaces(); f++ {
			var (
				l, u  = a.Lower[f], a.Upper[f]
				upper = promoteTo(ch.m.Upper.Coeff(f), level)
				lower *coeff.BlockCoeff[T]
			)
			if ch.m.Lower == nil {
				lower = coeff.Transpose(upper)
			} else {
				lower = promoteTo(ch.m.Lower.Coeff(f), level)
			}
			subtractCell(pd, u, coeff.TripleProduct(lower, pd.Coeff(l), upper))
		}
	}
	for c := 0; c < a.Size; c++ {
		pd.SetCoeff(c, coeff.Inverse(pd.Coeff(c)))
	}
}

func subtractCell[T constraints.Float](cf *coeff.CoeffField[T], i int, c *coeff.BlockCoeff[T]) {
	switch cf.ActiveType() {
	case types.Scalar:
		cf.AsScalar()[i] -= c.AsScalar()
	case types.Linear:
		subtractFrom(cf.AsLinear()[i], c.AsLinear())
	case types.Square:
		subtractFrom(cf.AsSquare()[i].Data(), c.AsSquare().Data())
	}
}

func subtractFrom[T constraints.Float](dst, src []T) {
	for i := range dst {
		dst[i] -= src[i]
	}
}

// ILUMultiply sets x = inv(M) b: a forward substitution through the lower
// coefficients in losort order, then a backward one through the upper
// coefficients in reverse face order.
func (ch *Cholesky[T]) ILUMultiply(x, b field.VectorField[T]) {
	var (
		a  = ch.m.Addr
		pd = ch.preconDiag
	)
	for c := range x {
		copy(x[c], pd.MultiplyCell(c, b[c]))
	}
	if ch.m.Diagonal() {
		return
	}
	for _, f := range a.LosortAddr {
		u := a.Upper[f]
		subtractFrom(x[u], pd.MultiplyCell(u, ch.m.LowerMultiplyCell(f, x[a.Lower[f]])))
	}
	for f := a.NFaces() - 1; f >= 0; f-- {
		l := a.Lower[f]
		subtractFrom(x[l], pd.MultiplyCell(l, ch.m.Upper.MultiplyCell(f, x[a.Upper[f]])))
	}
}

// ILUMultiplyTranspose sets x = inv(M^T) b. Square blocks are transposed, so
// the result is the exact transpose of ILUMultiply.
func (ch *Cholesky[T]) ILUMultiplyTranspose(x, b field.VectorField[T]) {
	var (
		a  = ch.m.Addr
		pd = ch.preconDiag
	)
	for c := range x {
		copy(x[c], pd.TransposeMultiplyCell(c, b[c]))
	}
	if ch.m.Diagonal() {
		return
	}
	for f := 0; f < a.NFaces(); f++ {
		u := a.Upper[f]
		subtractFrom(x[u], pd.TransposeMultiplyCell(u, ch.m.Upper.TransposeMultiplyCell(f, x[a.Lower[f]])))
	}
	for i := a.NFaces() - 1; i >= 0; i-- {
		var (
			f  = a.LosortAddr[i]
			l  = a.Lower[f]
			xu = x[a.Upper[f]]
			lt hyper.Vector[T]
		)
		if ch.m.Lower == nil {
			lt = ch.m.Upper.MultiplyCell(f, xu)
		} else {
			lt = ch.m.Lower.TransposeMultiplyCell(f, xu)
		}
		subtractFrom(x[l], pd.TransposeMultiplyCell(l, lt))
	}
}

func (ch *Cholesky[T]) Precondition(x, b field.VectorField[T]) {
	ch.correct(ch.m, ch.ILUMultiply, x, b)
}

// PreconditionT smooths A^T x = b with inv(M^T) as the correction.
func (ch *Cholesky[T]) PreconditionT(x, b field.VectorField[T]) {
	if ch.mT == nil {
		ch.mT = ch.m.Transpose()
	}
	ch.correct(ch.mT, ch.ILUMultiplyTranspose, x, b)
}

func (ch *Cholesky[T]) correct(A *ldu.BlockMatrix[T], apply func(x, b field.VectorField[T]),
	x, b field.VectorField[T]) {
	dx := field.NewVectorField[T](len(x), ch.m.N)
	for sweep := 0; sweep < ch.nSweeps; sweep++ {
		apply(dx, A.Residual(ch.r, x, b))
		for c := range x {
			for i := range x[c] {
				x[c][i] += dx[c][i]
			}
		}
	}
}

var _ TransposeSmoother[float64] = (*Cholesky[float64])(nil)
