package coeff

import (
	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/expand"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/types"
)

// Multiply applies c to x. An unallocated coefficient yields zero.
func Multiply[T constraints.Float](c *BlockCoeff[T], x hyper.Vector[T]) hyper.Vector[T] {
	switch c.level {
	case types.Scalar:
		return x.Scale(c.scalar)
	case types.Linear:
		return hyper.CmptMultiply(c.linear, x)
	case types.Square:
		return c.square.MulVec(x)
	}
	return hyper.NewVector[T](len(x))
}

// TransposeMultiply applies the transpose of c to x.
func TransposeMultiply[T constraints.Float](c *BlockCoeff[T], x hyper.Vector[T]) hyper.Vector[T] {
	if c.level == types.Square {
		return x.MulTensor(c.square)
	}
	return Multiply(c, x)
}

// ActiveMultiply multiplies two coefficients at the same level.
func ActiveMultiply[T constraints.Float](a, b *BlockCoeff[T]) *BlockCoeff[T] {
	if a.level != b.level {
		levelMismatch("activeMultiply", a.level, b.level)
	}
	switch a.level {
	case types.Scalar:
		return NewScalarCoeff(a.n, a.scalar*b.scalar)
	case types.Linear:
		return &BlockCoeff[T]{n: a.n, level: types.Linear, linear: hyper.CmptMultiply(a.linear, b.linear)}
	case types.Square:
		return &BlockCoeff[T]{n: a.n, level: types.Square, square: a.square.Mul(b.square)}
	}
	return NewBlockCoeff[T](a.n)
}

func Transpose[T constraints.Float](c *BlockCoeff[T]) *BlockCoeff[T] {
	if c.level == types.Square {
		return &BlockCoeff[T]{n: c.n, level: types.Square, square: c.square.T()}
	}
	return c.Clone()
}

// Inverse panics with a *hyper.SingularError for a singular square level.
func Inverse[T constraints.Float](c *BlockCoeff[T]) *BlockCoeff[T] {
	switch c.level {
	case types.Scalar:
		return NewScalarCoeff(c.n, 1/c.scalar)
	case types.Linear:
		return &BlockCoeff[T]{n: c.n, level: types.Linear, linear: hyper.ScalarOverVector(1, c.linear)}
	case types.Square:
		return &BlockCoeff[T]{n: c.n, level: types.Square, square: hyper.Inv(c.square)}
	}
	levelMismatch("inverse", c.level)
	return nil
}

// TripleProduct forms a*inv(b)*c for the supported level combinations:
// (scalar, scalar, scalar), (scalar, linear, scalar), (linear, linear, linear),
// (scalar, square, scalar), (linear, square, linear) and (square, square, square).
func TripleProduct[T constraints.Float](a, b, c *BlockCoeff[T]) *BlockCoeff[T] {
	var (
		n  = b.n
		la = a.level
		lb = b.level
		lc = c.level
	)
	switch {
	case la == types.Scalar && lb == types.Scalar && lc == types.Scalar:
		return NewScalarCoeff(n, a.scalar*c.scalar/b.scalar)
	case la == types.Scalar && lb == types.Linear && lc == types.Scalar:
		return &BlockCoeff[T]{n: n, level: types.Linear,
			linear: hyper.ScalarOverVector(1, b.linear).Scale(a.scalar * c.scalar)}
	case la == types.Linear && lb == types.Linear && lc == types.Linear:
		return &BlockCoeff[T]{n: n, level: types.Linear,
			linear: hyper.CmptDivide(hyper.CmptMultiply(a.linear, c.linear), b.linear)}
	case la == types.Scalar && lb == types.Square && lc == types.Scalar:
		return &BlockCoeff[T]{n: n, level: types.Square,
			square: hyper.Inv(b.square).Scale(a.scalar * c.scalar)}
	case la == types.Linear && lb == types.Square && lc == types.Linear:
		sac := expand.ExpandLinear(hyper.CmptMultiply(a.linear, c.linear))
		return &BlockCoeff[T]{n: n, level: types.Square, square: sac.Mul(hyper.Inv(b.square))}
	case la == types.Square && lb == types.Square && lc == types.Square:
		return &BlockCoeff[T]{n: n, level: types.Square,
			square: a.square.Mul(hyper.Inv(b.square)).Mul(c.square)}
	}
	levelMismatch("tripleProduct", la, lb, lc)
	return nil
}
