package coeff

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/types"
)

// CoeffField is a BlockCoeff per cell with one active level shared by every
// cell.
type CoeffField[T constraints.Float] struct {
	size, n int
	level   types.ActiveLevel
	scalar  field.ScalarField[T]
	linear  field.VectorField[T]
	square  field.TensorField[T]
}

func NewCoeffField[T constraints.Float](size, n int) *CoeffField[T] {
	return &CoeffField[T]{size: size, n: n}
}

func (cf *CoeffField[T]) ActiveType() types.ActiveLevel { return cf.level }

func (cf *CoeffField[T]) Size() int { return cf.size }

func (cf *CoeffField[T]) NComponents() int { return cf.n }

func (cf *CoeffField[T]) AsScalar() field.ScalarField[T] {
	if cf.level != types.Scalar {
		inactive(types.Scalar, cf.level)
	}
	return cf.scalar
}

func (cf *CoeffField[T]) AsLinear() field.VectorField[T] {
	if cf.level != types.Linear {
		inactive(types.Linear, cf.level)
	}
	return cf.linear
}

func (cf *CoeffField[T]) AsSquare() field.TensorField[T] {
	if cf.level != types.Square {
		inactive(types.Square, cf.level)
	}
	return cf.square
}

func (cf *CoeffField[T]) ToScalar() field.ScalarField[T] {
	switch cf.level {
	case types.Unallocated:
		cf.scalar = field.NewScalarField[T](cf.size)
		cf.level = types.Scalar
	case types.Linear, types.Square:
		demotion(types.Scalar, cf.level)
	}
	return cf.scalar
}

func (cf *CoeffField[T]) ToLinear() field.VectorField[T] {
	switch cf.level {
	case types.Unallocated:
		cf.linear = field.NewVectorField[T](cf.size, cf.n)
	case types.Scalar:
		cf.linear = field.ExpandScalarVector(nil, cf.n, cf.scalar)
		cf.scalar = nil
	case types.Square:
		demotion(types.Linear, cf.level)
	}
	cf.level = types.Linear
	return cf.linear
}

func (cf *CoeffField[T]) ToSquare() field.TensorField[T] {
	switch cf.level {
	case types.Unallocated:
		cf.square = field.NewTensorField[T](cf.size, cf.n)
	case types.Scalar:
		cf.square = field.ExpandScalarTensor(nil, cf.n, cf.scalar)
		cf.scalar = nil
	case types.Linear:
		cf.square = field.ExpandLinear(nil, cf.linear)
		cf.linear = nil
	}
	cf.level = types.Square
	return cf.square
}

// Coeff returns a copy of cell i.
func (cf *CoeffField[T]) Coeff(i int) *BlockCoeff[T] {
	switch cf.level {
	case types.Scalar:
		return NewScalarCoeff(cf.n, cf.scalar[i])
	case types.Linear:
		return NewLinearCoeff(cf.linear[i])
	case types.Square:
		return NewSquareCoeff(cf.square[i])
	}
	return NewBlockCoeff[T](cf.n)
}

// SetCoeff stores c in cell i. The field is promoted to c's level first, and c
// is promoted to the field's level when the field is already higher.
func (cf *CoeffField[T]) SetCoeff(i int, c *BlockCoeff[T]) {
	if c.n != cf.n {
		panic(fmt.Errorf("setCoeff: coefficient has %d components, field has %d: %w",
			c.n, cf.n, hyper.ErrDimensionMismatch))
	}
	if c.level > cf.level {
		cf.promote(c.level)
	}
	if c.level < cf.level && c.level != types.Unallocated {
		c = c.Clone()
		switch cf.level {
		case types.Linear:
			c.ToLinear()
		case types.Square:
			c.ToSquare()
		}
	}
	switch c.level {
	case types.Scalar:
		cf.scalar[i] = c.scalar
	case types.Linear:
		copy(cf.linear[i], c.linear)
	case types.Square:
		copy(cf.square[i].Data(), c.square.Data())
	}
}

func (cf *CoeffField[T]) promote(level types.ActiveLevel) {
	switch level {
	case types.Scalar:
		cf.ToScalar()
	case types.Linear:
		cf.ToLinear()
	case types.Square:
		cf.ToSquare()
	}
}

// Component returns the d-th diagonal entry of every cell.
func (cf *CoeffField[T]) Component(d int) (r field.ScalarField[T]) {
	r = field.NewScalarField[T](cf.size)
	switch cf.level {
	case types.Scalar:
		copy(r, cf.scalar)
	case types.Linear:
		for k, v := range cf.linear {
			r[k] = v[d]
		}
	case types.Square:
		for k, t := range cf.square {
			r[k] = t.At(d, d)
		}
	default:
		panic(fmt.Errorf("component %d: field not allocated: %w", d, ErrInactive))
	}
	return
}

func (cf *CoeffField[T]) MultiplyCell(i int, x hyper.Vector[T]) hyper.Vector[T] {
	switch cf.level {
	case types.Scalar:
		return x.Scale(cf.scalar[i])
	case types.Linear:
		return hyper.CmptMultiply(cf.linear[i], x)
	case types.Square:
		return cf.square[i].MulVec(x)
	}
	return hyper.NewVector[T](len(x))
}

func (cf *CoeffField[T]) TransposeMultiplyCell(i int, x hyper.Vector[T]) hyper.Vector[T] {
	if cf.level == types.Square {
		return x.MulTensor(cf.square[i])
	}
	return cf.MultiplyCell(i, x)
}

// Multiply applies every cell to the matching cell of x.
func (cf *CoeffField[T]) Multiply(r *field.Runner, x field.VectorField[T]) (result field.VectorField[T]) {
	if len(x) != cf.size {
		panic(fmt.Errorf("multiply: field has %d cells, operand %d: %w",
			cf.size, len(x), hyper.ErrDimensionMismatch))
	}
	result = make(field.VectorField[T], cf.size)
	r.Apply(cf.size, func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			result[k] = cf.MultiplyCell(k, x[k])
		}
	})
	return
}

func (cf *CoeffField[T]) Negate() {
	switch cf.level {
	case types.Scalar:
		for k := range cf.scalar {
			cf.scalar[k] = -cf.scalar[k]
		}
	case types.Linear:
		cf.linear = cf.linear.Negate()
	case types.Square:
		cf.square = cf.square.Negate()
	}
}

// Transpose returns a copy with every square cell transposed.
func (cf *CoeffField[T]) Transpose() (r *CoeffField[T]) {
	r = cf.Clone()
	if r.level == types.Square {
		r.square = field.Transpose(nil, cf.square)
	}
	return
}

func (cf *CoeffField[T]) Clone() (r *CoeffField[T]) {
	r = &CoeffField[T]{size: cf.size, n: cf.n, level: cf.level}
	switch cf.level {
	case types.Scalar:
		r.scalar = cf.scalar.Copy()
	case types.Linear:
		r.linear = cf.linear.Copy()
	case types.Square:
		r.square = cf.square.Copy()
	}
	return
}

func (cf *CoeffField[T]) Clear() {
	cf.level = types.Unallocated
	cf.scalar, cf.linear, cf.square = nil, nil, nil
}
