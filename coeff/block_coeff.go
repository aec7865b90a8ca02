// Package coeff stores matrix coefficients at the cheapest of three levels:
// one scalar shared by all components, a diagonal vector, or a full tensor.
package coeff

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/expand"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/types"
)

// BlockCoeff holds at most one active level. Levels only ever promote.
type BlockCoeff[T constraints.Float] struct {
	n      int
	level  types.ActiveLevel
	scalar T
	linear hyper.Vector[T]
	square hyper.Tensor[T]
}

func NewBlockCoeff[T constraints.Float](n int) *BlockCoeff[T] {
	return &BlockCoeff[T]{n: n}
}

func NewScalarCoeff[T constraints.Float](n int, s T) *BlockCoeff[T] {
	return &BlockCoeff[T]{n: n, level: types.Scalar, scalar: s}
}

func NewLinearCoeff[T constraints.Float](v hyper.Vector[T]) *BlockCoeff[T] {
	return &BlockCoeff[T]{n: len(v), level: types.Linear, linear: v.Copy()}
}

func NewSquareCoeff[T constraints.Float](t hyper.Tensor[T]) *BlockCoeff[T] {
	return &BlockCoeff[T]{n: t.RowLength(), level: types.Square, square: t.Copy()}
}

func (c *BlockCoeff[T]) ActiveType() types.ActiveLevel { return c.level }

func (c *BlockCoeff[T]) NComponents() int { return c.n }

func (c *BlockCoeff[T]) AsScalar() T {
	if c.level != types.Scalar {
		inactive(types.Scalar, c.level)
	}
	return c.scalar
}

func (c *BlockCoeff[T]) AsLinear() hyper.Vector[T] {
	if c.level != types.Linear {
		inactive(types.Linear, c.level)
	}
	return c.linear
}

func (c *BlockCoeff[T]) AsSquare() hyper.Tensor[T] {
	if c.level != types.Square {
		inactive(types.Square, c.level)
	}
	return c.square
}

// ToScalar activates the scalar level and returns it for writing.
func (c *BlockCoeff[T]) ToScalar() *T {
	switch c.level {
	case types.Unallocated:
		c.level = types.Scalar
	case types.Linear, types.Square:
		demotion(types.Scalar, c.level)
	}
	return &c.scalar
}

// ToLinear promotes a scalar s to s*one.
func (c *BlockCoeff[T]) ToLinear() hyper.Vector[T] {
	switch c.level {
	case types.Unallocated:
		c.linear = hyper.NewVector[T](c.n)
	case types.Scalar:
		c.linear = expand.ExpandScalarVector(c.n, c.scalar)
		c.scalar = 0
	case types.Square:
		demotion(types.Linear, c.level)
	}
	c.level = types.Linear
	return c.linear
}

// ToSquare promotes a scalar onto the diagonal and a linear coefficient into
// a diagonal tensor.
func (c *BlockCoeff[T]) ToSquare() hyper.Tensor[T] {
	switch c.level {
	case types.Unallocated:
		c.square = hyper.NewTensor[T](c.n)
	case types.Scalar:
		c.square = expand.ExpandScalarTensor(c.n, c.scalar)
		c.scalar = 0
	case types.Linear:
		c.square = expand.ExpandLinear(c.linear)
		c.linear = nil
	}
	c.level = types.Square
	return c.square
}

// Component is the d-th diagonal entry at whatever level is active.
func (c *BlockCoeff[T]) Component(d int) T {
	switch c.level {
	case types.Scalar:
		return c.scalar
	case types.Linear:
		return c.linear[d]
	case types.Square:
		return c.square.At(d, d)
	}
	panic(fmt.Errorf("component %d: coefficient not allocated: %w", d, ErrInactive))
}

func (c *BlockCoeff[T]) Clone() (r *BlockCoeff[T]) {
	r = &BlockCoeff[T]{n: c.n, level: c.level, scalar: c.scalar}
	switch c.level {
	case types.Linear:
		r.linear = c.linear.Copy()
	case types.Square:
		r.square = c.square.Copy()
	}
	return
}

func (c *BlockCoeff[T]) Clear() {
	c.level = types.Unallocated
	c.scalar = 0
	c.linear = nil
	c.square = hyper.Tensor[T]{}
}

// Assign copies o into c at o's level, promoting c as needed.
func (c *BlockCoeff[T]) Assign(o *BlockCoeff[T]) {
	if c == o {
		panic(fmt.Errorf("attempted assignment to self"))
	}
	switch o.level {
	case types.Scalar:
		*c.ToScalar() = o.scalar
	case types.Linear:
		copy(c.ToLinear(), o.linear)
	case types.Square:
		copy(c.ToSquare().Data(), o.square.Data())
	}
}

func (c *BlockCoeff[T]) String() string {
	switch c.level {
	case types.Scalar:
		return fmt.Sprintf("%s\n%v", c.level, c.scalar)
	case types.Linear:
		return fmt.Sprintf("%s\n%s", c.level, c.linear)
	case types.Square:
		return fmt.Sprintf("%s\n%s", c.level, c.square)
	}
	return c.level.String() + "\n"
}
