package coeff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/types"
)

func recoverError(t *testing.T, fn func()) (err error) {
	defer func() {
		p := recover()
		require.NotNil(t, p)
		var ok bool
		err, ok = p.(error)
		require.True(t, ok)
	}()
	fn()
	return
}

func TestBlockCoeffPromotion(t *testing.T) {
	{ // scalar -> linear -> square
		c := NewBlockCoeff[float64](3)
		assert.Equal(t, types.Unallocated, c.ActiveType())
		*c.ToScalar() = 2
		assert.Equal(t, types.Scalar, c.ActiveType())
		assert.Equal(t, 2., c.AsScalar())
		assert.Equal(t, hyper.Vector[float64]{2, 2, 2}, c.ToLinear())
		assert.Equal(t, types.Linear, c.ActiveType())
		c.ToLinear()[1] = 5
		S := c.ToSquare()
		assert.Equal(t, []float64{
			2, 0, 0,
			0, 5, 0,
			0, 0, 2,
		}, S.Data())
		assert.Equal(t, 5., c.Component(1))
	}
	{ // scalar -> square goes on the diagonal only
		c := NewScalarCoeff(2, 3.)
		assert.Equal(t, []float64{3, 0, 0, 3}, c.ToSquare().Data())
	}
	{ // Demotion and inactive access are fatal
		c := NewLinearCoeff(hyper.Vector[float64]{1, 2})
		assert.ErrorIs(t, recoverError(t, func() { c.ToScalar() }), ErrDemotion)
		err := recoverError(t, func() { c.AsSquare() })
		assert.ErrorIs(t, err, ErrInactive)
		assert.EqualError(t, err, "requested square but active type is: linear")
		q := NewSquareCoeff(hyper.Identity[float64](2))
		assert.ErrorIs(t, recoverError(t, func() { q.ToLinear() }), ErrDemotion)
		assert.ErrorIs(t, recoverError(t, func() { NewBlockCoeff[float64](2).Component(0) }), ErrInactive)
	}
	{ // Clone, assign and clear
		c := NewLinearCoeff(hyper.Vector[float64]{1, 2})
		d := c.Clone()
		d.ToLinear()[0] = 7
		assert.Equal(t, 1., c.AsLinear()[0])
		s := NewScalarCoeff(2, 4.)
		s.Assign(c)
		assert.Equal(t, types.Linear, s.ActiveType())
		assert.Equal(t, hyper.Vector[float64]{1, 2}, s.AsLinear())
		s.Clear()
		assert.Equal(t, types.Unallocated, s.ActiveType())
		assert.Panics(t, func() { s.Assign(s) })
	}
	{
		assert.Equal(t, "scalar\n2", NewScalarCoeff(3, 2.).String())
		assert.Equal(t, "linear\n(1 2)", NewLinearCoeff(hyper.Vector[float64]{1, 2}).String())
		assert.Equal(t, "unallocated\n", NewBlockCoeff[float64](2).String())
	}
}

func TestBlockCoeffAlgebra(t *testing.T) {
	x := hyper.Vector[float64]{1, 2}
	A := hyper.NewTensorFrom(2, []float64{
		2, 1,
		0, 4,
	})
	{ // Multiply per level
		assert.Equal(t, hyper.Vector[float64]{3, 6}, Multiply(NewScalarCoeff(2, 3.), x))
		assert.Equal(t, hyper.Vector[float64]{3, 8}, Multiply(NewLinearCoeff(hyper.Vector[float64]{3, 4}), x))
		assert.Equal(t, hyper.Vector[float64]{4, 8}, Multiply(NewSquareCoeff(A), x))
		assert.Equal(t, hyper.Vector[float64]{2, 9}, TransposeMultiply(NewSquareCoeff(A), x))
		assert.Equal(t, hyper.Vector[float64]{0, 0}, Multiply(NewBlockCoeff[float64](2), x))
	}
	{ // Inverse and transpose
		assert.Equal(t, 0.25, Inverse(NewScalarCoeff(2, 4.)).AsScalar())
		assert.Equal(t, hyper.Vector[float64]{0.5, 0.25}, Inverse(NewLinearCoeff(hyper.Vector[float64]{2, 4})).AsLinear())
		Ai := Inverse(NewSquareCoeff(A)).AsSquare()
		assert.InDeltaSlice(t, hyper.Identity[float64](2).Data(), A.Mul(Ai).Data(), 1.e-15)
		assert.Equal(t, []float64{2, 0, 1, 4}, Transpose(NewSquareCoeff(A)).AsSquare().Data())
		assert.Equal(t, 3., Transpose(NewScalarCoeff(2, 3.)).AsScalar())
	}
	{ // Same level products
		assert.Equal(t, 6., ActiveMultiply(NewScalarCoeff(2, 2.), NewScalarCoeff(2, 3.)).AsScalar())
		assert.Equal(t, A.Mul(A).Data(), ActiveMultiply(NewSquareCoeff(A), NewSquareCoeff(A)).AsSquare().Data())
		assert.ErrorIs(t, recoverError(t, func() {
			ActiveMultiply(NewScalarCoeff(2, 2.), NewSquareCoeff(A))
		}), ErrLevelMismatch)
	}
}

func TestTripleProduct(t *testing.T) {
	var (
		s2 = NewScalarCoeff(2, 2.)
		s3 = NewScalarCoeff(2, 3.)
		l  = NewLinearCoeff(hyper.Vector[float64]{2, 4})
		B  = hyper.NewTensorFrom(2, []float64{
			2, 1,
			1, 3,
		})
		q = NewSquareCoeff(B)
	)
	Binv := hyper.Inv(B)
	assert.Equal(t, 3., TripleProduct(s2, s2, s3).AsScalar())
	assert.Equal(t, hyper.Vector[float64]{3, 1.5}, TripleProduct(s2, l, s3).AsLinear())
	assert.Equal(t, hyper.Vector[float64]{2, 4}, TripleProduct(l, l, l).AsLinear())
	assert.InDeltaSlice(t, Binv.Scale(6).Data(), TripleProduct(s2, q, s3).AsSquare().Data(), 1.e-14)
	lql := TripleProduct(l, q, l).AsSquare()
	assert.InDeltaSlice(t, hyper.ScaleRow(Binv.T(), hyper.Vector[float64]{4, 16}).T().Data(), lql.Data(), 1.e-14)
	qqq := TripleProduct(q, q, q).AsSquare()
	assert.InDeltaSlice(t, B.Data(), qqq.Data(), 1.e-14)
	assert.ErrorIs(t, recoverError(t, func() { TripleProduct(q, l, q) }), ErrLevelMismatch)
}
