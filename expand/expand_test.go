package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/blockcoupled/dimension"
	"github.com/notargets/blockcoupled/hyper"
)

func TestContract(t *testing.T) {
	{ // Averages
		assert.Equal(t, 2., ContractScalarVector(hyper.Vector[float64]{1, 2, 3}))
		A := hyper.NewTensorFrom(2, []float64{
			1, 2,
			3, 5,
		})
		// Diagonal sum over row length, not component count
		assert.Equal(t, 3., ContractScalarTensor(A))
		var s float64
		ContractScalarTensorInto(&s, A)
		assert.Equal(t, 3., s)
		assert.Equal(t, hyper.Vector[float64]{1, 5}, ContractLinear(A))
	}
	{ // Row sums
		A := hyper.NewTensorFrom(2, []float64{
			1, 2,
			3, 4,
		})
		assert.Equal(t, hyper.Vector[float64]{3, 7}, SumToDiag(A))
		B := hyper.NewTensorFrom(2, []float64{
			1, -2,
			-3, 4,
		})
		assert.Equal(t, hyper.Vector[float64]{3, 7}, SumMagToDiag(B))
		assert.Equal(t, hyper.Vector[float64]{-1, 1}, SumToDiag(B))
	}
	{ // Into forms require a result of matching size
		A := hyper.TensorOne[float64](3)
		assert.Panics(t, func() { ContractLinearInto(hyper.NewVector[float64](2), A) })
		assert.Panics(t, func() { SumToDiagInto(hyper.NewVector[float64](4), A) })
	}
}

func TestExpand(t *testing.T) {
	{
		assert.Equal(t, hyper.Vector[float64]{2, 2, 2}, ExpandScalarVector(3, 2.))
		// Scalar expansion into a tensor fills the diagonal only
		A := ExpandScalarTensor(3, 2.)
		assert.Equal(t, []float64{
			2, 0, 0,
			0, 2, 0,
			0, 0, 2,
		}, A.Data())
		assert.False(t, A.Equal(hyper.NewTensorFill(3, 2.)))
	}
	{ // Into forms overwrite stale contents
		A := hyper.NewTensorFill(2, 9.)
		ExpandLinearInto(A, hyper.Vector[float64]{1, 2})
		assert.Equal(t, []float64{1, 0, 0, 2}, A.Data())
		ExpandScalarTensorInto(A, 3.)
		assert.Equal(t, []float64{3, 0, 0, 3}, A.Data())
	}
	{ // Round trips
		v := hyper.Vector[float64]{1, -2, 3, -4}
		assert.Equal(t, v, ContractLinear(ExpandLinear(v)))
		assert.Equal(t, 5., ContractScalarTensor(ExpandScalarTensor(4, 5.)))
		assert.Equal(t, 5., ContractScalarVector(ExpandScalarVector(4, 5.)))
	}
}

func TestDimensioned(t *testing.T) {
	dims := dimension.New(1, -3, 0, 0, 0, 0, 0)
	A := dimension.NewDimensioned("rhoA", dims, hyper.NewTensorFrom(2, []float64{
		1, 2,
		3, 4,
	}))
	{
		r := DimensionedContractLinear(A)
		assert.Equal(t, "contractLinear(rhoA)", r.Name)
		assert.Equal(t, dims, r.Dims)
		assert.Equal(t, hyper.Vector[float64]{1, 4}, r.Value)
	}
	{
		r := DimensionedSumToDiag(A)
		assert.Equal(t, "sumToDiag(rhoA)", r.Name)
		assert.Equal(t, hyper.Vector[float64]{3, 7}, r.Value)
		s := DimensionedCmptSum(r)
		assert.Equal(t, "cmptSum(sumToDiag(rhoA))", s.Name)
		assert.Equal(t, 10., s.Value)
		assert.Equal(t, dims, s.Dims)
	}
	{
		r := DimensionedExpandLinear(DimensionedDiag(A))
		assert.Equal(t, "expandLinear(diag(rhoA))", r.Name)
		assert.Equal(t, []float64{1, 0, 0, 4}, r.Value.Data())
		assert.Equal(t, 2.5, DimensionedContractScalarTensor(A).Value)
		assert.Equal(t, hyper.Vector[float64]{3, 7}, DimensionedSumMagToDiag(A).Value)
	}
	{
		s := dimension.NewDimensioned("k", dimension.Dimless, 3.)
		v := DimensionedExpandScalarVector(2, s)
		assert.Equal(t, "expandScalar(k)", v.Name)
		assert.Equal(t, hyper.Vector[float64]{3, 3}, v.Value)
		require.True(t, v.Dims.Dimensionless())
		assert.Equal(t, 3., DimensionedContractScalarVector(v).Value)
		D := DimensionedExpandScalarTensor(2, s)
		assert.Equal(t, []float64{3, 0, 0, 3}, D.Value.Data())
	}
}
