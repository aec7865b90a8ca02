package expand

import (
	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/dimension"
	"github.com/notargets/blockcoupled/hyper"
)

func DimensionedContractScalarVector[T constraints.Float](d dimension.Dimensioned[hyper.Vector[T]]) dimension.Dimensioned[T] {
	return dimension.Lift(d, "contractScalar", ContractScalarVector[T])
}

func DimensionedContractScalarTensor[T constraints.Float](d dimension.Dimensioned[hyper.Tensor[T]]) dimension.Dimensioned[T] {
	return dimension.Lift(d, "contractScalar", ContractScalarTensor[T])
}

func DimensionedContractLinear[T constraints.Float](d dimension.Dimensioned[hyper.Tensor[T]]) dimension.Dimensioned[hyper.Vector[T]] {
	return dimension.Lift(d, "contractLinear", ContractLinear[T])
}

func DimensionedExpandScalarVector[T constraints.Float](n int, d dimension.Dimensioned[T]) dimension.Dimensioned[hyper.Vector[T]] {
	return dimension.Lift(d, "expandScalar", func(s T) hyper.Vector[T] {
		return ExpandScalarVector(n, s)
	})
}

func DimensionedExpandScalarTensor[T constraints.Float](n int, d dimension.Dimensioned[T]) dimension.Dimensioned[hyper.Tensor[T]] {
	return dimension.Lift(d, "expandScalar", func(s T) hyper.Tensor[T] {
		return ExpandScalarTensor(n, s)
	})
}

func DimensionedExpandLinear[T constraints.Float](d dimension.Dimensioned[hyper.Vector[T]]) dimension.Dimensioned[hyper.Tensor[T]] {
	return dimension.Lift(d, "expandLinear", ExpandLinear[T])
}

func DimensionedSumToDiag[T constraints.Float](d dimension.Dimensioned[hyper.Tensor[T]]) dimension.Dimensioned[hyper.Vector[T]] {
	return dimension.Lift(d, "sumToDiag", SumToDiag[T])
}

func DimensionedSumMagToDiag[T constraints.Float](d dimension.Dimensioned[hyper.Tensor[T]]) dimension.Dimensioned[hyper.Vector[T]] {
	return dimension.Lift(d, "sumMagToDiag", SumMagToDiag[T])
}

func DimensionedDiag[T constraints.Float](d dimension.Dimensioned[hyper.Tensor[T]]) dimension.Dimensioned[hyper.Vector[T]] {
	return dimension.Lift(d, "diag", hyper.Tensor[T].Diag)
}

func DimensionedCmptSum[T constraints.Float](d dimension.Dimensioned[hyper.Vector[T]]) dimension.Dimensioned[T] {
	return dimension.Lift(d, "cmptSum", hyper.Vector[T].CmptSum)
}
