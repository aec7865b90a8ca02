package field

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/expand"
	"github.com/notargets/blockcoupled/hyper"
)

func ContractScalarVectorInto[T constraints.Float](r *Runner, result ScalarField[T], f VectorField[T]) {
	checkSize("ContractScalarVector", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.ContractScalarVectorInto(&result[k], f[k])
		}
	})
}

func ContractScalarVector[T constraints.Float](r *Runner, f VectorField[T]) (result ScalarField[T]) {
	result = NewScalarField[T](len(f))
	ContractScalarVectorInto(r, result, f)
	return
}

func ContractScalarTensorInto[T constraints.Float](r *Runner, result ScalarField[T], f TensorField[T]) {
	checkSize("ContractScalarTensor", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.ContractScalarTensorInto(&result[k], f[k])
		}
	})
}

func ContractScalarTensor[T constraints.Float](r *Runner, f TensorField[T]) (result ScalarField[T]) {
	result = NewScalarField[T](len(f))
	ContractScalarTensorInto(r, result, f)
	return
}

func ContractLinearInto[T constraints.Float](r *Runner, result VectorField[T], f TensorField[T]) {
	checkSize("ContractLinear", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.ContractLinearInto(result[k], f[k])
		}
	})
}

func ContractLinear[T constraints.Float](r *Runner, f TensorField[T]) (result VectorField[T]) {
	result = NewVectorField[T](len(f), rowLength(f))
	ContractLinearInto(r, result, f)
	return
}

func ExpandScalarVectorInto[T constraints.Float](r *Runner, result VectorField[T], f ScalarField[T]) {
	checkSize("ExpandScalarVector", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.ExpandScalarVectorInto(result[k], f[k])
		}
	})
}

func ExpandScalarVector[T constraints.Float](r *Runner, n int, f ScalarField[T]) (result VectorField[T]) {
	result = NewVectorField[T](len(f), n)
	ExpandScalarVectorInto(r, result, f)
	return
}

func ExpandScalarTensorInto[T constraints.Float](r *Runner, result TensorField[T], f ScalarField[T]) {
	checkSize("ExpandScalarTensor", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.ExpandScalarTensorInto(result[k], f[k])
		}
	})
}

func ExpandScalarTensor[T constraints.Float](r *Runner, n int, f ScalarField[T]) (result TensorField[T]) {
	result = NewTensorField[T](len(f), n)
	ExpandScalarTensorInto(r, result, f)
	return
}

func ExpandLinearInto[T constraints.Float](r *Runner, result TensorField[T], f VectorField[T]) {
	checkSize("ExpandLinear", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.ExpandLinearInto(result[k], f[k])
		}
	})
}

func ExpandLinear[T constraints.Float](r *Runner, f VectorField[T]) (result TensorField[T]) {
	n := 0
	if len(f) != 0 {
		n = len(f[0])
	}
	result = NewTensorField[T](len(f), n)
	ExpandLinearInto(r, result, f)
	return
}

func SumToDiagInto[T constraints.Float](r *Runner, result VectorField[T], f TensorField[T]) {
	checkSize("SumToDiag", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.SumToDiagInto(result[k], f[k])
		}
	})
}

func SumToDiag[T constraints.Float](r *Runner, f TensorField[T]) (result VectorField[T]) {
	result = NewVectorField[T](len(f), rowLength(f))
	SumToDiagInto(r, result, f)
	return
}

func SumMagToDiagInto[T constraints.Float](r *Runner, result VectorField[T], f TensorField[T]) {
	checkSize("SumMagToDiag", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			expand.SumMagToDiagInto(result[k], f[k])
		}
	})
}

func SumMagToDiag[T constraints.Float](r *Runner, f TensorField[T]) (result VectorField[T]) {
	result = NewVectorField[T](len(f), rowLength(f))
	SumMagToDiagInto(r, result, f)
	return
}

func DetInto[T constraints.Float](r *Runner, result ScalarField[T], f TensorField[T]) {
	checkSize("Det", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			result[k] = hyper.Det(f[k])
		}
	})
}

func Det[T constraints.Float](r *Runner, f TensorField[T]) (result ScalarField[T]) {
	result = NewScalarField[T](len(f))
	DetInto(r, result, f)
	return
}

// InvInto panics with a *hyper.SingularError if any cell is singular.
func InvInto[T constraints.Float](r *Runner, result TensorField[T], f TensorField[T]) {
	checkSize("Inv", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			checkRowLength("Inv", f[k], result[k])
			copy(result[k].Data(), hyper.Inv(f[k]).Data())
		}
	})
}

func Inv[T constraints.Float](r *Runner, f TensorField[T]) (result TensorField[T]) {
	result = NewTensorField[T](len(f), rowLength(f))
	InvInto(r, result, f)
	return
}

func TransposeInto[T constraints.Float](r *Runner, result TensorField[T], f TensorField[T]) {
	checkSize("Transpose", len(f), len(result))
	r.Apply(len(f), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			checkRowLength("Transpose", f[k], result[k])
			copy(result[k].Data(), f[k].T().Data())
		}
	})
}

func Transpose[T constraints.Float](r *Runner, f TensorField[T]) (result TensorField[T]) {
	result = NewTensorField[T](len(f), rowLength(f))
	TransposeInto(r, result, f)
	return
}

func rowLength[T constraints.Float](f TensorField[T]) int {
	if len(f) == 0 {
		return 0
	}
	return f[0].RowLength()
}

func checkRowLength[T constraints.Float](op string, src, dst hyper.Tensor[T]) {
	if src.RowLength() != dst.RowLength() {
		panic(fmt.Errorf("%s: result tensor%d for tensor%d: %w",
			op, dst.RowLength(), src.RowLength(), hyper.ErrDimensionMismatch))
	}
}
