// Package expand converts block coefficients between their three shapes:
// full tensor, diagonal (linear) vector and scalar. Every conversion has an
// Into form that writes a caller supplied result and a value form built on it.
package expand

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/hyper"
)

func checkLen(op string, want, got int) {
	if want != got {
		panic(fmt.Errorf("%s: result has %d components, want %d: %w",
			op, got, want, hyper.ErrDimensionMismatch))
	}
}

// ContractScalarVectorInto stores the average of the components in result.
func ContractScalarVectorInto[T constraints.Float](result *T, v hyper.Vector[T]) {
	*result = v.CmptSum() / T(len(v))
}

func ContractScalarVector[T constraints.Float](v hyper.Vector[T]) (result T) {
	ContractScalarVectorInto(&result, v)
	return
}

// ContractScalarTensorInto stores the average of the diagonal in result. The
// divisor is the row length, not the component count.
func ContractScalarTensorInto[T constraints.Float](result *T, t hyper.Tensor[T]) {
	var (
		n   = t.RowLength()
		sum T
	)
	for i := 0; i < n; i++ {
		sum += t.At(i, i)
	}
	*result = sum / T(n)
}

func ContractScalarTensor[T constraints.Float](t hyper.Tensor[T]) (result T) {
	ContractScalarTensorInto(&result, t)
	return
}

// ContractLinearInto extracts the diagonal.
func ContractLinearInto[T constraints.Float](result hyper.Vector[T], t hyper.Tensor[T]) {
	n := t.RowLength()
	checkLen("ContractLinear", n, len(result))
	for i := 0; i < n; i++ {
		result[i] = t.At(i, i)
	}
}

func ContractLinear[T constraints.Float](t hyper.Tensor[T]) (result hyper.Vector[T]) {
	result = hyper.NewVector[T](t.RowLength())
	ContractLinearInto(result, t)
	return
}

// ExpandScalarVectorInto broadcasts s to every component.
func ExpandScalarVectorInto[T constraints.Float](result hyper.Vector[T], s T) {
	for i := range result {
		result[i] = s
	}
}

func ExpandScalarVector[T constraints.Float](n int, s T) (result hyper.Vector[T]) {
	result = hyper.NewVector[T](n)
	ExpandScalarVectorInto(result, s)
	return
}

// ExpandScalarTensorInto zeroes result and places s on the diagonal only.
func ExpandScalarTensorInto[T constraints.Float](result hyper.Tensor[T], s T) {
	data := result.Data()
	for i := range data {
		data[i] = 0
	}
	for i := 0; i < result.RowLength(); i++ {
		result.Set(i, i, s)
	}
}

func ExpandScalarTensor[T constraints.Float](n int, s T) (result hyper.Tensor[T]) {
	result = hyper.NewTensor[T](n)
	ExpandScalarTensorInto(result, s)
	return
}

// ExpandLinearInto zeroes result and embeds v on the diagonal.
func ExpandLinearInto[T constraints.Float](result hyper.Tensor[T], v hyper.Vector[T]) {
	n := result.RowLength()
	checkLen("ExpandLinear", n, len(v))
	data := result.Data()
	for i := range data {
		data[i] = 0
	}
	for i := 0; i < n; i++ {
		result.Set(i, i, v[i])
	}
}

func ExpandLinear[T constraints.Float](v hyper.Vector[T]) (result hyper.Tensor[T]) {
	result = hyper.NewTensor[T](len(v))
	ExpandLinearInto(result, v)
	return
}

// SumToDiagInto stores the row sums.
func SumToDiagInto[T constraints.Float](result hyper.Vector[T], t hyper.Tensor[T]) {
	n := t.RowLength()
	checkLen("SumToDiag", n, len(result))
	data := t.Data()
	for i := 0; i < n; i++ {
		var sum T
		for j := 0; j < n; j++ {
			sum += data[i*n+j]
		}
		result[i] = sum
	}
}

func SumToDiag[T constraints.Float](t hyper.Tensor[T]) (result hyper.Vector[T]) {
	result = hyper.NewVector[T](t.RowLength())
	SumToDiagInto(result, t)
	return
}

// SumMagToDiagInto stores the row sums of component magnitudes.
func SumMagToDiagInto[T constraints.Float](result hyper.Vector[T], t hyper.Tensor[T]) {
	n := t.RowLength()
	checkLen("SumMagToDiag", n, len(result))
	data := t.Data()
	for i := 0; i < n; i++ {
		var sum T
		for j := 0; j < n; j++ {
			sum += T(math.Abs(float64(data[i*n+j])))
		}
		result[i] = sum
	}
}

func SumMagToDiag[T constraints.Float](t hyper.Tensor[T]) (result hyper.Vector[T]) {
	result = hyper.NewVector[T](t.RowLength())
	SumMagToDiagInto(result, t)
	return
}
