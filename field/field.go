// Package field applies the tensor kernels over every cell of a mesh sized
// batch. There is no coupling between cells.
package field

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/hyper"
)

type ScalarField[T constraints.Float] []T

type VectorField[T constraints.Float] []hyper.Vector[T]

type TensorField[T constraints.Float] []hyper.Tensor[T]

func NewScalarField[T constraints.Float](m int) ScalarField[T] {
	return make(ScalarField[T], m)
}

func NewVectorField[T constraints.Float](m, n int) (f VectorField[T]) {
	f = make(VectorField[T], m)
	for k := range f {
		f[k] = hyper.NewVector[T](n)
	}
	return
}

func NewTensorField[T constraints.Float](m, n int) (f TensorField[T]) {
	f = make(TensorField[T], m)
	for k := range f {
		f[k] = hyper.NewTensor[T](n)
	}
	return
}

func checkSize(op string, want, got int) {
	if want != got {
		panic(fmt.Errorf("%s: result field has %d cells, want %d: %w",
			op, got, want, hyper.ErrDimensionMismatch))
	}
}

func (f ScalarField[T]) Copy() ScalarField[T] {
	return append(ScalarField[T](nil), f...)
}

func (f VectorField[T]) Copy() (r VectorField[T]) {
	r = make(VectorField[T], len(f))
	for k, v := range f {
		r[k] = v.Copy()
	}
	return
}

func (f VectorField[T]) Negate() (r VectorField[T]) {
	r = make(VectorField[T], len(f))
	for k, v := range f {
		r[k] = v.Negate()
	}
	return
}

// Zero clears every cell in place.
func (f VectorField[T]) Zero() {
	for _, v := range f {
		for i := range v {
			v[i] = 0
		}
	}
}

// Flatten returns the cells back to back as float64.
func (f VectorField[T]) Flatten() (r []float64) {
	if len(f) == 0 {
		return
	}
	r = make([]float64, 0, len(f)*len(f[0]))
	for _, v := range f {
		for _, x := range v {
			r = append(r, float64(x))
		}
	}
	return
}

func (f TensorField[T]) Copy() (r TensorField[T]) {
	r = make(TensorField[T], len(f))
	for k, t := range f {
		r[k] = t.Copy()
	}
	return
}

func (f TensorField[T]) Negate() (r TensorField[T]) {
	r = make(TensorField[T], len(f))
	for k, t := range f {
		r[k] = t.Negate()
	}
	return
}

func (f TensorField[T]) Flatten() (r []float64) {
	if len(f) == 0 {
		return
	}
	r = make([]float64, 0, len(f)*f[0].NComponents())
	for _, t := range f {
		for _, x := range t.Data() {
			r = append(r, float64(x))
		}
	}
	return
}
