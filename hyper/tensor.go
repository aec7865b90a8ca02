package hyper

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

const Rank = 2

// Tensor is an NxN square tensor stored row major, component (i,j) lives at
// flat index i*N + j.
type Tensor[T constraints.Float] struct {
	rowLength int
	v         []T
}

func NewTensor[T constraints.Float](n int) Tensor[T] {
	return Tensor[T]{rowLength: n, v: make([]T, n*n)}
}

// NewTensorFill sets every one of the N*N components to val. This is not an
// identity-like construction, see expand.ExpandScalarTensor for that.
func NewTensorFill[T constraints.Float](n int, val T) (t Tensor[T]) {
	t = NewTensor[T](n)
	for i := range t.v {
		t.v[i] = val
	}
	return
}

func NewTensorFrom[T constraints.Float](n int, data []T) (t Tensor[T]) {
	if len(data) != n*n {
		panic(fmt.Errorf("NewTensorFrom: tensor%d needs %d components, got %d: %w",
			n, n*n, len(data), ErrDimensionMismatch))
	}
	t = NewTensor[T](n)
	copy(t.v, data)
	return
}

func TensorZero[T constraints.Float](n int) Tensor[T] { return NewTensor[T](n) }
func TensorOne[T constraints.Float](n int) Tensor[T]  { return NewTensorFill[T](n, 1) }

func Identity[T constraints.Float](n int) (t Tensor[T]) {
	t = NewTensor[T](n)
	for i := 0; i < n; i++ {
		t.v[i*n+i] = 1
	}
	return
}

// TensorFromDense copies a square gonum matrix.
func TensorFromDense[T constraints.Float](m mat.Matrix) (t Tensor[T], err error) {
	nr, nc := m.Dims()
	if nr != nc {
		err = fmt.Errorf("TensorFromDense: %dx%d is not square: %w", nr, nc, ErrDimensionMismatch)
		return
	}
	t = NewTensor[T](nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			t.v[i*nr+j] = T(m.At(i, j))
		}
	}
	return
}

func (t Tensor[T]) RowLength() int    { return t.rowLength }
func (t Tensor[T]) NComponents() int  { return len(t.v) }
func (t Tensor[T]) TypeName() string  { return "tensor" + strconv.Itoa(t.rowLength) }
func (t Tensor[T]) Component(d int) T { return t.v[d] }

// Data exposes the row major storage, writes go through to the tensor.
func (t Tensor[T]) Data() []T { return t.v }

// Cmpt returns the flat index of component (i, j).
func (t Tensor[T]) Cmpt(i, j int) int {
	if i < 0 || j < 0 || i > t.rowLength-1 || j > t.rowLength-1 {
		panic(&IndexError{RowLength: t.rowLength, I: i, J: j})
	}
	return i*t.rowLength + j
}

func (t Tensor[T]) At(i, j int) T { return t.v[t.Cmpt(i, j)] }

func (t Tensor[T]) Set(i, j int, val T) { t.v[t.Cmpt(i, j)] = val }

func (t Tensor[T]) Copy() Tensor[T] { return NewTensorFrom(t.rowLength, t.v) }

// T returns the transpose.
func (t Tensor[T]) T() (r Tensor[T]) {
	n := t.rowLength
	r = NewTensor[T](n)
	var i int
	for row := 0; row < n; row++ {
		j := row
		for col := 0; col < n; col++ {
			r.v[i] = t.v[j]
			i++
			j += n
		}
	}
	return
}

// NegSumDiag keeps the off-diagonal components and sets each diagonal to
// the negative sum of the off-diagonals in its row.
func (t Tensor[T]) NegSumDiag() (r Tensor[T]) {
	n := t.rowLength
	r = NewTensor[T](n)
	var k int
	for i := 0; i < n; i++ {
		diagI := i * (n + 1)
		for j := 0; j < n; j++ {
			if k != diagI {
				r.v[k] = t.v[k]
				r.v[diagI] -= t.v[k]
			}
			k++
		}
	}
	return
}

func (t Tensor[T]) Diag() (r Vector[T]) {
	n := t.rowLength
	r = make(Vector[T], n)
	for i := 0; i < n; i++ {
		r[i] = t.v[i*(n+1)]
	}
	return
}

// Mul is the tensor-tensor inner product t & u.
func (t Tensor[T]) Mul(u Tensor[T]) (r Tensor[T]) {
	n := t.rowLength
	if u.rowLength != n {
		mismatch("Tensor.Mul", n, u.rowLength)
	}
	r = NewTensor[T](n)
	var i, j int
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			m, k := j, col
			for row2 := 0; row2 < n; row2++ {
				r.v[i] += t.v[m] * u.v[k]
				m++
				k += n
			}
			i++
		}
		j += n
	}
	return
}

// MulVec is the tensor-vector inner product t & v.
func (t Tensor[T]) MulVec(v Vector[T]) (r Vector[T]) {
	n := t.rowLength
	if len(v) != n {
		mismatch("Tensor.MulVec", n, len(v))
	}
	r = make(Vector[T], n)
	var i int
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			r[row] += t.v[i] * v[col]
			i++
		}
	}
	return
}

func (t Tensor[T]) Add(u Tensor[T]) (r Tensor[T]) {
	if u.rowLength != t.rowLength {
		mismatch("Tensor.Add", t.rowLength, u.rowLength)
	}
	r = NewTensor[T](t.rowLength)
	for i := range t.v {
		r.v[i] = t.v[i] + u.v[i]
	}
	return
}

func (t Tensor[T]) Subtract(u Tensor[T]) (r Tensor[T]) {
	if u.rowLength != t.rowLength {
		mismatch("Tensor.Subtract", t.rowLength, u.rowLength)
	}
	r = NewTensor[T](t.rowLength)
	for i := range t.v {
		r.v[i] = t.v[i] - u.v[i]
	}
	return
}

func (t Tensor[T]) Scale(s T) (r Tensor[T]) {
	r = NewTensor[T](t.rowLength)
	for i := range t.v {
		r.v[i] = s * t.v[i]
	}
	return
}

func (t Tensor[T]) Negate() Tensor[T] { return t.Scale(-1) }

func (t Tensor[T]) Equal(u Tensor[T]) bool {
	if t.rowLength != u.rowLength {
		return false
	}
	for i := range t.v {
		if t.v[i] != u.v[i] {
			return false
		}
	}
	return true
}

func (t Tensor[T]) Dense() *mat.Dense {
	data := make([]float64, len(t.v))
	for i, val := range t.v {
		data[i] = float64(val)
	}
	return mat.NewDense(t.rowLength, t.rowLength, data)
}

func (t Tensor[T]) String() string {
	buf := bytes.Buffer{}
	writeComponents(&buf, t.v)
	return buf.String()
}

// Outer is the outer product, result(i,j) = v1[i]*v2[j].
func Outer[T constraints.Float](v1, v2 Vector[T]) (r Tensor[T]) {
	n := len(v1)
	if len(v2) != n {
		mismatch("Outer", n, len(v2))
	}
	r = NewTensor[T](n)
	var i int
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			r.v[i] = v1[row] * v2[col]
			i++
		}
	}
	return
}

// ScaleRow multiplies each row of t elementwise by v, result(i,j) = t(i,j)*v[j].
func ScaleRow[T constraints.Float](t Tensor[T], v Vector[T]) (r Tensor[T]) {
	n := t.rowLength
	if len(v) != n {
		mismatch("ScaleRow", n, len(v))
	}
	r = NewTensor[T](n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r.v[i*n+j] = t.v[i*n+j] * v[j]
		}
	}
	return
}

// ScalarOverTensor is s / t, defined as s*inv(t).
func ScalarOverTensor[T constraints.Float](s T, t Tensor[T]) Tensor[T] {
	return Inv(t).Scale(s)
}

// VectorOverTensor is v / t, defined as v & inv(t).
func VectorOverTensor[T constraints.Float](v Vector[T], t Tensor[T]) Vector[T] {
	return v.MulTensor(Inv(t))
}

// TensorOverTensor is t1 / t2, defined as t1 & inv(t2).
func TensorOverTensor[T constraints.Float](t1, t2 Tensor[T]) Tensor[T] {
	return t1.Mul(Inv(t2))
}
