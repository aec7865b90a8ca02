package hyper

import (
	"bytes"
	"math"
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// Vector is an N component vector with N fixed at construction. All
// arithmetic preserves N, mixing lengths is a contract violation.
type Vector[T constraints.Float] []T

func NewVector[T constraints.Float](n int) Vector[T] {
	return make(Vector[T], n)
}

// NewVectorFill broadcasts val into all n components.
func NewVectorFill[T constraints.Float](n int, val T) (v Vector[T]) {
	v = make(Vector[T], n)
	for i := range v {
		v[i] = val
	}
	return
}

func NewVectorFrom[T constraints.Float](data []T) (v Vector[T]) {
	v = make(Vector[T], len(data))
	copy(v, data)
	return
}

func VectorZero[T constraints.Float](n int) Vector[T] { return NewVector[T](n) }
func VectorOne[T constraints.Float](n int) Vector[T]  { return NewVectorFill[T](n, 1) }
func VectorMax[T constraints.Float](n int) Vector[T]  { return NewVectorFill(n, VGreat[T]()) }
func VectorMin[T constraints.Float](n int) Vector[T]  { return NewVectorFill(n, -VGreat[T]()) }

// VGreat is the "practically infinite" finite sentinel for the component type.
func VGreat[T constraints.Float]() T {
	var (
		x              T
		single, double = 1.0e37, 1.0e300
	)
	if unsafe.Sizeof(x) == 4 {
		return T(single)
	}
	return T(double)
}

func (v Vector[T]) Len() int { return len(v) }

func (v Vector[T]) TypeName() string { return "vector" + strconv.Itoa(len(v)) }

func (v Vector[T]) At(i int) T { return v[i] }

func (v Vector[T]) Set(i int, val T) { v[i] = val }

func (v Vector[T]) Component(d int) T { return v[d] }

func (v Vector[T]) Copy() Vector[T] { return NewVectorFrom(v) }

// Dot is the inner product, sum of v[i]*w[i].
func (v Vector[T]) Dot(w Vector[T]) (r T) {
	if len(v) != len(w) {
		mismatch("Vector.Dot", len(v), len(w))
	}
	for i := range v {
		r += v[i] * w[i]
	}
	return
}

func (v Vector[T]) Add(w Vector[T]) (r Vector[T]) {
	if len(v) != len(w) {
		mismatch("Vector.Add", len(v), len(w))
	}
	r = make(Vector[T], len(v))
	for i := range v {
		r[i] = v[i] + w[i]
	}
	return
}

func (v Vector[T]) Subtract(w Vector[T]) (r Vector[T]) {
	if len(v) != len(w) {
		mismatch("Vector.Subtract", len(v), len(w))
	}
	r = make(Vector[T], len(v))
	for i := range v {
		r[i] = v[i] - w[i]
	}
	return
}

func (v Vector[T]) Scale(s T) (r Vector[T]) {
	r = make(Vector[T], len(v))
	for i := range v {
		r[i] = s * v[i]
	}
	return
}

func (v Vector[T]) Negate() Vector[T] { return v.Scale(-1) }

func (v Vector[T]) CmptSum() (s T) {
	for _, val := range v {
		s += val
	}
	return
}

func (v Vector[T]) CmptMag() (r Vector[T]) {
	r = make(Vector[T], len(v))
	for i, val := range v {
		r[i] = T(math.Abs(float64(val)))
	}
	return
}

// MulTensor is the vector-tensor inner product v & t.
func (v Vector[T]) MulTensor(t Tensor[T]) (r Vector[T]) {
	n := t.rowLength
	if len(v) != n {
		mismatch("Vector.MulTensor", len(v), n)
	}
	r = make(Vector[T], n)
	for col := 0; col < n; col++ {
		j := col
		for row := 0; row < n; row++ {
			r[col] += v[row] * t.v[j]
			j += n
		}
	}
	return
}

func (v Vector[T]) Equal(w Vector[T]) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}

func (v Vector[T]) VecDense() *mat.VecDense {
	data := make([]float64, len(v))
	for i, val := range v {
		data[i] = float64(val)
	}
	return mat.NewVecDense(len(v), data)
}

func (v Vector[T]) String() string {
	buf := bytes.Buffer{}
	writeComponents(&buf, v)
	return buf.String()
}

func CmptMultiply[T constraints.Float](a, b Vector[T]) (r Vector[T]) {
	if len(a) != len(b) {
		mismatch("CmptMultiply", len(a), len(b))
	}
	r = make(Vector[T], len(a))
	for i := range a {
		r[i] = a[i] * b[i]
	}
	return
}

func CmptDivide[T constraints.Float](a, b Vector[T]) (r Vector[T]) {
	if len(a) != len(b) {
		mismatch("CmptDivide", len(a), len(b))
	}
	r = make(Vector[T], len(a))
	for i := range a {
		r[i] = a[i] / b[i]
	}
	return
}

// ScalarOverVector divides s by each component, s / v[i].
func ScalarOverVector[T constraints.Float](s T, v Vector[T]) (r Vector[T]) {
	r = make(Vector[T], len(v))
	for i := range v {
		r[i] = s / v[i]
	}
	return
}
