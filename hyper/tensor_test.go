package hyper

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomTensor(rng *rand.Rand, n int) (t Tensor[float64]) {
	t = NewTensor[float64](n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t.Set(i, j, rng.Float64()*2-1)
		}
		// Keep it comfortably away from singular
		t.Set(i, i, t.At(i, i)+float64(n))
	}
	return
}

func TestTensorConstruction(t *testing.T) {
	{ // Broadcast fills every component, not only the diagonal
		A := NewTensorFill(3, 2.)
		for _, val := range A.Data() {
			assert.Equal(t, 2., val)
		}
		assert.Equal(t, 9, A.NComponents())
		assert.Equal(t, "tensor3", A.TypeName())
	}
	{
		one := TensorOne[float64](2)
		assert.Equal(t, []float64{1, 1, 1, 1}, one.Data())
		zero := TensorZero[float64](2)
		assert.Equal(t, []float64{0, 0, 0, 0}, zero.Data())
		I := Identity[float64](2)
		assert.Equal(t, []float64{1, 0, 0, 1}, I.Data())
	}
	{ // Constructing from data copies it
		data := []float64{1, 2, 3, 4}
		A := NewTensorFrom(2, data)
		data[0] = 10
		assert.Equal(t, 1., A.At(0, 0))
		assert.Panics(t, func() { NewTensorFrom(2, []float64{1, 2, 3}) })
	}
}

func TestTensorCmpt(t *testing.T) {
	A := NewTensorFrom(3, []float64{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, i*3+j, A.Cmpt(i, j))
			assert.Equal(t, float64(i*3+j), A.At(i, j))
		}
	}
	assert.PanicsWithError(t, "direction out of range (0 2) and (i j) = (3 0)", func() { A.Cmpt(3, 0) })
	assert.PanicsWithError(t, "direction out of range (0 2) and (i j) = (1 5)", func() { A.At(1, 5) })
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, ErrIndexRange)
		}()
		A.Set(-1, 0, 1)
	}()
}

func TestTensorTranspose(t *testing.T) {
	A := NewTensorFrom(3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	assert.Equal(t, []float64{1, 4, 7, 2, 5, 8, 3, 6, 9}, A.T().Data())
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= 8; n++ {
		B := randomTensor(rng, n)
		assert.True(t, B.T().T().Equal(B))
	}
}

func TestTensorNegSumDiag(t *testing.T) {
	A := NewTensorFrom(3, []float64{
		9, 1, 2,
		3, 9, 4,
		5, 6, 9,
	})
	assert.Equal(t, []float64{
		-3, 1, 2,
		3, -7, 4,
		5, 6, -11,
	}, A.NegSumDiag().Data())
	// Row sums of the result vanish
	R := A.NegSumDiag()
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += R.At(i, j)
		}
		assert.Equal(t, 0., sum)
	}
}

func TestTensorProducts(t *testing.T) {
	A := NewTensorFrom(2, []float64{
		1, 2,
		3, 4,
	})
	B := NewTensorFrom(2, []float64{
		5, 6,
		7, 8,
	})
	v := Vector[float64]{1, 2}
	assert.Equal(t, []float64{19, 22, 43, 50}, A.Mul(B).Data())
	assert.Equal(t, Vector[float64]{5, 11}, A.MulVec(v))
	assert.Equal(t, Vector[float64]{7, 10}, v.MulTensor(A))
	{ // Outer product
		v1 := Vector[float64]{1, 2, 3}
		v2 := Vector[float64]{4, 5, 6}
		O := Outer(v1, v2)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.Equal(t, v1[i]*v2[j], O.At(i, j))
			}
		}
	}
	{ // ScaleRow scales along columns
		S := ScaleRow(A, Vector[float64]{10, 100})
		assert.Equal(t, []float64{10, 200, 30, 400}, S.Data())
	}
	{ // Elementwise arithmetic
		assert.Equal(t, []float64{6, 8, 10, 12}, A.Add(B).Data())
		assert.Equal(t, []float64{4, 4, 4, 4}, B.Subtract(A).Data())
		assert.Equal(t, []float64{-1, -2, -3, -4}, A.Negate().Data())
		assert.Equal(t, Vector[float64]{1, 4}, A.Diag())
	}
	{ // Cross check against gonum
		rng := rand.New(rand.NewSource(2))
		C, D := randomTensor(rng, 6), randomTensor(rng, 6)
		var ref mat.Dense
		ref.Mul(C.Dense(), D.Dense())
		got := C.Mul(D)
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				assert.InDeltaf(t, ref.At(i, j), got.At(i, j), 1.e-12, "(%d,%d)", i, j)
			}
		}
	}
	assert.Panics(t, func() { A.Mul(NewTensor[float64](3)) })
	assert.Panics(t, func() { A.MulVec(Vector[float64]{1, 2, 3}) })
}

func TestTensorDivision(t *testing.T) {
	A := NewTensorFrom(2, []float64{
		4, 3,
		6, 3,
	})
	Ainv := Inv(A)
	assert.InDeltaSlice(t, Ainv.Scale(2).Data(), ScalarOverTensor(2., A).Data(), 1.e-14)
	v := Vector[float64]{1, 1}
	assert.InDeltaSlice(t, v.MulTensor(Ainv), VectorOverTensor(v, A), 1.e-14)
	assert.InDeltaSlice(t, Identity[float64](2).Data(), TensorOverTensor(A, A).Data(), 1.e-14)
}

func TestTensorDense(t *testing.T) {
	A := NewTensorFrom(2, []float64{1, 2, 3, 4})
	B, err := TensorFromDense[float64](A.Dense())
	require.NoError(t, err)
	assert.True(t, A.Equal(B))
	_, err = TensorFromDense[float64](mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
