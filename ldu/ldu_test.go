package ldu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/blockcoupled/coeff"
	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/hyper"
)

func TestAddressing(t *testing.T) {
	{
		a, err := NewAddressing(4, []int{0, 1, 2}, []int{3, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 3, a.NFaces())
		assert.Equal(t, []int{0, 1, 2, 3, 3}, a.OwnerStart)
		assert.Equal(t, []int{1, 0, 2}, a.LosortAddr)
		assert.Equal(t, []int{0, 0, 0, 1, 3}, a.LosortStart)
	}
	{
		a := ChainAddressing(4)
		assert.Equal(t, []int{0, 1, 2}, a.Lower)
		assert.Equal(t, []int{1, 2, 3}, a.Upper)
		assert.Equal(t, []int{0, 1, 2, 3, 3}, a.OwnerStart)
		assert.Equal(t, []int{0, 0, 1, 2, 3}, a.LosortStart)
		assert.Equal(t, 0, ChainAddressing(1).NFaces())
	}
	{ // Rejected layouts
		for _, tc := range []struct {
			lower, upper []int
		}{
			{[]int{0, 1}, []int{1}},
			{[]int{0}, []int{4}},
			{[]int{-1}, []int{1}},
			{[]int{1}, []int{1}},
			{[]int{2}, []int{1}},
			{[]int{1, 0}, []int{2, 1}},
		} {
			_, err := NewAddressing(4, tc.lower, tc.upper)
			assert.ErrorIsf(t, err, ErrBadAddressing, "%v %v", tc.lower, tc.upper)
		}
	}
}

func randomTensor(rng *rand.Rand, n int, shift float64) hyper.Tensor[float64] {
	A := hyper.NewTensor[float64](n)
	data := A.Data()
	for i := range data {
		data[i] = rng.Float64() - 0.5
	}
	for i := 0; i < n; i++ {
		A.Set(i, i, A.At(i, i)+shift)
	}
	return A
}

func randomField(rng *rand.Rand, m, n int) (x field.VectorField[float64]) {
	x = field.NewVectorField[float64](m, n)
	for _, v := range x {
		for i := range v {
			v[i] = rng.Float64() - 0.5
		}
	}
	return
}

// testMatrix couples a 2x3 grid of cells with square diagonal and linear
// upper coefficients.
func testMatrix(rng *rand.Rand, n int, asymmetric bool) *BlockMatrix[float64] {
	a, err := NewAddressing(6,
		[]int{0, 0, 1, 1, 2, 3, 4},
		[]int{1, 3, 2, 4, 5, 4, 5})
	if err != nil {
		panic(err)
	}
	m := NewBlockMatrix[float64](a, n)
	for c := 0; c < a.Size; c++ {
		m.Diag.SetCoeff(c, coeff.NewSquareCoeff(randomTensor(rng, n, 4)))
	}
	for f := 0; f < a.NFaces(); f++ {
		v := hyper.NewVector[float64](n)
		for i := range v {
			v[i] = -rng.Float64()
		}
		m.Upper.SetCoeff(f, coeff.NewLinearCoeff(v))
	}
	if asymmetric {
		lower := m.MakeAsymmetric()
		lower.ToSquare()
		for f := 0; f < a.NFaces(); f++ {
			lower.SetCoeff(f, coeff.NewSquareCoeff(randomTensor(rng, n, 0)))
		}
	}
	return m
}

func flatMul(A mat.Matrix, x field.VectorField[float64]) []float64 {
	var y mat.VecDense
	y.MulVec(A, mat.NewVecDense(len(x)*len(x[0]), x.Flatten()))
	return y.RawVector().Data
}

func TestAmulMatchesAssembly(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{1, 2, 3} {
		for _, asymmetric := range []bool{false, true} {
			m := testMatrix(rng, n, asymmetric)
			assert.Equal(t, asymmetric, m.Asymmetric())
			assert.Equal(t, !asymmetric, m.Symmetric())
			x := randomField(rng, m.Addr.Size, n)
			A := m.Assemble()
			rows, cols := A.Dims()
			assert.Equal(t, 6*n, rows)
			assert.Equal(t, 6*n, cols)
			want := flatMul(A, x)
			for _, r := range []*field.Runner{nil, field.NewRunner(3)} {
				assert.InDeltaSlicef(t, want, m.Amul(r, x).Flatten(), 1.e-13, "n=%d asym=%v", n, asymmetric)
			}
		}
	}
}

func TestSymmetricAssembly(t *testing.T) {
	m := NewBlockMatrix[float64](ChainAddressing(3), 2)
	m.Diag.ToScalar()
	for c := 0; c < 3; c++ {
		m.Diag.SetCoeff(c, coeff.NewScalarCoeff(2, 4.))
	}
	m.Upper.SetCoeff(0, coeff.NewSquareCoeff(hyper.NewTensorFrom(2, []float64{
		1, 2,
		3, 4,
	})))
	A := m.Assemble()
	// Upper block at rows of cell 0, columns of cell 1
	assert.Equal(t, 2., A.At(0, 3))
	assert.Equal(t, 3., A.At(1, 2))
	// Lower block is its transpose
	assert.Equal(t, 3., A.At(2, 1))
	assert.Equal(t, 2., A.At(3, 0))
	assert.Equal(t, 4., A.At(5, 5))
	assert.Equal(t, 0., A.At(4, 0))
	// Transposed lower blocks keep the global matrix symmetric
	assert.True(t, mat.EqualApprox(A, A.T(), 0))
}

func TestDiagonalAndResidual(t *testing.T) {
	m := NewBlockMatrix[float64](ChainAddressing(3), 2)
	assert.True(t, m.Diagonal())
	assert.False(t, m.Symmetric())
	lin := m.Diag.ToLinear()
	for c := range lin {
		lin[c][0], lin[c][1] = 2, 4
	}
	x := field.VectorField[float64]{{1, 1}, {2, 2}, {3, 3}}
	assert.Equal(t, field.VectorField[float64]{{2, 4}, {4, 8}, {6, 12}}, m.Amul(nil, x))
	b := field.VectorField[float64]{{2, 4}, {4, 8}, {6, 12}}
	assert.Equal(t, 0., m.ResidualNorm(nil, x, b))
	b[0][0] = 5
	assert.Equal(t, field.VectorField[float64]{{3, 0}, {0, 0}, {0, 0}}, m.Residual(nil, x, b))
	assert.Equal(t, 3., m.ResidualNorm(field.NewRunner(2), x, b))
	assert.Equal(t, 0., Norm(field.VectorField[float64]{}))
	assert.Panics(t, func() { m.Amul(nil, x[:2]) })
}

func TestTranspose(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, asymmetric := range []bool{false, true} {
		m := testMatrix(rng, 3, asymmetric)
		before := m.Assemble()
		mT := m.Transpose()
		assert.Equal(t, asymmetric, mT.Asymmetric())
		assert.Truef(t, mat.EqualApprox(mT.Assemble(), before.T(), 0), "asym=%v", asymmetric)
		// Coefficients are copied
		mT.Diag.Negate()
		assert.True(t, mat.EqualApprox(m.Assemble(), before, 0))
	}
}

func TestSolveDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, asymmetric := range []bool{false, true} {
		m := testMatrix(rng, 2, asymmetric)
		b := randomField(rng, m.Addr.Size, 2)
		x, err := m.SolveDirect(b)
		require.NoError(t, err)
		assert.InDeltaSlice(t, b.Flatten(), m.Amul(nil, x).Flatten(), 1.e-12)
		assert.Less(t, m.ResidualNorm(nil, x, b), 1.e-12)
	}
	{
		m := NewBlockMatrix[float64](ChainAddressing(2), 1)
		m.Diag.ToScalar()
		_, err := m.SolveDirect(field.NewVectorField[float64](2, 1))
		assert.Error(t, err)
	}
}
