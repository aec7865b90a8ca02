package ldu

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/blockcoupled/coeff"
	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/types"
)

// BlockMatrix is a block coupled matrix of N component cells. A nil Lower
// means the matrix is symmetric and each lower coefficient is the transpose
// of its upper one.
type BlockMatrix[T constraints.Float] struct {
	Addr  *Addressing
	N     int
	Diag  *coeff.CoeffField[T]
	Upper *coeff.CoeffField[T]
	Lower *coeff.CoeffField[T]
}

func NewBlockMatrix[T constraints.Float](addr *Addressing, n int) *BlockMatrix[T] {
	return &BlockMatrix[T]{
		Addr:  addr,
		N:     n,
		Diag:  coeff.NewCoeffField[T](addr.Size, n),
		Upper: coeff.NewCoeffField[T](addr.NFaces(), n),
	}
}

// MakeAsymmetric allocates Lower as a copy of the transposed upper
// coefficients. It does nothing if Lower already exists.
func (m *BlockMatrix[T]) MakeAsymmetric() *coeff.CoeffField[T] {
	if m.Lower == nil {
		m.Lower = m.Upper.Transpose()
	}
	return m.Lower
}

// Transpose returns A^T with copied coefficients. A symmetric matrix keeps
// its upper coefficients, an asymmetric one swaps and transposes both sides.
func (m *BlockMatrix[T]) Transpose() (t *BlockMatrix[T]) {
	t = &BlockMatrix[T]{Addr: m.Addr, N: m.N, Diag: m.Diag.Transpose()}
	if m.Lower == nil {
		t.Upper = m.Upper.Clone()
		return
	}
	t.Upper = m.Lower.Transpose()
	t.Lower = m.Upper.Transpose()
	return
}

func (m *BlockMatrix[T]) Diagonal() bool {
	return m.Upper.ActiveType() == types.Unallocated &&
		(m.Lower == nil || m.Lower.ActiveType() == types.Unallocated)
}

func (m *BlockMatrix[T]) Symmetric() bool { return !m.Diagonal() && m.Lower == nil }

func (m *BlockMatrix[T]) Asymmetric() bool { return !m.Diagonal() && m.Lower != nil }

// LowerMultiplyCell applies the lower coefficient of face f.
func (m *BlockMatrix[T]) LowerMultiplyCell(f int, x hyper.Vector[T]) hyper.Vector[T] {
	if m.Lower == nil {
		return m.Upper.TransposeMultiplyCell(f, x)
	}
	return m.Lower.MultiplyCell(f, x)
}

func (m *BlockMatrix[T]) checkField(op string, x field.VectorField[T]) {
	if len(x) != m.Addr.Size {
		panic(fmt.Errorf("%s: field has %d cells, matrix %d: %w",
			op, len(x), m.Addr.Size, hyper.ErrDimensionMismatch))
	}
}

// Amul returns A x. Rows are independent, each gathers its owner faces
// through the upper coefficients and its neighbour faces through the lower.
func (m *BlockMatrix[T]) Amul(r *field.Runner, x field.VectorField[T]) (y field.VectorField[T]) {
	m.checkField("Amul", x)
	var (
		a         = m.Addr
		offDiag   = !m.Diagonal()
		upperLive = m.Upper.ActiveType() != types.Unallocated
	)
	y = field.NewVectorField[T](a.Size, m.N)
	r.Apply(a.Size, func(kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			yc := y[c]
			copy(yc, m.Diag.MultiplyCell(c, x[c]))
			if !offDiag {
				continue
			}
			if upperLive {
				for f := a.OwnerStart[c]; f < a.OwnerStart[c+1]; f++ {
					addTo(yc, m.Upper.MultiplyCell(f, x[a.Upper[f]]))
				}
			}
			for i := a.LosortStart[c]; i < a.LosortStart[c+1]; i++ {
				f := a.LosortAddr[i]
				addTo(yc, m.LowerMultiplyCell(f, x[a.Lower[f]]))
			}
		}
	})
	return
}

func addTo[T constraints.Float](dst, src hyper.Vector[T]) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// Residual returns b - A x.
func (m *BlockMatrix[T]) Residual(r *field.Runner, x, b field.VectorField[T]) (res field.VectorField[T]) {
	m.checkField("Residual", b)
	res = m.Amul(r, x)
	r.Apply(len(res), func(kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			for i := range res[c] {
				res[c][i] = b[c][i] - res[c][i]
			}
		}
	})
	return
}

// ResidualNorm is the L2 norm of b - A x over every component.
func (m *BlockMatrix[T]) ResidualNorm(r *field.Runner, x, b field.VectorField[T]) float64 {
	return Norm(m.Residual(r, x, b))
}

func Norm[T constraints.Float](x field.VectorField[T]) float64 {
	flat := x.Flatten()
	if len(flat) == 0 {
		return 0
	}
	return floats.Norm(flat, 2)
}

// Assemble expands the matrix into a global CSR matrix of Size*N rows, cell c
// component i on row c*N+i.
func (m *BlockMatrix[T]) Assemble() *sparse.CSR {
	var (
		a   = m.Addr
		n   = m.N
		dim = a.Size * n
		dok = sparse.NewDOK(dim, dim)
	)
	setBlock := func(row, col int, c *coeff.BlockCoeff[T], transpose bool) {
		if c.ActiveType() == types.Unallocated {
			return
		}
		sq := c.Clone().ToSquare()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := sq.At(i, j)
				if transpose {
					v = sq.At(j, i)
				}
				if v != 0 {
					dok.Set(row*n+i, col*n+j, float64(v))
				}
			}
		}
	}
	for c := 0; c < a.Size; c++ {
		setBlock(c, c, m.Diag.Coeff(c), false)
	}
	for f := range a.Lower {
		l, u := a.Lower[f], a.Upper[f]
		setBlock(l, u, m.Upper.Coeff(f), false)
		if m.Lower == nil {
			setBlock(u, l, m.Upper.Coeff(f), true)
		} else {
			setBlock(u, l, m.Lower.Coeff(f), false)
		}
	}
	return dok.ToCSR()
}

// SolveDirect solves the assembled system with gonum's dense LU. A
// mat.Condition error is returned for a near singular matrix.
func (m *BlockMatrix[T]) SolveDirect(b field.VectorField[T]) (x field.VectorField[T], err error) {
	m.checkField("SolveDirect", b)
	var sol mat.VecDense
	if err = sol.SolveVec(mat.DenseCopyOf(m.Assemble()), hyper.Vector[float64](b.Flatten()).VecDense()); err != nil {
		return
	}
	x = field.NewVectorField[T](m.Addr.Size, m.N)
	for c := range x {
		for i := range x[c] {
			x[c][i] = T(sol.AtVec(c*m.N + i))
		}
	}
	return
}
