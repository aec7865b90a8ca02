package smoother

import (
	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/ldu"
	"github.com/notargets/blockcoupled/types"
)

// Jacobi updates every cell from the previous iterate with the full inverse
// of its diagonal block, x += inv(D) (b - A x). Cells run on the Runner.
type Jacobi[T constraints.Float] struct {
	m       *ldu.BlockMatrix[T]
	r       *field.Runner
	nSweeps int
	invDiag field.TensorField[T]
	mT      *ldu.BlockMatrix[T]
}

// NewJacobi panics with a *hyper.SingularError when a diagonal block is
// singular.
func NewJacobi[T constraints.Float](m *ldu.BlockMatrix[T], r *field.Runner, nSweeps int) *Jacobi[T] {
	if nSweeps < 1 {
		nSweeps = 1
	}
	d := m.Diag.Clone()
	return &Jacobi[T]{
		m:       m,
		r:       r,
		nSweeps: nSweeps,
		invDiag: field.Inv(r, d.ToSquare()),
	}
}

func (j *Jacobi[T]) Name() string { return types.Jacobi.String() }

func (j *Jacobi[T]) Precondition(x, b field.VectorField[T]) {
	j.relax(j.m, false, x, b)
}

// PreconditionT relaxes A^T x = b with the transposed diagonal inverse.
func (j *Jacobi[T]) PreconditionT(x, b field.VectorField[T]) {
	if j.mT == nil {
		j.mT = j.m.Transpose()
	}
	j.relax(j.mT, true, x, b)
}

func (j *Jacobi[T]) relax(A *ldu.BlockMatrix[T], transpose bool, x, b field.VectorField[T]) {
	for sweep := 0; sweep < j.nSweeps; sweep++ {
		res := A.Residual(j.r, x, b)
		j.r.Apply(len(x), func(kMin, kMax int) {
			for c := kMin; c < kMax; c++ {
				var dx hyper.Vector[T]
				if transpose {
					dx = res[c].MulTensor(j.invDiag[c])
				} else {
					dx = j.invDiag[c].MulVec(res[c])
				}
				for i := range dx {
					x[c][i] += dx[i]
				}
			}
		})
	}
}

var _ TransposeSmoother[float64] = (*Jacobi[float64])(nil)
