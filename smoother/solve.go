package smoother

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/ldu"
	"github.com/notargets/blockcoupled/utils"
)

var ErrDiverged = errors.New("solution diverged")

type Controls struct {
	Tolerance     float64
	MaxIterations int
	Runner        *field.Runner
	Logger        *utils.Logger
}

type Performance struct {
	InitialResidual, FinalResidual float64
	Iterations                     int
	Converged                      bool
}

func (p Performance) String() string {
	return fmt.Sprintf("Initial residual = %g, Final residual = %g, No Iterations %d, Converged %v",
		p.InitialResidual, p.FinalResidual, p.Iterations, p.Converged)
}

// Solve applies s until the residual |b - A x| / |b| drops below the
// tolerance or MaxIterations is reached. The context is checked between
// iterations.
func Solve[T constraints.Float](ctx context.Context, s Smoother[T], m *ldu.BlockMatrix[T],
	x, b field.VectorField[T], ctl Controls) (perf Performance, err error) {
	log := ctl.Logger
	if log == nil {
		log = utils.NoopLogger()
	}
	log = log.WithSolver(s.Name()).WithComponents(m.N)
	normFactor := ldu.Norm(b)
	if normFactor == 0 {
		normFactor = 1
	}
	residual := func() float64 {
		return m.ResidualNorm(ctl.Runner, x, b) / normFactor
	}
	perf.InitialResidual = residual()
	perf.FinalResidual = perf.InitialResidual
	defer func() {
		log.LogSolve(perf.Iterations, perf.InitialResidual, perf.FinalResidual, perf.Converged, err)
	}()
	if utils.IsNan(perf.InitialResidual) {
		err = fmt.Errorf("initial residual: %w", ErrDiverged)
		return
	}
	if perf.InitialResidual < ctl.Tolerance {
		perf.Converged = true
		return
	}
	for perf.Iterations < ctl.MaxIterations {
		if err = ctx.Err(); err != nil {
			return
		}
		s.Precondition(x, b)
		perf.Iterations++
		perf.FinalResidual = residual()
		log.LogIteration(perf.Iterations, perf.FinalResidual)
		if utils.IsNan(perf.FinalResidual) {
			err = fmt.Errorf("iteration %d: %w", perf.Iterations, ErrDiverged)
			return
		}
		if perf.FinalResidual < ctl.Tolerance {
			perf.Converged = true
			return
		}
	}
	return
}
