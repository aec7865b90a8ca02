package field

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/blockcoupled/utils"
)

// Runner spreads per cell work over ParallelDegree goroutines. A nil Runner
// runs serially on the caller's goroutine.
type Runner struct {
	ParallelDegree int
}

// NewRunner uses one goroutine per CPU when degree is not positive.
func NewRunner(degree int) *Runner {
	if degree <= 0 {
		degree = runtime.NumCPU()
	}
	return &Runner{ParallelDegree: degree}
}

type bucketPanic struct {
	bucket int
	value  any
}

func (p *bucketPanic) Error() string {
	return fmt.Sprintf("bucket %d: %v", p.bucket, p.value)
}

// Apply calls fn once per bucket of the cells [0, m). A panic in any bucket is
// raised again on the caller's goroutine once every bucket has returned.
func (r *Runner) Apply(m int, fn func(kMin, kMax int)) {
	if m == 0 {
		return
	}
	degree := 1
	if r != nil {
		degree = r.ParallelDegree
	}
	if degree < 1 || m < degree {
		degree = 1
	}
	if degree == 1 {
		fn(0, m)
		return
	}
	var (
		pm = utils.NewPartitionMap(degree, m)
		g  errgroup.Group
	)
	for n := 0; n < pm.ParallelDegree; n++ {
		bn := n
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = &bucketPanic{bucket: bn, value: p}
				}
			}()
			fn(pm.GetBucketRange(bn))
			return
		})
	}
	if err := g.Wait(); err != nil {
		panic(err.(*bucketPanic).value)
	}
}
