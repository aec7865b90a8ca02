package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/blockcoupled/InputParameters"
	"github.com/notargets/blockcoupled/hyper"
	"github.com/notargets/blockcoupled/utils"
)

func TestRunSmooth(t *testing.T) {
	for _, name := range []string{"gaussSeidel", "jacobi", "cholesky"} {
		cp := &InputParameters.CaseParameters{}
		require.NoError(t, cp.Parse([]byte(exampleCase)))
		cp.Smoother = name
		cp.ParallelDegree = 2
		var buf bytes.Buffer
		perf, err := RunSmooth(context.Background(), &buf, cp, utils.NoopLogger(), true)
		require.NoError(t, err)
		assert.Truef(t, perf.Converged, "%s: %s", name, perf)
		assert.Less(t, perf.FinalResidual, 1.e-8)
		out := buf.String()
		assert.Contains(t, out, "\"Coupled chain\"")
		assert.Contains(t, out, "= DiagBlocks[0]")
		assert.Contains(t, out, name+": Initial residual = 1")
		require.Contains(t, out, "max error = ")
		var maxErr float64
		_, err = fmt.Sscanf(out[strings.Index(out, "max error = "):], "max error = %e", &maxErr)
		require.NoError(t, err)
		assert.Less(t, maxErr, 1.e-5)
	}
	{ // Without the check no direct solve is reported
		cp := &InputParameters.CaseParameters{}
		require.NoError(t, cp.Parse([]byte(exampleCase)))
		var buf bytes.Buffer
		_, err := RunSmooth(context.Background(), &buf, cp, nil, false)
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "Direct solve")
	}
}

func TestRunInvert(t *testing.T) {
	{
		var buf bytes.Buffer
		require.NoError(t, RunInvert(&buf, strings.NewReader("(4 2 2 2)"), 2))
		out := buf.String()
		assert.Contains(t, out, "tensor2 = (4 2 2 2)")
		assert.Contains(t, out, "det = 4")
		assert.Contains(t, out, "diag = (4 2)")
		assert.Contains(t, out, "sumToDiag = (6 4)")
		assert.Contains(t, out, "inv = (0.5 -0.5 -0.5 1)")
		// Eigenvalues 3 +- sqrt(5)
		assert.Contains(t, out, "cond = 6.854, max |inv - gonum inv| = ")
	}
	{
		var buf bytes.Buffer
		err := RunInvert(&buf, strings.NewReader("1 1 1 1"), 2)
		assert.ErrorIs(t, err, hyper.ErrSingular)
		assert.Contains(t, buf.String(), "det = 0")
	}
	assert.ErrorIs(t, RunInvert(&bytes.Buffer{}, strings.NewReader("1 2 3"), 2), hyper.ErrStream)
	assert.Error(t, RunInvert(&bytes.Buffer{}, strings.NewReader(""), 0))
}
