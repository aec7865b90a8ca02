/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/blockcoupled/InputParameters"
	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/ldu"
	"github.com/notargets/blockcoupled/smoother"
	"github.com/notargets/blockcoupled/types"
	"github.com/notargets/blockcoupled/utils"
)

type SmoothRun struct {
	CaseFile string
	Smoother string
	Sweeps   int
	Profile  string
	Perf     bool
	Check    bool
}

var exampleCase = `
########################################
Title: "Coupled chain"
Components: 3
Cells: 100
Diag: [4, 0.1, 0, 0.1, 4, 0.1, 0, 0.1, 4] # 1, Components or Components^2 values
DiagBlocks: # optional full tensor per cell
  - Cell: 0
    Block: [5, 0.2, 0, 0.2, 5, 0.2, 0, 0.2, 5]
Upper: [-1, -1, -1]
Source: [1, 2, 3]
Smoother: gaussSeidel # jacobi or cholesky
Sweeps: 1
MaxIterations: 1000
Tolerance: 1.e-8
########################################
`

// SmoothCmd represents the smooth command
var SmoothCmd = &cobra.Command{
	Use:   "smooth",
	Short: "Relax a block coupled system read from a YAML case file",
	Long: `Builds a block coupled ldu matrix from a case file and relaxes it with
block Gauss-Seidel or block Jacobi until the normalised residual falls below
the tolerance`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		sr := &SmoothRun{}
		if sr.CaseFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		sr.Smoother, _ = cmd.Flags().GetString("smoother")
		sr.Sweeps, _ = cmd.Flags().GetInt("sweeps")
		sr.Profile, _ = cmd.Flags().GetString("profile")
		sr.Perf, _ = cmd.Flags().GetBool("perf")
		sr.Check, _ = cmd.Flags().GetBool("check")
		if len(sr.CaseFile) == 0 {
			fmt.Printf("Example File:%s\n", exampleCase)
			return fmt.Errorf("must supply a case file (-I, --inputConditionsFile)")
		}
		var data []byte
		if data, err = os.ReadFile(sr.CaseFile); err != nil {
			return
		}
		cp := &InputParameters.CaseParameters{}
		if err = cp.Parse(data); err != nil {
			return
		}
		if sr.Smoother != "" {
			cp.Smoother = sr.Smoother
		}
		if sr.Sweeps != 0 {
			cp.Sweeps = sr.Sweeps
		}
		if cmd.Flags().Changed("parallelDegree") || cp.ParallelDegree == 0 {
			cp.ParallelDegree = newRunner().ParallelDegree
		}
		var log *utils.Logger
		if log, err = newLogger(); err != nil {
			return
		}
		switch strings.ToLower(sr.Profile) {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		default:
			return fmt.Errorf("unknown profile %q, want cpu or mem", sr.Profile)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		solve := func() error {
			_, err := RunSmooth(ctx, os.Stdout, cp, log, sr.Check)
			return err
		}
		if !sr.Perf {
			return solve()
		}
		var instructions uint64
		if instructions, err = countInstructions(solve); err != nil {
			return
		}
		fmt.Printf("CPU instructions = %d\n", instructions)
		return
	},
}

func init() {
	rootCmd.AddCommand(SmoothCmd)
	SmoothCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file with the matrix coefficients, source and solver controls")
	SmoothCmd.Flags().StringP("smoother", "s", "", "override the case smoother: gaussSeidel or jacobi")
	SmoothCmd.Flags().IntP("sweeps", "n", 0, "override the number of sweeps per iteration")
	SmoothCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	SmoothCmd.Flags().Bool("perf", false, "count CPU instructions spent in the solve (linux only)")
	SmoothCmd.Flags().Bool("check", false, "compare with a direct solve of the assembled sparse matrix")
}

// RunSmooth builds the case, relaxes it from a zero initial guess and writes a
// report to w. With check set the result is compared to a direct solve.
func RunSmooth(ctx context.Context, w io.Writer, cp *InputParameters.CaseParameters,
	log *utils.Logger, check bool) (perf smoother.Performance, err error) {
	var (
		m  *ldu.BlockMatrix[float64]
		b  field.VectorField[float64]
		st types.SmootherType
		s  smoother.Smoother[float64]
		r  = field.NewRunner(cp.ParallelDegree)
	)
	if m, b, err = cp.Build(); err != nil {
		return
	}
	if st, err = cp.SmootherType(); err != nil {
		return
	}
	cp.Print(w)
	switch st {
	case types.Jacobi:
		s = smoother.NewJacobi(m, r, cp.Sweeps)
	case types.Cholesky:
		s = smoother.NewCholesky(m, r, cp.Sweeps)
	default:
		s = smoother.NewGaussSeidel(m, cp.Sweeps)
	}
	x := field.NewVectorField[float64](cp.Cells, cp.Components)
	start := time.Now()
	perf, err = smoother.Solve(ctx, s, m, x, b, smoother.Controls{
		Tolerance:     cp.Tolerance,
		MaxIterations: cp.MaxIterations,
		Runner:        r,
		Logger:        log,
	})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", s.Name(), perf)
	fmt.Fprintf(w, "Solve time = %v, %s\n", time.Since(start), utils.GetMemUsage())
	last := cp.Cells - 1
	fmt.Fprintf(w, "x[0] = %s, x[%d] = %s\n", x[0], last, x[last])
	if !check {
		return
	}
	var direct field.VectorField[float64]
	if direct, err = m.SolveDirect(b); err != nil {
		return
	}
	fmt.Fprintf(w, "Direct solve: max error = %.3e, %d non zeros\n",
		floats.Distance(direct.Flatten(), x.Flatten(), math.Inf(1)), m.Assemble().NNZ())
	return
}
