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
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/blockcoupled/expand"
	"github.com/notargets/blockcoupled/hyper"
)

// InvertCmd represents the invert command
var InvertCmd = &cobra.Command{
	Use:   "invert [file]",
	Short: "Determinant, inverse and contractions of one tensor",
	Long: `Reads N*N whitespace separated components, row-major and optionally
parenthesised, from a file or standard input and prints the determinant,
inverse, diagonal and row sums`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var n int
		if n, err = cmd.Flags().GetInt("rowLength"); err != nil {
			return
		}
		var r io.Reader = os.Stdin
		if len(args) == 1 {
			var f *os.File
			if f, err = os.Open(args[0]); err != nil {
				return
			}
			defer f.Close()
			r = f
		}
		return RunInvert(os.Stdout, r, n)
	},
}

func init() {
	rootCmd.AddCommand(InvertCmd)
	InvertCmd.Flags().IntP("rowLength", "n", 3, "row length N of the tensor")
}

// RunInvert reports on the tensor read from r. A singular tensor is reported
// as an error.
func RunInvert(w io.Writer, r io.Reader, n int) (err error) {
	if n < 1 {
		return fmt.Errorf("row length must be positive, have %d", n)
	}
	var A hyper.Tensor[float64]
	if A, err = hyper.ReadTensor[float64](r, n); err != nil {
		return
	}
	fmt.Fprintf(w, "%s = %s\n", A.TypeName(), A)
	fmt.Fprintf(w, "det = %g\n", hyper.Det(A))
	fmt.Fprintf(w, "diag = %s\n", expand.ContractLinear(A))
	fmt.Fprintf(w, "contractScalar = %g\n", expand.ContractScalarTensor(A))
	fmt.Fprintf(w, "sumToDiag = %s\n", expand.SumToDiag(A))
	fmt.Fprintf(w, "sumMagToDiag = %s\n", expand.SumMagToDiag(A))
	var Ainv hyper.Tensor[float64]
	if Ainv, err = safeInv(A); err != nil {
		return
	}
	fmt.Fprintf(w, "inv = %s\n", Ainv)
	var ref mat.Dense
	if e := ref.Inverse(A.Dense()); e != nil {
		fmt.Fprintf(w, "gonum inverse: %v\n", e)
		return
	}
	var gonumInv hyper.Tensor[float64]
	if gonumInv, err = hyper.TensorFromDense[float64](&ref); err != nil {
		return
	}
	diff := floats.Distance(Ainv.Data(), gonumInv.Data(), math.Inf(1))
	fmt.Fprintf(w, "cond = %.4g, max |inv - gonum inv| = %.1e\n", mat.Cond(A.Dense(), 2), diff)
	return
}

func safeInv(A hyper.Tensor[float64]) (Ainv hyper.Tensor[float64], err error) {
	defer func() {
		if p := recover(); p != nil {
			var se *hyper.SingularError
			if e, ok := p.(error); ok && errors.As(e, &se) {
				err = e
				return
			}
			panic(p)
		}
	}()
	Ainv = hyper.Inv(A)
	return
}
