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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gomathieu/mathieu"
)

// EPCmd represents the ep command
var EPCmd = &cobra.Command{
	Use:   "ep",
	Short: "Locate an exceptional point on the imaginary q axis",
	Long: `
Bisects q = i·s between --lo and --hi for the value of s where the pair of
characteristic values (n, n+1), ordered by real part, coalesces into a complex
conjugate pair.

gomathieu ep --class ce2n -M 20 -n 0 --lo 1.4 --hi 1.6`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name, _ = cmd.Flags().GetString("class")
			M, _    = cmd.Flags().GetInt("truncation")
			n, _    = cmd.Flags().GetInt("harmonic")
			lo, _   = cmd.Flags().GetFloat64("lo")
			hi, _   = cmd.Flags().GetFloat64("hi")
			tol, _  = cmd.Flags().GetFloat64("tol")
			logger  = newLogger()
		)
		class, err := mathieu.ParseClass(name)
		if err == nil {
			err = instrument(logger, func() (err error) {
				var (
					s float64
					a complex128
				)
				if s, a, err = mathieu.LocateExceptionalPoint(class, M, n, lo, hi, tol); err != nil {
					return
				}
				fmt.Printf("q = %.12fi\ta = %.12f\n", s, real(a))
				return
			})
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(EPCmd)
	EPCmd.Flags().String("class", "ce2n", "parity/period class: ce2n, se2n+2 (period π classes are real on the imaginary axis)")
	EPCmd.Flags().IntP("truncation", "M", 20, "truncation order, a positive even integer")
	EPCmd.Flags().IntP("harmonic", "n", 0, "lower harmonic of the coalescing pair")
	EPCmd.Flags().Float64("lo", 1.4, "lower bound of Im(q), pair must be real here")
	EPCmd.Flags().Float64("hi", 1.6, "upper bound of Im(q), pair must be complex here")
	EPCmd.Flags().Float64("tol", 1.e-12, "bisection tolerance on Im(q)")
}
