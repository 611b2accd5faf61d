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
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gomathieu/model_problems/ShearChannel"
	"github.com/notargets/gomathieu/utils"
)

// FieldCmd represents the field command
var FieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Synthesize the scalar field of the sinusoidal shear channel",
	Long: `
Expands each streamwise wavenumber k in ce_{2n}(y; i·2k/ε) and prints
θ(x, y, t) across the channel together with the slowest decay rates.

gomathieu field --epsilon 0.1 -k 1,2 -a 1,0.5 -t 0.05`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			epsilon, _ = cmd.Flags().GetFloat64("epsilon")
			M, _       = cmd.Flags().GetInt("truncation")
			ks, _      = cmd.Flags().GetFloat64Slice("wavenumbers")
			amps, _    = cmd.Flags().GetFloat64Slice("amplitudes")
			x, _       = cmd.Flags().GetFloat64("x")
			t, _       = cmd.Flags().GetFloat64("time")
			points, _  = cmd.Flags().GetInt("points")
			logger     = newLogger()
			F          = make([]complex128, len(amps))
		)
		for i, a := range amps {
			F[i] = complex(a, 0)
		}
		err := instrument(logger, func() (err error) {
			var c *ShearChannel.Channel
			if c, err = ShearChannel.NewChannel(epsilon, M, ks, F, utils.Linspace(0, math.Pi, points), logger); err != nil {
				return
			}
			for s, lambda := range c.DecayRates() {
				fmt.Printf("k = %8.4f\tλ = %v\n", ks[s], lambda[:min(3, len(lambda))])
			}
			theta := c.Field(x, t)
			for j, yj := range c.Y {
				fmt.Printf("%12.8f\t%16.10e\n", yj, theta[j])
			}
			return
		})
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(FieldCmd)
	FieldCmd.Flags().Float64("epsilon", 0.1, "inverse shear strength ε")
	FieldCmd.Flags().IntP("truncation", "M", 40, "truncation order, grow it with 2k/ε")
	FieldCmd.Flags().Float64SliceP("wavenumbers", "k", []float64{1}, "streamwise wavenumbers")
	FieldCmd.Flags().Float64SliceP("amplitudes", "a", []float64{1}, "initial amplitude of each wavenumber")
	FieldCmd.Flags().Float64("x", 0, "streamwise station")
	FieldCmd.Flags().Float64P("time", "t", 0, "time")
	FieldCmd.Flags().Int("points", 33, "grid points across the channel")
}
