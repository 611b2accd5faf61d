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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/notargets/gomathieu/InputParameters"
	"github.com/notargets/gomathieu/mathieu"
	"github.com/notargets/gomathieu/utils"
)

type SolveRun struct {
	ICFile       string
	OutFile      string
	CSV          bool
	Coefficients bool
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a batch of q read from a YAML input file",
	Long: `
Reads a YAML input file describing the class, truncation order and q batch,
solves it and writes characteristic values, per sample status and optional
coefficient and function tables as YAML (or values as CSV).

gomathieu solve -I input.yaml -o out.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		sr := &SolveRun{}
		sr.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		sr.OutFile, _ = cmd.Flags().GetString("output")
		sr.CSV, _ = cmd.Flags().GetBool("csv")
		sr.Coefficients, _ = cmd.Flags().GetBool("coefficients")
		if err := RunSolve(sr); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Class\n\t- TruncationOrder\n\t- QMin, QMax, QCount, QPhase")
	SolveCmd.Flags().StringP("output", "o", "", "output file, stdout when empty")
	SolveCmd.Flags().Bool("csv", false, "write characteristic values as CSV instead of YAML")
	SolveCmd.Flags().BoolP("coefficients", "c", false, "include the Fourier coefficient table in the YAML output")
}

func processInput(sr *SolveRun) (ip *InputParameters.SolveParameters, err error) {
	if len(sr.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", InputParameters.ExampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	var data []byte
	if data, err = os.ReadFile(sr.ICFile); err != nil {
		return
	}
	ip = &InputParameters.SolveParameters{}
	if err = ip.Parse(data); err != nil {
		return
	}
	err = ip.Validate()
	return
}

func RunSolve(sr *SolveRun) (err error) {
	var (
		ip     *InputParameters.SolveParameters
		cfg    mathieu.Config
		sv     *mathieu.Solver
		sp     *mathieu.Spectrum
		ft     *mathieu.FunctionTable
		logger = newLogger()
	)
	if ip, err = processInput(sr); err != nil {
		return
	}
	ip.Print()
	logger.Debug("linear algebra", "blas", utils.BLASBackend)
	if cfg, err = ip.Config(); err != nil {
		return
	}
	cfg.Logger = logger
	cfg.Metrics = newCollector()
	if sv, err = mathieu.NewSolver(cfg); err != nil {
		return
	}
	err = instrument(logger, func() (err error) {
		if sp, err = sv.Solve(ip.Samples()); err != nil {
			return
		}
		if len(ip.Harmonics) != 0 && ip.GridPoints > 0 {
			ft, err = sp.Evaluate(ip.Harmonics, ip.Grid())
		}
		return
	})
	if err != nil {
		return
	}
	writeMetrics(cfg.Metrics, logger)

	var w io.Writer = os.Stdout
	if sr.OutFile != "" {
		var f *os.File
		if f, err = os.Create(sr.OutFile); err != nil {
			return
		}
		defer f.Close()
		w = f
	}
	if sr.CSV {
		return writeValuesCSV(w, sp)
	}
	var out []byte
	if out, err = yaml.Marshal(NewSolveOutput(ip.Title, sp, ft, sr.Coefficients)); err != nil {
		return
	}
	_, err = w.Write(out)
	return
}

// SolveOutput is the YAML document written by the solve command. Complex
// numbers are [re, im] pairs; NaN marks failed samples.
type SolveOutput struct {
	Title           string         `json:"Title,omitempty"`
	Class           string         `json:"Class"`
	Normalization   string         `json:"Normalization"`
	TruncationOrder int            `json:"TruncationOrder"`
	Samples         []SampleOutput `json:"Samples"`
	Grid            []float64      `json:"Grid,omitempty"`
	Harmonics       []int          `json:"Harmonics,omitempty"`
}

type SampleOutput struct {
	Q                 [2]float64     `json:"Q"`
	Method            string         `json:"Method,omitempty"`
	Error             string         `json:"Error,omitempty"`
	Ambiguous         []int          `json:"Ambiguous,omitempty"`
	Warnings          []string       `json:"Warnings,omitempty"`
	ContinuationSteps int            `json:"ContinuationSteps,omitempty"`
	Values            [][2]float64   `json:"Values,omitempty"`
	Coefficients      [][][2]float64 `json:"Coefficients,omitempty"`
	Functions         [][][2]float64 `json:"Functions,omitempty"`
}

func NewSolveOutput(title string, sp *mathieu.Spectrum, ft *mathieu.FunctionTable, withCoefficients bool) (so *SolveOutput) {
	var (
		N = sp.Harmonics()
	)
	so = &SolveOutput{
		Title:           title,
		Class:           sp.Class.String(),
		Normalization:   sp.Normalization.String(),
		TruncationOrder: sp.Order,
		Samples:         make([]SampleOutput, len(sp.Q)),
	}
	if ft != nil {
		so.Grid, so.Harmonics = ft.Y, ft.Harmonics
	}
	for s := range sp.Q {
		var (
			sample = &sp.Samples[s]
			o      = &so.Samples[s]
		)
		o.Q = pair(sp.Q[s])
		if !sample.OK() {
			// NaN has no JSON encoding, failed samples carry only their error
			o.Error = sample.Err.Error()
			continue
		}
		o.Method = sample.Method.String()
		o.ContinuationSteps = sample.ContinuationSteps
		if sample.Ambiguity != nil {
			o.Ambiguous = sample.Ambiguity.Branches
		}
		for _, w := range sample.Warnings {
			o.Warnings = append(o.Warnings, w.Error())
		}
		o.Values = make([][2]float64, N)
		for h := 0; h < N; h++ {
			o.Values[h] = pair(sp.Values.At(h, s))
		}
		if withCoefficients {
			o.Coefficients = make([][][2]float64, N)
			for h := 0; h < N; h++ {
				o.Coefficients[h] = pairs(sp.Coefficients.Vector(h, s))
			}
		}
		if ft != nil {
			o.Functions = make([][][2]float64, len(ft.Harmonics))
			for i := range ft.Harmonics {
				o.Functions[i] = pairs(ft.Profile(i, s))
			}
		}
	}
	return
}

// writeValuesCSV writes one row per sample: q, status and every value.
func writeValuesCSV(w io.Writer, sp *mathieu.Spectrum) error {
	var (
		N   = sp.Harmonics()
		cw  = csv.NewWriter(w)
		row = []string{"re_q", "im_q", "status"}
		f   = func(v float64) string { return strconv.FormatFloat(v, 'g', 17, 64) }
	)
	for h := 0; h < N; h++ {
		order := strconv.Itoa(sp.Class.Order(h))
		row = append(row, "re_a"+order, "im_a"+order)
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	for s, q := range sp.Q {
		status := "ok"
		switch sample := &sp.Samples[s]; {
		case !sample.OK():
			status = "failed"
		case sample.Ambiguity != nil:
			status = "ambiguous"
		case len(sample.Warnings) != 0:
			status = "warning"
		}
		row = append(row[:0], f(real(q)), f(imag(q)), status)
		for h := 0; h < N; h++ {
			a := sp.Values.At(h, s)
			row = append(row, f(real(a)), f(imag(a)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func pair(z complex128) [2]float64 { return [2]float64{real(z), imag(z)} }

func pairs(v []complex128) (p [][2]float64) {
	p = make([][2]float64, len(v))
	for i, z := range v {
		p[i] = pair(z)
	}
	return
}
