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
	"log/slog"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gomathieu/metrics"
	"github.com/notargets/gomathieu/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gomathieu",
	Short: "Mathieu characteristic values, coefficients and functions for real and complex q",
	Long: `
Solves the periodic Mathieu eigen-problem y'' + (a - 2q cos 2x) y = 0 for
batches of real or complex q, tracking each eigenvalue branch through
exceptional points, and evaluates ce/se on a grid.

gomathieu solve -I input.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gomathieu.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("metrics-file", "", "write prometheus metrics in text format to this file")
	rootCmd.PersistentFlags().String("profile", "", "profile the run: cpu or mem")
	rootCmd.PersistentFlags().Bool("perf", false, "count CPU instructions around the solve (linux only)")
	for _, name := range []string{"log-level", "metrics-file", "profile", "perf"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gomathieu" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gomathieu")
	}

	viper.SetEnvPrefix("MATHIEU")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newCollector returns nil when no metrics file was requested; the solver
// accepts a nil collector.
func newCollector() *metrics.Collector {
	if viper.GetString("metrics-file") == "" {
		return nil
	}
	return metrics.NewCollector()
}

func writeMetrics(mc *metrics.Collector, logger *slog.Logger) {
	if mc == nil {
		return
	}
	path := viper.GetString("metrics-file")
	if err := mc.WriteTextfile(path); err != nil {
		logger.Error("writing metrics", "file", path, "err", err)
		return
	}
	logger.Info("metrics written", "file", path)
}

// startProfile returns the stop function of the requested profile, a no-op
// when none was requested.
func startProfile(logger *slog.Logger) (stop func()) {
	var mode func(*profile.Profile)
	switch viper.GetString("profile") {
	case "":
		return func() {}
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		logger.Warn("unknown profile mode, profiling disabled", "profile", viper.GetString("profile"))
		return func() {}
	}
	return profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop
}

// instrument runs fn inside the requested profile and instruction counter.
func instrument(logger *slog.Logger, fn func() error) (err error) {
	stop := startProfile(logger)
	defer stop()
	if !viper.GetBool("perf") {
		return fn()
	}
	var instructions uint64
	if instructions, err = countInstructions(fn); err != nil {
		return
	}
	logger.Info("hardware counters", "instructions", instructions)
	logger.Debug("memory", "usage", utils.GetMemUsage())
	return
}
