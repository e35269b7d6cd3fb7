// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/db47h/natdiv"
	"github.com/db47h/natdiv/tune"
	"github.com/spf13/cobra"
)

var calibrateFlags struct {
	sizes   []int
	reps    int
	seed    int64
	out     string
	timings bool
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Measure the exact division crossovers on this host",
	Long: `calibrate times the schoolbook, divide-and-conquer and Barrett exact
division algorithms over a range of divisor sizes and writes a profile with
the measured crossovers, to the file given with --out or to stdout.`,
	Args: cobra.NoArgs,
	RunE: runCalibrate,
}

func init() {
	f := calibrateCmd.Flags()
	f.IntSliceVar(&calibrateFlags.sizes, "sizes", nil, "divisor sizes in limbs (default: built-in list)")
	f.IntVar(&calibrateFlags.reps, "reps", 5, "timed runs per size and algorithm")
	f.Int64Var(&calibrateFlags.seed, "seed", 1, "random seed")
	f.StringVarP(&calibrateFlags.out, "out", "o", "", "profile file to write")
	f.BoolVar(&calibrateFlags.timings, "timings", false, "print the raw timings")
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	opts := tune.CalibrateOptions{
		Sizes: calibrateFlags.sizes,
		Reps:  calibrateFlags.reps,
		Seed:  calibrateFlags.seed,
		Log:   log,
	}
	step, done := newProgress(tune.CalibrateSteps(opts), "calibrate")
	opts.Progress = step
	t, timings, err := tune.Calibrate(cmd.Context(), natdiv.CurrentThresholds(), opts)
	done()
	if err != nil {
		return err
	}
	if calibrateFlags.timings {
		w := tabwriter.NewWriter(cmd.ErrOrStderr(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "size\talgorithm\ttime")
		for _, tm := range timings {
			fmt.Fprintf(w, "%d\t%s\t%s\n", tm.Size, tm.Algorithm, tm.Duration)
		}
		w.Flush()
	}
	return writeProfile(cmd, tune.NewProfile(t), calibrateFlags.out)
}

// writeProfile saves p to path, or prints it to the command's output if path
// is empty.
func writeProfile(cmd *cobra.Command, p *tune.Profile, path string) error {
	format, err := tune.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if path != "" {
		if err := p.Save(path, format); err != nil {
			return err
		}
		log.WithField("path", path).Info("profile saved")
		return nil
	}
	if format == tune.FormatAuto {
		format = tune.FormatTOML
	}
	return p.Encode(cmd.OutOrStdout(), format)
}
