// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/db47h/natdiv"
	"github.com/db47h/natdiv/tune"
	"github.com/spf13/cobra"
)

var verifyFlags struct {
	rounds   int
	maxLimbs int
	workers  int
	seed     int64
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check all division algorithms against math/big",
	Long: `verify divides random operands with every exact division algorithm and
with significand division in all directed and nearest rounding modes, using
the current thresholds, and compares the results with math/big.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.IntVarP(&verifyFlags.rounds, "rounds", "n", 1000, "number of random cases")
	f.IntVar(&verifyFlags.maxLimbs, "max-limbs", 64, "maximum operand length in limbs")
	f.IntVarP(&verifyFlags.workers, "workers", "j", 0, "parallel workers (default: number of CPUs)")
	f.Int64Var(&verifyFlags.seed, "seed", 1, "random seed")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	step, done := newProgress(verifyFlags.rounds, "verify")
	defer done()
	return tune.Verify(cmd.Context(), natdiv.CurrentThresholds(), tune.VerifyOptions{
		Rounds:   verifyFlags.rounds,
		MaxLimbs: verifyFlags.maxLimbs,
		Workers:  verifyFlags.workers,
		Seed:     verifyFlags.seed,
		Log:      log,
		Progress: step,
	})
}
