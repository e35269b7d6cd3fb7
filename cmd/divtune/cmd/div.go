// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/db47h/natdiv"
	"github.com/db47h/natdiv/context"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// modeValue is a rounding mode command line flag.
type modeValue natdiv.RoundingMode

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) String() string { return natdiv.RoundingMode(*m).String() }
func (m *modeValue) Type() string   { return "mode" }

func (m *modeValue) Set(s string) error {
	mode, err := natdiv.ParseRoundingMode(s)
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

var divFlags struct {
	exact  bool
	prec   uint
	mode   modeValue
	base   int
	digits int
}

var divCmd = &cobra.Command{
	Use:   "div N D",
	Short: "Divide two natural numbers",
	Long: `div divides N by D and prints the result. N and D are decimal, or
hexadecimal, octal or binary with a 0x, 0o or 0b prefix.

By default it prints the floor quotient and the remainder. With --exact, D
must divide N and only the quotient is printed. With --prec, the quotient is
rounded to that many bits in the rounding mode given by --mode, and printed
as a floating-point number together with the rounding direction.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiv,
}

func init() {
	f := divCmd.Flags()
	f.BoolVar(&divFlags.exact, "exact", false, "exact division: D divides N")
	f.UintVar(&divFlags.prec, "prec", 0, "quotient precision in bits for a rounded quotient")
	divFlags.mode = modeValue(natdiv.Nearest)
	f.Var(&divFlags.mode, "mode", "rounding mode: Down, Up, Floor, Ceiling, Nearest or Exact")
	f.IntVar(&divFlags.base, "base", 10, "output base for integer results")
	f.IntVar(&divFlags.digits, "digits", 0, "significant decimal digits of rounded quotients (0: shortest exact)")
	rootCmd.AddCommand(divCmd)
}

func runDiv(cmd *cobra.Command, args []string) error {
	n, err := natdiv.ParseNat(args[0])
	if err != nil {
		return errors.Wrap(err, "dividend")
	}
	d, err := natdiv.ParseNat(args[1])
	if err != nil {
		return errors.Wrap(err, "divisor")
	}
	if len(d) == 0 {
		return errors.New("division by zero")
	}
	out := cmd.OutOrStdout()
	log.WithFields(logrus.Fields{
		"n_limbs": len(n),
		"d_limbs": len(d),
	}).Debug("operands parsed")

	switch {
	case divFlags.prec > 0:
		if len(n) == 0 {
			fmt.Fprintln(out, "0 (Equal)")
			return nil
		}
		ctx := context.New(divFlags.prec, natdiv.RoundingMode(divFlags.mode))
		z, e, o := ctx.QuoInt(n, d)
		if err := ctx.Err(); err != nil {
			return err
		}
		q := natdiv.SignificandFloat(z, e).SetPrec(divFlags.prec)
		if divFlags.digits > 0 {
			fmt.Fprintf(out, "%s (%s)\n", q.Text('g', divFlags.digits), o)
		} else {
			fmt.Fprintf(out, "%s (%s)\n", q.Text('g', -1), o)
		}
	case divFlags.exact:
		if _, r := natdiv.DivMod(n, d); len(r) != 0 {
			return errors.Errorf("%s does not divide %s", args[1], args[0])
		}
		if len(n) == 0 {
			fmt.Fprintln(out, "0")
			return nil
		}
		fmt.Fprintln(out, natdiv.FormatNat(natdiv.DivExact(n, d), divFlags.base))
	default:
		q, r := natdiv.DivMod(n, d)
		fmt.Fprintln(out, natdiv.FormatNat(q, divFlags.base), natdiv.FormatNat(r, divFlags.base))
	}
	return nil
}
