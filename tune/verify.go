// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tune

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
	"math/rand"
	"runtime"

	"github.com/db47h/natdiv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// VerifyOptions configures Verify.
type VerifyOptions struct {
	Rounds   int   // number of random cases
	MaxLimbs int   // maximum operand length
	Workers  int   // parallel workers, runtime.NumCPU() if 0
	Seed     int64 // random seed; worker i uses Seed+i
	// Log receives one entry per mismatch and a summary. Defaults to the
	// logrus standard logger.
	Log *logrus.Entry
	// Progress, if not nil, is called after each case. It must be safe for
	// concurrent use.
	Progress func()
}

// A Mismatch reports a division result that disagrees with math/big.
type Mismatch struct {
	Op        string
	Algorithm string
	N, D      []natdiv.Word
	Got, Want string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s (%s): %s / %s = %s, want %s", m.Op, m.Algorithm,
		natdiv.FormatNat(m.N, 16), natdiv.FormatNat(m.D, 16), m.Got, m.Want)
}

// Verify checks every exact division algorithm, and significand division
// under base's thresholds, against math/big on random operands. It returns
// the first Mismatch found, or the context's error if it is cancelled.
func Verify(ctx context.Context, base natdiv.Thresholds, opts VerifyOptions) error {
	if err := base.Validate(); err != nil {
		return err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxLimbs := max(opts.MaxLimbs, 1)
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rnd := rand.New(rand.NewSource(opts.Seed + int64(w)))
			for i := w; i < opts.Rounds; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := verifyExact(rnd, base, maxLimbs); err != nil {
					log.WithField("algorithm", err.Algorithm).Error(err)
					return err
				}
				if err := verifyFloat(rnd, base, maxLimbs); err != nil {
					log.WithField("algorithm", err.Algorithm).Error(err)
					return err
				}
				if opts.Progress != nil {
					opts.Progress()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.WithField("rounds", opts.Rounds).Info("verification passed")
	return nil
}

// randNat returns a random n limb number with a nonzero top limb.
func randNat(rnd *rand.Rand, n int) []natdiv.Word {
	z := make([]natdiv.Word, n)
	for i := range z {
		z[i] = natdiv.Word(rnd.Uint64())
	}
	for z[n-1] == 0 {
		z[n-1] = natdiv.Word(rnd.Uint64())
	}
	return z
}

func verifyExact(rnd *rand.Rand, base natdiv.Thresholds, maxLimbs int) *Mismatch {
	qn := 1 + rnd.Intn(maxLimbs)
	dn := 1 + rnd.Intn(maxLimbs)
	q := randNat(rnd, qn)
	d := randNat(rnd, dn)
	// exercise the even divisor paths: trailing zero bits and limbs
	switch rnd.Intn(4) {
	case 0:
		d[0] &^= 1 << uint(rnd.Intn(bits.UintSize))
	case 1:
		if dn > 1 {
			d[0] = 0
		}
	}
	if d[dn-1] == 0 {
		d[dn-1] = 1
	}
	var bq, bd big.Int
	bq.SetBits(q)
	bd.SetBits(d)
	n := new(big.Int).Mul(&bq, &bd).Bits()

	for _, a := range Algorithms {
		t := a.Thresholds(base)
		got := new(big.Int).SetBits(t.DivExact(n, d))
		if got.Cmp(&bq) != 0 {
			return &Mismatch{Op: "DivExact", Algorithm: a.String(), N: n, D: d, Got: got.Text(16), Want: bq.Text(16)}
		}
	}
	return nil
}

var verifyModes = []natdiv.RoundingMode{natdiv.Down, natdiv.Up, natdiv.Floor, natdiv.Ceiling, natdiv.Nearest}

func randSignificand(rnd *rand.Rand, prec uint) []natdiv.Word {
	n := int((prec + bits.UintSize - 1) / bits.UintSize)
	z := randNat(rnd, n)
	z[n-1] |= 1 << (bits.UintSize - 1)
	if s := uint(n)*bits.UintSize - prec; s > 0 {
		z[0] &^= 1<<s - 1
	}
	return z
}

func verifyFloat(rnd *rand.Rand, base natdiv.Thresholds, maxLimbs int) *Mismatch {
	maxBits := maxLimbs * bits.UintSize
	xPrec := uint(1 + rnd.Intn(maxBits))
	yPrec := uint(1 + rnd.Intn(maxBits))
	prec := uint(1 + rnd.Intn(maxBits))
	if rnd.Intn(4) == 0 {
		yPrec, prec = xPrec, xPrec
	}
	x := randSignificand(rnd, xPrec)
	y := randSignificand(rnd, yPrec)
	mode := verifyModes[rnd.Intn(len(verifyModes))]

	z, e, o := base.DivSignificands(x, xPrec, y, yPrec, prec, mode)
	want, acc := quoFloat(x, y, prec, mode)
	got := natdiv.SignificandFloat(z, e)
	if got.Cmp(want) != 0 || int(o) != int(acc) {
		return &Mismatch{
			Op:        fmt.Sprintf("DivSignificands(prec=%d, %s)", prec, mode),
			Algorithm: "float",
			N:         x,
			D:         y,
			Got:       fmt.Sprintf("%s (%s)", got.Text('p', 0), o),
			Want:      fmt.Sprintf("%s (%s)", want.Text('p', 0), acc),
		}
	}
	return nil
}
