// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tune

import (
	"context"
	"math/big"
	"math/rand"
	"time"

	"github.com/db47h/natdiv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultSizes are the divisor lengths timed by Calibrate when none are
// given.
var DefaultSizes = []int{8, 16, 24, 32, 48, 64, 96, 128, 192, 256, 384, 512, 768, 1024, 1536, 2048}

// CalibrateOptions configures Calibrate.
type CalibrateOptions struct {
	Sizes []int // divisor lengths in limbs, increasing; DefaultSizes if nil
	Reps  int   // timed runs per size and algorithm, the fastest is kept
	Seed  int64
	Log   *logrus.Entry
	// Progress, if not nil, is called after each timed size and algorithm.
	Progress func()
}

// A Timing is the best time of an algorithm for a balanced exact division
// of a 2*Size limb number by a Size limb one.
type Timing struct {
	Size      int
	Algorithm Algorithm
	Duration  time.Duration
}

// CalibrateSteps returns the number of Progress calls Calibrate makes.
func CalibrateSteps(opts CalibrateOptions) int {
	sizes := opts.Sizes
	if sizes == nil {
		sizes = DefaultSizes
	}
	return len(sizes) * len(Algorithms)
}

// Calibrate times the exact division algorithms over opts.Sizes and returns
// base with the DCModularDiv and MuModularDiv crossovers set to the first
// size where the faster algorithm wins, along with the raw timings.
func Calibrate(ctx context.Context, base natdiv.Thresholds, opts CalibrateOptions) (natdiv.Thresholds, []Timing, error) {
	if err := base.Validate(); err != nil {
		return base, nil, err
	}
	sizes := opts.Sizes
	if sizes == nil {
		sizes = DefaultSizes
	}
	reps := max(opts.Reps, 1)
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	rnd := rand.New(rand.NewSource(opts.Seed))

	var timings []Timing
	best := make(map[int][]time.Duration, len(sizes))
	for _, n := range sizes {
		if n < 2 {
			return base, nil, errors.Errorf("calibration size %d < 2", n)
		}
		q := randNat(rnd, n)
		d := randNat(rnd, n)
		d[0] |= 1
		var bq, bd big.Int
		bq.SetBits(q)
		bd.SetBits(d)
		nn := new(big.Int).Mul(&bq, &bd).Bits()

		ds := make([]time.Duration, len(Algorithms))
		for i, a := range Algorithms {
			if err := ctx.Err(); err != nil {
				return base, timings, err
			}
			t := a.Thresholds(base)
			ds[i] = timeDivExact(&t, nn, d, reps)
			timings = append(timings, Timing{Size: n, Algorithm: a, Duration: ds[i]})
			log.WithFields(logrus.Fields{
				"algorithm": a,
				"size":      n,
				"duration":  ds[i],
			}).Debug("timed")
			if opts.Progress != nil {
				opts.Progress()
			}
		}
		best[n] = ds
	}

	t := base
	t.DCModularDiv = crossover(sizes, best, Schoolbook, DivideAndConquer, 2, base.DCModularDiv)
	t.MuModularDiv = crossover(sizes, best, DivideAndConquer, Barrett, t.DCModularDiv+1, max(base.MuModularDiv, t.DCModularDiv+1))
	if err := t.Validate(); err != nil {
		return base, timings, errors.Wrap(err, "calibration")
	}
	log.WithFields(logrus.Fields{
		"dc_modular_div": t.DCModularDiv,
		"mu_modular_div": t.MuModularDiv,
	}).Info("calibration done")
	return t, timings, nil
}

// crossover returns the first size >= from at which b is faster than a, and
// stays faster at the next measured size. It returns def if there is none.
func crossover(sizes []int, best map[int][]time.Duration, a, b Algorithm, from, def int) int {
	for i, n := range sizes {
		if n < from || best[n][b] >= best[n][a] {
			continue
		}
		if i+1 < len(sizes) && best[sizes[i+1]][b] >= best[sizes[i+1]][a] {
			continue
		}
		return n
	}
	return def
}

func timeDivExact(t *natdiv.Thresholds, n, d []natdiv.Word, reps int) time.Duration {
	var best time.Duration
	for i := 0; i < reps; i++ {
		start := time.Now()
		t.DivExact(n, d)
		if el := time.Since(start); i == 0 || el < best {
			best = el
		}
	}
	return best
}
