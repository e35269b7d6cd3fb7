// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Thresholds holds the operand sizes, in limbs, at which the division
// routines switch algorithms. The defaults are reasonable for 64 bits
// platforms; use the divtune command to measure better values for a given
// host.
type Thresholds struct {
	// Divisor length from which the remainder producing 2-adic division
	// recurses instead of running the schoolbook loop.
	DCModularDivMod int `toml:"dc_modular_divmod" yaml:"dc_modular_divmod"`
	// Divisor length from which exact division uses divide-and-conquer.
	DCModularDiv int `toml:"dc_modular_div" yaml:"dc_modular_div"`
	// Divisor length from which exact division uses Barrett's method.
	MuModularDiv int `toml:"mu_modular_div" yaml:"mu_modular_div"`
	// Divisor length from which Barrett's method multiplies modulo B^n-1.
	MuModularDivMulMod int `toml:"mu_modular_div_mulmod" yaml:"mu_modular_div_mulmod"`
	// Length from which 2-adic inversion uses Newton iterations.
	InvertNewton int `toml:"invert_newton" yaml:"invert_newton"`
	// Length below which products modulo B^n-1 keep their exact size.
	MulModBnm1 int `toml:"mulmod_bnm1" yaml:"mulmod_bnm1"`
	// Divisor length from which floor division recurses.
	DivRecursive int `toml:"div_recursive" yaml:"div_recursive"`
	// Quotient and divisor length from which float division first tries
	// Mulders' short division.
	FloatDivMulders int `toml:"float_div_mulders" yaml:"float_div_mulders"`
	// Operand length from which products are computed by math/big.
	Karatsuba int `toml:"karatsuba" yaml:"karatsuba"`
}

// DefaultThresholds returns the built-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DCModularDivMod:    40,
		DCModularDiv:       120,
		MuModularDiv:       1200,
		MuModularDivMulMod: 80,
		InvertNewton:       150,
		MulModBnm1:         16,
		DivRecursive:       100,
		FloatDivMulders:    25,
		Karatsuba:          40,
	}
}

// Validate checks that t's values are usable and ordered: the schoolbook,
// divide-and-conquer and Barrett crossovers must strictly increase.
func (t Thresholds) Validate() error {
	switch {
	case t.DCModularDivMod < 2:
		return errors.Errorf("natdiv: DCModularDivMod threshold %d < 2", t.DCModularDivMod)
	case t.DCModularDiv < 2:
		return errors.Errorf("natdiv: DCModularDiv threshold %d < 2", t.DCModularDiv)
	case t.MuModularDiv <= t.DCModularDiv:
		return errors.Errorf("natdiv: MuModularDiv threshold %d <= DCModularDiv threshold %d", t.MuModularDiv, t.DCModularDiv)
	case t.MuModularDivMulMod < 1:
		return errors.Errorf("natdiv: MuModularDivMulMod threshold %d < 1", t.MuModularDivMulMod)
	case t.InvertNewton < 2:
		return errors.Errorf("natdiv: InvertNewton threshold %d < 2", t.InvertNewton)
	case t.MulModBnm1 < 2:
		return errors.Errorf("natdiv: MulModBnm1 threshold %d < 2", t.MulModBnm1)
	case t.DivRecursive < 4:
		return errors.Errorf("natdiv: DivRecursive threshold %d < 4", t.DivRecursive)
	case t.FloatDivMulders < 5:
		return errors.Errorf("natdiv: FloatDivMulders threshold %d < 5", t.FloatDivMulders)
	case t.Karatsuba < 1:
		return errors.Errorf("natdiv: Karatsuba threshold %d < 1", t.Karatsuba)
	}
	return nil
}

var thresholds atomic.Pointer[Thresholds]

func init() {
	t := DefaultThresholds()
	thresholds.Store(&t)
}

// CurrentThresholds returns the thresholds used by the package level
// functions.
func CurrentThresholds() Thresholds {
	return *thresholds.Load()
}

// SetThresholds validates t and makes it the thresholds used by subsequent
// calls. Calls already running keep the values they started with.
func SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	thresholds.Store(&t)
	return nil
}

func currentThresholds() *Thresholds {
	return thresholds.Load()
}
