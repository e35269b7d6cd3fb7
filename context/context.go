// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides rounding contexts for significand division.
//
// A Context holds a target precision and rounding mode. Its Quo method
// divides significands with these settings.
//
// A Context catches ErrInexact errors: if a division in natdiv.Exact mode
// is not exact, the operation silently succeeds with an undefined result.
// Further operations with the context will be no-ops (they return a nil
// significand) until (*Context).Err is called to check for errors.
package context

import (
	"errors"

	"github.com/db47h/natdiv"
)

// DefaultPrec is the precision used by New when given a zero precision.
const DefaultPrec = 64

// MaxPrec is the largest supported precision.
const MaxPrec = 1<<32 - 1

// A Context is a wrapper around significand division that facilitates
// management of rounding modes, precision and error handling.
type Context struct {
	prec uint32
	mode natdiv.RoundingMode
	err  error
}

// New creates a new context with the given precision and rounding mode. If prec
// is 0, it will be set to DefaultPrec.
func New(prec uint, mode natdiv.RoundingMode) *Context {
	return new(Context).SetMode(mode).SetPrec(prec)
}

// Mode returns the rounding mode of c.
func (c *Context) Mode() natdiv.RoundingMode {
	return c.mode
}

// Prec returns the quotient precision of c in bits.
func (c *Context) Prec() uint {
	return uint(c.prec)
}

// SetMode sets c's rounding mode to mode and returns c.
func (c *Context) SetMode(mode natdiv.RoundingMode) *Context {
	c.mode = mode
	return c
}

// SetPrec sets c's precision to prec and returns c.
//
// If prec > MaxPrec, it is set to MaxPrec. If prec == 0, it is set to
// DefaultPrec.
func (c *Context) SetPrec(prec uint) *Context {
	if prec == 0 {
		prec = DefaultPrec
	}
	if prec > MaxPrec {
		prec = MaxPrec
	}
	c.prec = uint32(prec)
	return c
}

// Err returns the first error encountered since the last call to Err and clears
// the error state.
func (c *Context) Err() (err error) {
	err = c.err
	c.err = nil
	return
}

// Quo returns the significand of x/y rounded to c's precision and rounding
// mode, the exponent offset of the quotient and how the result compares to
// the exact quotient. xPrec and yPrec are the precisions of x and y.
func (c *Context) Quo(x []natdiv.Word, xPrec uint, y []natdiv.Word, yPrec uint) (z []natdiv.Word, expOffset int, o natdiv.Ordering) {
	if c.err != nil {
		return nil, 0, natdiv.Equal
	}
	defer func() {
		if err := recover(); err != nil {
			e, ok := err.(error)
			if !ok || !errors.As(e, new(natdiv.ErrInexact)) {
				panic(err)
			}
			c.err = e
			z, expOffset, o = nil, 0, natdiv.Equal
		}
	}()
	return natdiv.DivSignificands(x, xPrec, y, yPrec, uint(c.prec), c.mode)
}

// QuoInt returns x/y rounded to c's precision and rounding mode, as a
// significand z and a binary exponent e such that x/y ~ z/B^len(z) * 2^e.
func (c *Context) QuoInt(x, y []natdiv.Word) (z []natdiv.Word, e int, o natdiv.Ordering) {
	if c.err != nil {
		return nil, 0, natdiv.Equal
	}
	xs, xPrec, xe := natdiv.Significand(x)
	ys, yPrec, ye := natdiv.Significand(y)
	z, off, o := c.Quo(xs, xPrec, ys, yPrec)
	if z == nil {
		return nil, 0, o
	}
	return z, xe - ye + off, o
}
