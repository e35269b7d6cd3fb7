// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file mirrors types and constants from math/big.

package natdiv

import (
	"fmt"
	"io"
)

// RoundingMode determines how a quotient is rounded to the desired
// precision. Significands are nonnegative, so Down and Floor, as well as Up
// and Ceiling, always give the same result.
type RoundingMode byte

// These constants define supported rounding modes.
const (
	Down    RoundingMode = iota // toward zero
	Up                          // away from zero
	Floor                       // toward -Inf
	Ceiling                     // toward +Inf
	Nearest                     // to nearest, ties to even
	Exact                       // panic with ErrInexact unless exact
)

var roundingModeNames = [...]string{"Down", "Up", "Floor", "Ceiling", "Nearest", "Exact"}

func (m RoundingMode) String() string {
	if int(m) < len(roundingModeNames) {
		return roundingModeNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", m)
}

// ParseRoundingMode returns the rounding mode named s, as returned by
// RoundingMode.String.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for i, n := range roundingModeNames {
		if n == s {
			return RoundingMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}

// Ordering describes how a rounded quotient compares to the exact one.
type Ordering int8

// Constants describing an Ordering.
const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = +1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	}
	return fmt.Sprintf("Ordering(%d)", o)
}

// An ErrInexact panic is raised by a division in Exact rounding mode whose
// quotient is not representable at the requested precision. Implements the
// error interface.
type ErrInexact struct {
	msg string
}

func (err ErrInexact) Error() string {
	return err.msg
}

func panicInexact() {
	panic(ErrInexact{"natdiv: inexact float division"})
}

// skipSpace consumes leading white space from r.
func skipSpace(r io.ByteScanner) error {
	for {
		ch, err := r.ReadByte()
		if err != nil {
			return err
		}
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			return r.UnreadByte()
		}
	}
}
