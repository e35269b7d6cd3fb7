// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tune

import (
	"fmt"
	"math/big"

	"github.com/db47h/natdiv"
)

// Algorithm identifies one of the exact division algorithms.
type Algorithm int

// Exact division algorithms, by increasing asymptotic speed.
const (
	Schoolbook Algorithm = iota
	DivideAndConquer
	Barrett
)

// Algorithms lists all exact division algorithms.
var Algorithms = []Algorithm{Schoolbook, DivideAndConquer, Barrett}

var algorithmNames = [...]string{"schoolbook", "divide-and-conquer", "barrett"}

func (a Algorithm) String() string {
	if a >= 0 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// never is a threshold no operand reaches.
const never = 1 << 30

// Thresholds returns base with the exact division crossovers set so that a
// divisor of 3 limbs or more is handled by a.
func (a Algorithm) Thresholds(base natdiv.Thresholds) natdiv.Thresholds {
	t := base
	switch a {
	case Schoolbook:
		t.DCModularDiv, t.MuModularDiv = never, never+1
	case DivideAndConquer:
		t.DCModularDiv, t.MuModularDiv = 2, never
	case Barrett:
		t.DCModularDiv, t.MuModularDiv = 2, 3
	}
	return t
}

// bigMode returns the big.Float rounding mode matching m. Exact has no
// counterpart and maps to ToZero.
func bigMode(m natdiv.RoundingMode) big.RoundingMode {
	switch m {
	case natdiv.Up:
		return big.AwayFromZero
	case natdiv.Floor:
		return big.ToNegativeInf
	case natdiv.Ceiling:
		return big.ToPositiveInf
	case natdiv.Nearest:
		return big.ToNearestEven
	}
	return big.ToZero
}

// quoFloat is the big.Float oracle for significand division: it returns the
// correctly rounded quotient of the fractions xs and ys and its accuracy.
func quoFloat(xs, ys []natdiv.Word, prec uint, mode natdiv.RoundingMode) (*big.Float, big.Accuracy) {
	x := natdiv.SignificandFloat(xs, 0)
	y := natdiv.SignificandFloat(ys, 0)
	z := new(big.Float).SetPrec(prec).SetMode(bigMode(mode)).Quo(x, y)
	return z, z.Acc()
}
