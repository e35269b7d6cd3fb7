// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context

import (
	"errors"
	"math/big"
	"math/bits"
	"testing"

	"github.com/db47h/natdiv"
)

func TestContextSettings(t *testing.T) {
	c := New(0, natdiv.Floor)
	if c.Prec() != DefaultPrec || c.Mode() != natdiv.Floor {
		t.Fatalf("New(0, Floor): prec %d, mode %s", c.Prec(), c.Mode())
	}
	c.SetPrec(^uint(0)).SetMode(natdiv.Up)
	if c.Prec() != MaxPrec || c.Mode() != natdiv.Up {
		t.Fatalf("SetPrec(max): prec %d, mode %s", c.Prec(), c.Mode())
	}
	c.SetPrec(113)
	if c.Prec() != 113 {
		t.Fatalf("SetPrec(113): prec %d", c.Prec())
	}
}

func TestContextQuoInt(t *testing.T) {
	td := []struct {
		x, y uint64
		prec uint
		mode natdiv.RoundingMode
	}{
		{10, 4, 8, natdiv.Exact},
		{1, 3, 53, natdiv.Nearest},
		{2, 3, 53, natdiv.Nearest},
		{2, 3, 10, natdiv.Up},
		{2, 3, 10, natdiv.Down},
		{1 << 31, 1, 1, natdiv.Exact},
		{1, 1 << 31, 1, natdiv.Exact},
		{1234567891, 7, 64, natdiv.Ceiling},
		{1234567891, 7, 3, natdiv.Floor},
	}
	for i, d := range td {
		c := New(d.prec, d.mode)
		x := []natdiv.Word{natdiv.Word(d.x)}
		y := []natdiv.Word{natdiv.Word(d.y)}
		z, e, o := c.QuoInt(x, y)
		if err := c.Err(); err != nil {
			t.Fatalf("#%d: %v", i, err)
		}
		want := new(big.Float).SetPrec(d.prec).SetMode(bigMode(d.mode))
		want.Quo(new(big.Float).SetUint64(d.x), new(big.Float).SetUint64(d.y))
		if got := natdiv.SignificandFloat(z, e); got.Cmp(want) != 0 || int(o) != int(want.Acc()) {
			t.Errorf("#%d: %d/%d = %s (%s), want %s (%s)", i, d.x, d.y, got.Text('g', -1), o, want.Text('g', -1), want.Acc())
		}
	}
}

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

func TestContextErr(t *testing.T) {
	c := New(16, natdiv.Exact)
	one := []natdiv.Word{1}
	three := []natdiv.Word{3}
	if z, _, _ := c.QuoInt(one, three); z != nil {
		t.Fatalf("inexact 1/3 returned %v", z)
	}
	// operations are no-ops until the error is cleared
	if z, _, _ := c.QuoInt(one, one); z != nil {
		t.Fatalf("QuoInt with a pending error returned %v", z)
	}
	err := c.Err()
	var inexact natdiv.ErrInexact
	if !errors.As(err, &inexact) {
		t.Fatalf("Err() = %v, want ErrInexact", err)
	}
	if c.Err() != nil {
		t.Fatal("Err did not clear the error")
	}
	if z, _, o := c.QuoInt(one, one); z == nil || o != natdiv.Equal {
		t.Fatalf("1/1 = %v (%s)", z, o)
	}
}

func TestContextQuoPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("division by zero did not panic")
		}
	}()
	c := New(10, natdiv.Nearest)
	c.Quo([]natdiv.Word{^natdiv.Word(0)}, bits.UintSize, []natdiv.Word{0}, bits.UintSize)
}
