// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import (
	"math/big"
	"math/bits"
	"strconv"
	"testing"
)

func TestDivWW(t *testing.T) {
	for i := 0; i < 100000; i++ {
		y := rndW()
		if y == 0 {
			y = 1
		}
		x1 := rndW() % y
		x0 := rndW()
		q, r := divWW(x1, x0, y, reciprocalWord(y))
		qq, rr := bits.Div(uint(x1), uint(x0), uint(y))
		if q != Word(qq) || r != Word(rr) {
			t.Fatalf("divWW(%d, %d, %d) = %d, %d; want %d, %d", x1, x0, y, q, r, qq, rr)
		}
	}
}

func TestDivWVW(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := 1 + rnd.Intn(10)
		x := rndV(n)
		y := rndW() >> uint(rnd.Intn(_W))
		if y == 0 {
			y = 3
		}
		z := make([]Word, n)
		r := divWVW(z, 0, x, y)
		bq, br := new(big.Int).QuoRem(new(big.Int).SetBits(x), new(big.Int).SetUint64(uint64(y)), new(big.Int))
		if new(big.Int).SetBits(z).Cmp(bq) != 0 || uint64(r) != br.Uint64() {
			t.Fatalf("divWVW(%v, %d) = %v, %d; want %s, %s", x, y, z, r, bq, br)
		}
	}
}

func TestMulAddWWW(t *testing.T) {
	td := []struct {
		x, y, c, q, r Word
	}{
		{_M, _M, 0, _M - 1, 1},
		{_M, _M, _M, _M, 0},
		{0, 0, 7, 0, 7},
		{1 << (_W - 1), 2, 1, 1, 1},
	}
	for i, d := range td {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			q, r := mulAddWWW_g(d.x, d.y, d.c)
			if q != d.q || r != d.r {
				t.Fatalf("mulAddWWW(%#x, %#x, %#x) = %#x, %#x; want %#x, %#x", d.x, d.y, d.c, q, r, d.q, d.r)
			}
		})
	}
}

func TestNlzNtz(t *testing.T) {
	for i := uint(0); i < _W; i++ {
		x := Word(1) << i
		if n := nlz(x); n != _W-1-i {
			t.Fatalf("nlz(%#x) = %d", x, n)
		}
		if n := ntz(x); n != i {
			t.Fatalf("ntz(%#x) = %d", x, n)
		}
	}
}

func TestSub2WW(t *testing.T) {
	z1, z0 := sub2WW(1, 0, 0, 1)
	if z1 != 0 || z0 != _M {
		t.Fatalf("sub2WW(1:0, 0:1) = %d:%d", z1, z0)
	}
	if !greaterThan(1, 0, 0, _M) || greaterThan(1, 2, 1, 2) || !greaterThan(1, 3, 1, 2) {
		t.Fatal("greaterThan")
	}
}

var benchQ, benchR Word

func BenchmarkDivWW_bits(b *testing.B) {
	y := rndW() | highBit
	x1, x0 := rndW()%y, rndW()
	for i := 0; i < b.N; i++ {
		q, r := bits.Div(uint(x1), uint(x0), uint(y))
		benchQ, benchR = Word(q), Word(r)
	}
}

func BenchmarkDivWW_reciprocal(b *testing.B) {
	y := rndW() | highBit
	x1, x0 := rndW()%y, rndW()
	m := reciprocalWord(y)
	for i := 0; i < b.N; i++ {
		benchQ, benchR = divWW(x1, x0, y, m)
	}
}
