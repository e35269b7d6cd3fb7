// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import (
	"fmt"
	"math/big"
	"strconv"
	"testing"
)

func TestDivExact(t *testing.T) {
	td := []struct {
		n, d, q nat
	}{
		{nat{56088}, nat{456}, nat{123}},
		{nat{0, 0, 0, 6, 19, 32, 21}, nat{0, 0, 1, 2, 3}, nat{0, 6, 7}},
		{nat{0}, nat{7}, nil},
		{nat{_M}, nat{1}, nat{_M}},
		{nat{_M - 1, 1}, nat{_M}, nat{2}},
	}
	for i, d := range td {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			q := DivExact(d.n, d.d)
			if nat(q).cmp(d.q.norm()) != 0 {
				t.Fatalf("DivExact(%v, %v) = %v, want %v", d.n, d.d, q, d.q)
			}
		})
	}
}

func TestDivExactLimb(t *testing.T) {
	for i := 0; i < 1000; i++ {
		qn := 1 + rnd.Intn(10)
		q := rndNat(qn)
		d := rndW() >> uint(rnd.Intn(_W))
		if d == 0 {
			d = 1
		}
		d <<= uint(rnd.Intn(int(nlz(d)) + 1))
		n := natFromBig(new(big.Int).Mul(q.toBig(), new(big.Int).SetUint64(uint64(d))))
		qs := make(nat, len(n))
		DivExactLimb(qs, n, d)
		if qs.norm().cmp(q) != 0 {
			t.Fatalf("DivExactLimb(%v, %#x) = %v, want %v", n, d, qs.norm(), q)
		}
		// in place
		DivExactLimb(n, n, d)
		if n.norm().cmp(q) != 0 {
			t.Fatalf("DivExactLimb in place: got %v, want %v", n.norm(), q)
		}
	}
}

func TestDivExactRandom(t *testing.T) {
	for i := 0; i < 300; i++ {
		n, d, q := rndExact(1+rnd.Intn(60), 1+rnd.Intn(60))
		if rnd.Intn(3) == 0 {
			// strip a random number of low bits out of d
			s := uint(rnd.Intn(3 * _W))
			d = natFromBig(new(big.Int).Lsh(d.toBig(), s))
			n = natFromBig(new(big.Int).Mul(q.toBig(), d.toBig()))
		}
		if got := DivExact(n, d); nat(got).cmp(q) != 0 {
			t.Fatalf("DivExact(%v, %v)\n got %v\nwant %v", n, d, got, q)
		}
	}
}

// divExactVariant calls one of the DivExactToOut functions.
type divExactVariant struct {
	name           string
	f              func(qs, ns, ds, scratch []Word)
	nsKept, dsKept bool
}

var divExactVariants = []divExactVariant{
	{"ValVal", DivExactToOut, false, false},
	{"ValRef", DivExactToOutValRef, false, true},
	{"RefVal", DivExactToOutRefVal, true, false},
	{"RefRef", DivExactToOutRefRef, true, true},
}

func TestDivExactToOut(t *testing.T) {
	sizes := [][2]int{{1, 1}, {4, 1}, {1, 4}, {5, 5}, {30, 12}, {12, 30}, {130, 50}}
	for _, v := range divExactVariants {
		for _, sz := range sizes {
			t.Run(fmt.Sprintf("%s/%dx%d", v.name, sz[0], sz[1]), func(t *testing.T) {
				n, d, q := rndExact(sz[0], sz[1])
				if sz[1] > 1 {
					// even divisor, with a zero low limb
					d = natFromBig(new(big.Int).Lsh(d.toBig(), _W+3))
					n = natFromBig(new(big.Int).Mul(q.toBig(), d.toBig()))
				}
				ns, ds := nat(nil).set(n), nat(nil).set(d)
				qn := len(n) - len(d) + 1
				// exact fit buffers, with a guard limb after qs
				qs := make(nat, qn+1)
				qs[qn] = 0xdead
				scratch := make(nat, DivExactScratchLen(len(n), len(d)))
				v.f(qs[:qn], ns, ds, scratch)
				if qs[qn] != 0xdead {
					t.Fatal("quotient buffer overrun")
				}
				if qs[:qn].norm().cmp(q) != 0 {
					t.Fatalf("got %v, want %v", qs[:qn].norm(), q)
				}
				if v.nsKept && ns.cmp(n) != 0 {
					t.Fatal("dividend modified")
				}
				if v.dsKept && ds.cmp(d) != 0 {
					t.Fatal("divisor modified")
				}
			})
		}
	}
}

func TestDivExactPanics(t *testing.T) {
	td := []struct {
		name string
		n, d []Word
	}{
		{"zero", []Word{1}, nil},
		{"zero limbs", []Word{1}, []Word{0, 0}},
		{"not normalized", []Word{1, 2, 3}, []Word{1, 0}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("DivExact(%v, %v) did not panic", d.n, d.d)
				}
			}()
			DivExact(d.n, d.d)
		})
	}
}

func BenchmarkDivExact(b *testing.B) {
	for _, sz := range [][2]int{{10, 10}, {100, 50}, {1000, 500}} {
		b.Run(fmt.Sprintf("%dx%d", sz[0], sz[1]), func(b *testing.B) {
			n, d, _ := rndExact(sz[0], sz[1])
			qs := make([]Word, len(n)-len(d)+1)
			scratch := make([]Word, DivExactScratchLen(len(n), len(d)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				DivExactToOutRefRef(qs, n, d, scratch)
			}
		})
	}
}

func BenchmarkDivExact_big(b *testing.B) {
	for _, sz := range [][2]int{{10, 10}, {100, 50}, {1000, 500}} {
		b.Run(fmt.Sprintf("%dx%d", sz[0], sz[1]), func(b *testing.B) {
			n, d, _ := rndExact(sz[0], sz[1])
			bn, bd := n.toBig(), d.toBig()
			var q big.Int
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q.Quo(bn, bd)
			}
		})
	}
}
