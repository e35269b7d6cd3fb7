// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestDivMod(t *testing.T) {
	sizes := []int{1, 2, 3, 5, 8, 15, 25, 40, 65, 100, 200, 500}
	for _, i := range sizes {
		for _, j := range sizes {
			a := rndNat(i)
			b := rndNat(j)
			// choose a remainder c < b
			c := natFromBig(new(big.Int).Rem(rndNat(j).toBig(), b.toBig()))
			x := natFromBig(new(big.Int).Add(new(big.Int).Mul(a.toBig(), b.toBig()), c.toBig()))

			q, r := DivMod(x, b)
			if nat(q).cmp(a) != 0 {
				t.Fatalf("wrong quotient: got %v; want %v for %v/%v", q, a, x, b)
			}
			if nat(r).cmp(c) != 0 {
				t.Fatalf("wrong remainder: got %v; want %v for %v/%v", r, c, x, b)
			}
		}
	}
}

func TestDivModSmall(t *testing.T) {
	td := []struct {
		n, d, q, r nat
	}{
		{nil, nat{3}, nil, nil},
		{nat{2}, nat{3}, nil, nat{2}},
		{nat{7}, nat{3}, nat{2}, nat{1}},
		{nat{0, 1}, nat{0, 1}, nat{1}, nil},
		{nat{1, 0, 1}, nat{0, 1}, nat{0, 1}, nat{1}},
	}
	for i, d := range td {
		q, r := DivMod(d.n, d.d)
		if nat(q).cmp(d.q) != 0 || nat(r).cmp(d.r) != 0 {
			t.Errorf("#%d: DivMod(%v, %v) = %v, %v; want %v, %v", i, d.n, d.d, q, r, d.q, d.r)
		}
	}
}

func TestDivModRecursive(t *testing.T) {
	th := DefaultThresholds()
	th.DivRecursive = 4
	th.Karatsuba = 4
	for i := 0; i < 200; i++ {
		dn := 2 + rnd.Intn(40)
		nn := dn + rnd.Intn(60)
		ns := rndNat(nn)
		ds := rndNat(dn)
		ds[dn-1] |= highBit

		want, wantR := new(big.Int).QuoRem(ns.toBig(), ds.toBig(), new(big.Int))
		work := nat(nil).set(ns)
		qs := make(nat, nn-dn)
		qhigh := divRem(qs, work, ds, &th)
		got := qs.toBig()
		if qhigh {
			got.SetBit(got, (nn-dn)*_W, 1)
		}
		if got.Cmp(want) != 0 || work[:dn].toBig().Cmp(wantR) != 0 {
			t.Fatalf("divRem(%s, %s)\nq = %s (high %v), r = %s\nwant %s, %s",
				spew.Sdump(ns), spew.Sdump(ds), got, qhigh, work[:dn].toBig(), want, wantR)
		}
	}
}

func TestDivRem(t *testing.T) {
	for _, sz := range [][2]int{{1, 1}, {2, 1}, {5, 1}, {2, 2}, {5, 3}, {120, 110}, {300, 150}} {
		nn, dn := sz[0], sz[1]
		t.Run(fmt.Sprintf("%dx%d", nn, dn), func(t *testing.T) {
			ns := rndNat(nn)
			ds := rndNat(dn)
			ds[dn-1] |= highBit
			want, wantR := new(big.Int).QuoRem(ns.toBig(), ds.toBig(), new(big.Int))
			qs := make([]Word, nn-dn)
			work := nat(nil).set(ns)
			qhigh := DivRem(qs, work, ds)
			got := nat(qs).toBig()
			if qhigh {
				got.SetBit(got, (nn-dn)*_W, 1)
			}
			if got.Cmp(want) != 0 || work[:dn].toBig().Cmp(wantR) != 0 {
				t.Fatalf("DivRem: q = %s, r = %s; want %s, %s", got, work[:dn].toBig(), want, wantR)
			}
		})
	}
}

func TestDivModByZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("DivMod by zero did not panic")
		}
	}()
	DivMod(nat{1}, nat{0})
}

func BenchmarkDivMod(b *testing.B) {
	for _, sz := range [][2]int{{20, 10}, {200, 100}, {2000, 1000}} {
		b.Run(fmt.Sprintf("%dx%d", sz[0], sz[1]), func(b *testing.B) {
			x, y := rndNat(sz[0]), rndNat(sz[1])
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				DivMod(x, y)
			}
		})
	}
}
