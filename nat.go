// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import (
	"math/big"
	"sync"
)

const debugNatdiv = true

// nat is an unsigned integer x of the form
//
//   x = x[n-1]*_B^(n-1) + x[n-2]*_B^(n-2) + ... + x[1]*_B + x[0]
//
// with 0 <= x[i] < _B and 0 <= i < n is stored in a slice of length n,
// with the limbs x[i] as the slice elements.
//
// A number is normalized if the slice contains no leading 0 limbs. Division
// routines work on denormalized slices of fixed length; only the public
// allocating entry points normalize their results. The normalized
// representation of 0 is the empty or nil slice (length = 0).
type nat []Word

func (z nat) clear() {
	for i := range z {
		z[i] = 0
	}
}

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[0:i]
}

func (z nat) make(n int) nat {
	if n <= cap(z) {
		return z[:n] // reuse z
	}
	if n == 1 {
		// Most nats start small and stay that way; don't over-allocate.
		return make(nat, 1)
	}
	// Choosing a good value for e has significant performance impact
	// because it increases the chance that a value can be reused.
	const e = 4 // extra capacity
	return make(nat, n, n+e)
}

func (z nat) set(x nat) nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

func (z nat) setWord(x Word) nat {
	if x == 0 {
		return z[:0]
	}
	z = z.make(1)
	z[0] = x
	return z
}

// setBig sets z to the value of x. The limbs are copied.
func (z nat) setBig(x *big.Int) nat {
	return z.set(x.Bits())
}

// toBig returns a new big.Int holding a copy of x.
func (x nat) toBig() *big.Int {
	return new(big.Int).SetBits(nat(nil).set(x))
}

// cmp compares normalized x and y.
func (x nat) cmp(y nat) (r int) {
	m := len(x)
	n := len(y)
	if m != n || m == 0 {
		switch {
		case m < n:
			r = -1
		case m > n:
			r = 1
		}
		return
	}
	return cmpVV(x, y)
}

// cmpVV compares x and y of equal length, most significant limb first.
func cmpVV(x, y []Word) int {
	if debugNatdiv && len(x) != len(y) {
		panic("BUG: cmpVV of unequal lengths")
	}
	i := len(x) - 1
	for i >= 0 && x[i] == y[i] {
		i--
	}
	switch {
	case i < 0:
		return 0
	case x[i] < y[i]:
		return -1
	}
	return 1
}

// isZero reports whether all limbs of x are zero.
func isZero(x []Word) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

// trailingZeroBits returns the number of consecutive least significant zero
// bits of x.
func (x nat) trailingZeroBits() uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*_W + ntz(w)
		}
	}
	return 0
}

func (x nat) bitLen() int {
	if i := len(x) - 1; i >= 0 {
		return i*_W + int(_W-nlz(x[i]))
	}
	return 0
}

// copyUp copies src into dst where dst starts at or above src in the same
// backing array. It runs backwards so the overlap is safe.
func copyUp(dst, src []Word) {
	for i := len(src) - 1; i >= 0; i-- {
		dst[i] = src[i]
	}
}

// copyDown copies src into dst where dst starts at or below src in the same
// backing array. It runs forwards so the overlap is safe.
func copyDown(dst, src []Word) {
	for i := range src {
		dst[i] = src[i]
	}
}

// negVV sets z to -x mod B^len(z) and reports whether x was nonzero.
func negVV(z, x []Word) bool {
	i := 0
	for i < len(z) && x[i] == 0 {
		z[i] = 0
		i++
	}
	if i == len(z) {
		return false
	}
	z[i] = -x[i]
	for i++; i < len(z); i++ {
		z[i] = ^x[i]
	}
	return true
}

func same(x, y []Word) bool {
	return len(x) == len(y) && len(x) > 0 && &x[0] == &y[0]
}

func alias(x, y []Word) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

// getNat returns a *nat of len n. The contents may not be zero.
// The pool holds *nat to avoid allocation when converting to interface{}.
func getNat(n int) *nat {
	var z *nat
	if v := natPool.Get(); v != nil {
		z = v.(*nat)
	}
	if z == nil {
		z = new(nat)
	}
	*z = z.make(n)
	return z
}

func putNat(x *nat) {
	natPool.Put(x)
}

var natPool sync.Pool

// addWInPlace adds c to z in place and returns the carry out. It stops as
// soon as the carry is absorbed.
func addWInPlace(z []Word, c Word) Word {
	for i := range z {
		s := z[i] + c
		z[i] = s
		if s >= c {
			return 0
		}
		c = 1
	}
	return c
}

// subWInPlace subtracts b from z in place and returns the borrow out. It
// stops as soon as the borrow is absorbed.
func subWInPlace(z []Word, b Word) Word {
	for i := range z {
		d := z[i]
		z[i] = d - b
		if d >= b {
			return 0
		}
		b = 1
	}
	return b
}
