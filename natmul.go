// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import "math/big"

// Multiplication primitives used by the division algorithms. Short operands
// go through the grade school loop; longer ones are handed over to math/big,
// which has assembly kernels and Karatsuba multiplication.

// basicMul multiplies x and y and leaves the result in z.
// The (non-normalized) result is placed in z[0 : len(x) + len(y)].
func basicMul(z, x, y nat) {
	z[0 : len(x)+len(y)].clear() // initialize z
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
}

// mulToOut sets z[:len(x)+len(y)] to x*y. z must not alias x or y.
func mulToOut(z, x, y nat, t *Thresholds) {
	if len(x) < len(y) {
		x, y = y, x
	}
	n := len(x) + len(y)
	if len(y) == 0 {
		z[:n].clear()
		return
	}
	if len(y) < t.Karatsuba {
		basicMul(z, x, y)
		return
	}
	var bx, by big.Int
	p := new(big.Int).Mul(bx.SetBits(x), by.SetBits(y)).Bits()
	copy(z[:n], p)
	z[len(p):n].clear()
}

// mulLow sets z to x*y mod B^len(z). Limbs of x and y above len(z) are
// ignored.
func mulLow(z, x, y nat, t *Thresholds) {
	n := len(z)
	if len(x) > n {
		x = x[:n]
	}
	if len(y) > n {
		y = y[:n]
	}
	if len(x) < t.Karatsuba || len(y) < t.Karatsuba {
		z.clear()
		for i, d := range y {
			if d == 0 {
				continue
			}
			m := len(x)
			if m > n-i {
				m = n - i
			}
			c := addMulVVW(z[i:i+m], x[:m], d)
			if i+m < n {
				addVW(z[i+m:], z[i+m:], c)
			}
		}
		return
	}
	tp := getNat(len(x) + len(y))
	mulToOut(*tp, x, y, t)
	copy(z, (*tp)[:n])
	z[min(n, len(*tp)):].clear()
	putNat(tp)
}

// mulModBnm1NextSize returns the smallest size >= n that mulModBnm1 handles
// efficiently.
func mulModBnm1NextSize(n int, t *Thresholds) int {
	th := t.MulModBnm1
	switch {
	case n < th:
		return n
	case n < 4*(th-1)+1:
		return (n + 1) &^ 1
	case n < 8*(th-1)+1:
		return (n + 3) &^ 3
	}
	return (n + 7) &^ 7
}

// mulModBnm1ScratchLen returns the scratch length needed by mulModBnm1 for
// operands of xn and yn limbs.
func mulModBnm1ScratchLen(xn, yn int) int {
	return xn + yn
}

// mulModBnm1 sets z to x*y mod (B^len(z) - 1) in canonical form, i.e. in
// [0, B^len(z) - 1). scratch must hold mulModBnm1ScratchLen(len(x), len(y))
// limbs and must not overlap z.
func mulModBnm1(z, x, y, scratch nat, t *Thresholds) {
	tn := len(z)
	pn := len(x) + len(y)
	p := scratch[:pn]
	mulToOut(p, x, y, t)
	if pn <= tn {
		copy(z, p)
		z[pn:].clear()
		return
	}
	copy(z, p[:tn])
	for off := tn; off < pn; off += tn {
		chunk := p[off:min(off+tn, pn)]
		c := addVV(z[:len(chunk)], z, chunk)
		if len(chunk) < tn {
			c = addVW(z[len(chunk):], z[len(chunk):], c)
		}
		// end around carry: B^tn == 1
		for c != 0 {
			c = addVW(z, z, c)
		}
	}
	for _, w := range z {
		if w != _M {
			return
		}
	}
	z.clear()
}

// unwrapModBnm1 recovers a product P < B^len(p) from its residue
// c = P mod (B^tn - 1), tn = len(c), given the known least significant limbs
// low of P. The number of wrapped limbs wn = len(p) - tn must satisfy
// 0 <= wn <= len(low) and wn <= tn. p[:tn] may share storage with c.
func unwrapModBnm1(p, c, low []Word) {
	tn := len(c)
	wn := len(p) - tn
	if wn == 0 {
		copy(p, c)
		return
	}
	if debugNatdiv && (wn > len(low) || wn > tn) {
		panic("BUG: unwrapModBnm1: not enough known limbs")
	}
	hi := p[tn:]
	// Candidate high part: the wrapped limbs were added onto known low limbs.
	subVV(hi, c[:wn], low[:wn])
	b := subVV(p[:wn], c[:wn], hi)
	b = subVW(p[wn:tn], c[wn:tn], b)
	if b != 0 {
		// The residue was reduced once: high part is one less.
		subVW(hi, hi, 1)
		return
	}
	// A zero candidate is ambiguous with a reduced all ones high part; the
	// next known limb decides.
	if wn < tn && len(low) > wn && low[wn] != 0 && isZero(hi) && isZero(p[wn:tn]) {
		for i := range hi {
			hi[i] = _M
		}
		for i := wn; i < tn; i++ {
			p[i] = _M
		}
	}
}
