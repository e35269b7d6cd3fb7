// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import "math/bits"

// divRem1WithFraction sets z to ns*B^fracLen/d, with len(z) =
// len(ns)+fracLen, and returns the remainder.
func divRem1WithFraction(z, ns []Word, fracLen int, d Word) Word {
	r := divWVW(z[fracLen:], 0, ns, d)
	if fracLen > 0 {
		f := nat(z[:fracLen])
		f.clear()
		r = divWVW(f, r, f, d)
	}
	return r
}

// divSignificandsLongByShort divides xs by a single limb significand y.
func divSignificandsLongByShort(qs, xs []Word, y Word, prec uint, mode RoundingMode) (int, Ordering) {
	outLen := len(qs)
	xsLen := len(xs)
	op := getNat(outLen + 1)
	defer putNat(op)
	out := *op

	// out[:outLen+1] gets the top outLen+1 limbs of xs/y; the remainder and
	// any dropped low limbs of xs go to c and sticky.
	outGeXs := outLen+1 >= xsLen
	var c, sticky Word
	var diff int
	if outGeXs {
		diff = outLen + 1 - xsLen
		c = divRem1WithFraction(out, xs, diff, y)
	} else {
		diff = xsLen - (outLen + 1)
		c = divWVW(out, 0, xs[diff:], y)
		if !isZero(xs[:diff]) {
			sticky = 1
		}
	}

	sh := uint(-prec) % _W
	shiftBit := Word(1) << sh
	shiftMask := shiftBit - 1
	var roundBit Word
	expOffset := 0
	if last := out[outLen]; last == 0 {
		switch {
		case sh != 0:
			roundBit = out[0] & (shiftBit >> 1)
			sticky |= out[0]&(shiftMask>>1) | c
		case c >= y-c:
			// 2c >= y: the next bit is set
			roundBit = 1
			sticky |= c<<1 - y
		case outGeXs:
			sticky |= c
		default:
			// 2c < y, but 2c + 2r >= y when c = (y-1)/2 and the first dropped
			// bit is set.
			xdm1 := xs[diff-1]
			if c == y>>1 && xdm1&highBit != 0 {
				roundBit = 1
				sticky = xdm1 << 1
				if sticky == 0 && !isZero(xs[:diff-1]) {
					sticky = 1
				}
			} else {
				sticky |= c
			}
		}
	} else {
		// x >= y: the top quotient limb is 1; shift it into the result.
		sh2 := nlz(last)
		csh2 := _W - sh2
		head := out[0]
		oldHead1 := head >> csh2
		oldHead2 := head << sh2
		copy(out[:outLen], out[1:])
		shlVU(out[:outLen], out[:outLen], sh2)
		out[0] |= oldHead1
		if sh == 0 {
			roundBit = oldHead2 & highBit
			sticky |= oldHead2 - roundBit | c
		} else {
			roundBit = out[0] & (shiftBit >> 1)
			sticky |= out[0]&(shiftMask>>1) | oldHead2 | c
		}
		expOffset = int(csh2)
	}
	out[0] &^= shiftMask
	z := out[:outLen]

	up, o := roundTable(mode, roundBit != 0, sticky != 0, z[0]&shiftBit != 0)
	if up && addWInPlace(z, shiftBit) != 0 {
		expOffset++
		z[outLen-1] = highBit
	}
	copy(qs, z)
	return expOffset, o
}

// divHighSplit returns the number of high limbs handled by the exact
// division step of divHigh for an n limb quotient, 0 meaning exact division
// throughout.
func divHighSplit(n int) int {
	if n < 17 {
		return 0
	}
	return 2 * (n / 3)
}

// divHighScratchLen returns the scratch length needed by divHigh for an n
// limb divisor.
func divHighScratchLen(n int) int {
	if k := divHighSplit(n); k > 0 {
		return 2 * (n - k)
	}
	return 0
}

// divHigh sets qs[:n] to an approximation of floor(ns/ds) with n = len(ds),
// len(ns) = 2n, ds normalized, and returns the top quotient bit. The result
// is within 2n of the exact quotient (the truncated products drop at most
// one unit per limb). ns is clobbered.
func divHigh(qs, ns, ds, scratch nat, t *Thresholds) bool {
	n := len(ds)
	k := divHighSplit(n)
	if k == 0 {
		return divRem(qs[:n], ns[:2*n], ds, t)
	}
	if debugNatdiv && ((n+4)/2 > k || k >= n-1) {
		panic("BUG: divHigh: bad split")
	}
	l := n - k

	// exact high part: ns[2l:2n] / ds[l:n] -> qs[l:n]
	qHigh := divRem(qs[l:n], ns[2*l:2*n], ds[l:], t)

	// subtract the high half of qs[k:n]*ds[:l] from ns[n:n+l]
	tp := scratch[:2*l]
	mulToOut(tp, qs[k:n], ds[:l], t)
	cy := subVV(ns[n:n+l], ns[n:n+l], tp[l:])
	if qHigh {
		cy += subVV(ns[n:n+l], ns[n:n+l], ds[:l])
	}
	for cy != 0 {
		if subWInPlace(qs[l:n], 1) != 0 {
			qHigh = false
		}
		if addVV(ns[l:n+l], ns[l:n+l], ds) != 0 {
			cy--
		}
	}

	// low part
	if divHigh(qs[:l], ns[k:k+2*l], ds[k:], scratch, t) {
		if addWInPlace(qs[l:n], 1) != 0 {
			return true
		}
	}
	return qHigh
}

// roundable reports whether a value approximated by bp, with an error of at
// most 2^(len(bp)*_W - err0) units of its last limb, rounds to prec bits the
// same way as the approximation in every rounding mode.
func roundable(bp []Word, err0 int, prec uint) bool {
	bn := len(bp)
	err := bn * _W
	if err0 <= 0 || uint(err0) <= prec || prec >= uint(err) {
		return false
	}
	err = min(err, err0)

	k := int(prec / _W)
	s := _W - prec%_W
	n := err/_W - k
	i := bn - 1 - k
	mask := Word(_M)
	if s != _W {
		mask = Word(1)<<s - 1
	}
	tmp := bp[i] & mask
	i--

	if n == 0 {
		// prec and err in the same limb
		s = _W - uint(err)%_W
		tmp >>= s
		mask >>= s
		return tmp != 0 && tmp != mask
	}
	switch tmp {
	case 0:
		for n--; n > 0; n-- {
			if bp[i] != 0 {
				return true
			}
			i--
		}
		s = _W - uint(err)%_W
		if s == _W {
			return false
		}
		return bp[i]>>s != 0
	case mask:
		for n--; n > 0; n-- {
			if bp[i] != _M {
				return true
			}
			i--
		}
		s = _W - uint(err)%_W
		if s == _W {
			return false
		}
		return bp[i]>>s != _M>>s
	}
	return true
}

// ceilLog2 returns ceil(log2(x)) for x > 0.
func ceilLog2(x int) int {
	return bits.Len(uint(x - 1))
}
