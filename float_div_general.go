// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// cleanup tells how the truncated quotient of divSignificandsGeneral must be
// fixed once the rounding direction is known.
type cleanup uint8

const (
	cleanupNone cleanup = iota
	cleanupTruncateCheckQHigh
	cleanupSub1Ulp
	cleanupSub2Ulp
)

// divSignificandsGeneral divides significands with at least 2 limbs in ds.
func divSignificandsGeneral(qs, ns, ds []Word, prec uint, mode RoundingMode, t *Thresholds) (int, Ordering) {
	nsLen, dsLen, qsLen := len(ns), len(ds), len(qs)
	sh := uint(-prec) % _W
	shiftBit := Word(1) << sh
	shiftMask := shiftBit - 1

	// extraBit is set if x >= y: the quotient then has one more integer
	// bit, which is dealt with by halving x.
	extraBit := significandGe(ns, ds)
	expOffset := b2i(extraBit)

	if qsLen >= t.FloatDivMulders && dsLen >= t.FloatDivMulders {
		if e, o, ok := divSignificandsShort(qs, ns, ds, prec, mode, t); ok {
			return e, o
		}
	}

	// qs2 gets the quotient truncated to qs2Len limbs. In Nearest mode with
	// a whole limb precision there is no room in qs for the round bit, so
	// one more limb is computed.
	qs2 := nat(qs)
	var qs2p *nat
	if mode == Nearest && sh == 0 {
		qs2p = getNat(qsLen + 1)
		defer putNat(qs2p)
		qs2 = *qs2p
	}
	qs2Len := len(qs2)
	twoQs2Len := qs2Len << 1

	// xs holds the top 2*qs2Len limbs of x, halved if extraBit.
	xp := getNat(twoQs2Len)
	defer putNat(xp)
	xs := *xp
	xs.clear()
	var stickyX bool
	if twoQs2Len > nsLen {
		xsHi := xs[twoQs2Len-nsLen:]
		if extraBit {
			xs[twoQs2Len-nsLen-1] = shrVU(xsHi, ns, 1)
		} else {
			copy(xsHi, ns)
		}
	} else {
		nsLo, nsHi := ns[:nsLen-twoQs2Len], ns[nsLen-twoQs2Len:]
		if extraBit {
			stickyX = shrVU(xs, nsHi, 1) != 0
		} else {
			copy(xs, nsHi)
		}
		stickyX = stickyX || !isZero(nsLo)
	}
	lowX := stickyX

	// ys holds the top qs2Len limbs of y, or all of y with xs truncated
	// accordingly.
	var ys []Word
	var k int
	var stickyY bool
	if dsLen >= qs2Len {
		k = dsLen - qs2Len
		stickyY = !isZero(ds[:k])
		ys = ds[k:]
		k = 0
	} else {
		ys = ds
		k = qs2Len - dsLen
	}

	qHigh := divRem(qs2, xs[k:], ys, t)
	stickyX = stickyX || !isZero(xs[:qs2Len])
	sticky := stickyX || stickyY

	// sticky3 holds the bits of qs2 below the target precision
	var sticky3 Word
	var sh2 uint
	if qs2Len == qsLen {
		sticky3 = qs2[0] & shiftMask
		sh2 = sh
	} else {
		copy(qs, qs2[1:])
		sticky3 = qs2[0]
		sh2 = _W
	}
	qs2[0] ^= sticky3

	inex := Equal
	if sticky || sticky3 != 0 {
		inex = Greater
	}
	var roundBit, stickyW Word
	cl := cleanupNone
	if dsLen <= qs2Len {
		// exact division up to stickyX
		switch {
		case mode == Nearest:
			roundBit = sticky3 & (Word(1) << (sh2 - 1))
			stickyW = sticky3 ^ roundBit
			if stickyX {
				stickyW |= 1
			}
		case mode == Floor || mode == Down || inex == Equal:
			if inex != Equal {
				stickyW = 1
			}
		case mode == Exact:
			panicInexact()
		default:
			stickyW = 1
		}
	} else {
		// The divisor was truncated: qs2 is an approximation of the
		// quotient, within 1 of it.
		if inex == Equal {
			return expOffset, Equal
		}
		sticky3Orig := sticky3
		if mode == Nearest {
			roundBit = sticky3 & (Word(1) << (sh2 - 1))
			sticky3 ^= roundBit
		}
		if sticky3 > 1 {
			stickyW = sticky3
		} else {
			// hard case: compare the remainder with the dropped limbs of y
			var done bool
			done, roundBit, stickyW, cl, inex = divSignificandsHardCase(ns, ds, qs2, xs, extraBit, lowX, qHigh, sh, sticky3, sticky3Orig, roundBit, mode, t)
			if done {
				if qHigh {
					expOffset++
					qs[qsLen-1] = highBit
				}
				return expOffset, inex
			}
		}
	}

	switch cl {
	case cleanupNone:
		up, o := roundTable(mode, roundBit != 0, stickyW != 0, qs[0]&shiftBit != 0)
		if up && addWInPlace(qs, shiftBit) != 0 {
			expOffset++
			qs[qsLen-1] = highBit
		}
		return expOffset, o
	case cleanupSub1Ulp:
		if subWInPlace(qs, shiftBit) != 0 {
			qHigh = false
		}
	case cleanupSub2Ulp:
		if subWInPlace(qs, shiftBit) != 0 {
			qHigh = false
		}
		if subWInPlace(qs, shiftBit) != 0 {
			qHigh = false
		}
	}
	if qHigh {
		expOffset++
		qs[qsLen-1] = highBit
	}
	return expOffset, inex
}

// divSignificandsHardCase decides the rounding of the approximate quotient
// qs2 when its bits below the target precision are 0 or 1, by computing the
// sign of the remainder with the full divisor. If done is set, the truncated
// quotient is final and inex is its Ordering.
func divSignificandsHardCase(ns, ds, qs2, xs nat, extraBit, lowX, qHigh bool, sh uint, sticky3, sticky3Orig, roundBit Word, mode RoundingMode, t *Thresholds) (done bool, rb, sticky Word, cl cleanup, inex Ordering) {
	nsLen, dsLen, qs2Len := len(ns), len(ds), len(qs2)
	twoQs2Len := qs2Len << 1
	k := dsLen - qs2Len
	rb = roundBit

	spp := getNat(dsLen)
	defer putNat(spp)
	sp := *spp
	// sp = (qs2 + qHigh*B^qs2Len) * ds[:k], the part of q*y below the
	// computed remainder
	qs2[0] ^= sticky3Orig
	mulToOut(sp, qs2, ds[:k], t)
	qHigh2 := qHigh && addVV(sp[qs2Len:], sp[qs2Len:], ds[:k]) != 0
	qs2[0] ^= sticky3Orig
	spLo, spHi := sp[:k], sp[k:]

	// compare q*y_lo with the remainder, extended by the dropped limbs of x
	cmp := Greater
	if !qHigh2 {
		cmp = Ordering(cmpVV(spHi, xs[:qs2Len]))
	}
	if cmp == Equal {
		if l := nsLen - twoQs2Len; l >= 0 {
			cmp = Ordering(cmpHelper(spLo, ns[:l+b2i(extraBit)], extraBit))
		} else if !isZero(spLo) {
			cmp = Greater
		}
	}

	if cmp <= Equal {
		// q*y <= x: the truncated quotient is exact or too small by less
		// than one
		if cmp == Equal {
			sticky = sticky3
		} else {
			sticky = 1
		}
		return false, rb, sticky, cleanupNone, Greater
	}

	// q*y > x: q is one too large, compute q*y - x
	if !qHigh2 {
		carry := false
		if lowX {
			l := nsLen - twoQs2Len
			m := max(l-k, 0)
			carry = extraBit && ns[m]&1 != 0
			if l >= k {
				if !carry {
					carry = !isZero(ns[:m])
				}
				lowX = carry
				carry = subHelper(spLo, ns[m:m+k+b2i(extraBit)], carry, extraBit)
			} else {
				lowX = false
				kml := k - l
				if carry {
					carry = subWInPlace(spLo[kml-1:kml], highBit) != 0
				}
				carry = subHelper(spLo[kml:], ns[:l+b2i(extraBit)], carry, extraBit)
			}
		}
		if carry {
			subWInPlace(spHi, 1)
		}
		subVV(spHi, spHi, xs[:qs2Len])
		// q*y - x compared with y
		cmp = Ordering(cmpVV(sp, ds))
		if cmp == Equal && lowX {
			cmp = Greater
		}
	}

	if cmp <= Equal {
		// 0 < q*y - x <= y: the exact quotient lies in [q-1, q)
		switch {
		case sticky3 == 1:
			if cmp != Equal {
				sticky = 1
			}
			return false, rb, sticky, cleanupNone, Greater
		case rb == 0:
			// the quotient is q-1 plus a fraction, or exactly q-1 if
			// cmp == Equal and the ulp is a whole limb
			inex = Equal
			if cmp != Equal || sh != 0 {
				inex = Less
			}
			switch {
			case mode == Nearest && sh == 1 && cmp == Equal && qs2[0]&(Word(1)<<sh) != 0:
				// q-1 is a tie and q is odd at prec bits
				return false, rb, 0, cleanupSub1Ulp, Less
			case mode == Nearest || (mode == Up || mode == Ceiling) && inex != Equal:
				return false, rb, 0, cleanupTruncateCheckQHigh, Greater
			case inex != Equal && mode == Exact:
				panicInexact()
			}
			return false, rb, 0, cleanupSub1Ulp, inex
		}
		// round bit set, sticky3 == 0: the quotient is below the midpoint,
		// and equals the truncated one only if the round bit is its last
		// bit and the division is exact.
		if cmp == Equal && sh == 1 {
			return true, rb, 0, cleanupNone, Equal
		}
		return true, rb, 0, cleanupNone, Less
	}

	// q*y - x > y: the exact quotient lies in (q-2, q-1)
	switch mode {
	case Exact:
		panicInexact()
	case Nearest:
		if sh == 1 {
			// q-1 is the midpoint and the quotient is below it
			if rb == 0 {
				return false, rb, 0, cleanupSub1Ulp, Less
			}
			return false, rb, 0, cleanupTruncateCheckQHigh, Greater
		}
		if rb == 0 {
			return false, rb, 0, cleanupTruncateCheckQHigh, Greater
		}
		return false, rb, 0, cleanupTruncateCheckQHigh, Less
	case Floor, Down:
		if sh == 0 {
			return false, rb, 0, cleanupSub2Ulp, Less
		}
		return false, rb, 0, cleanupSub1Ulp, Less
	}
	if sh == 0 {
		return false, rb, 0, cleanupSub1Ulp, Greater
	}
	return false, rb, 0, cleanupTruncateCheckQHigh, Greater
}

// significandGe reports whether the fraction ns is greater than or equal to
// the fraction ds.
func significandGe(ns, ds []Word) bool {
	nsLen, dsLen := len(ns), len(ds)
	for i := 1; i <= min(nsLen, dsLen); i++ {
		if x, y := ns[nsLen-i], ds[dsLen-i]; x != y {
			return x > y
		}
	}
	return nsLen >= dsLen || isZero(ds[:dsLen-nsLen])
}

// cmpHelper compares xs with ys, or with ys shifted right by one bit if
// extraBit is set, the two being aligned by their most significant limbs.
func cmpHelper(xs, ys []Word, extraBit bool) int {
	xsLen := len(xs)
	if !extraBit {
		ysLen := len(ys)
		if xsLen >= ysLen {
			if c := cmpVV(xs[xsLen-ysLen:], ys); c != 0 || isZero(xs[:xsLen-ysLen]) {
				return c
			}
			return 1
		}
		if c := cmpVV(xs, ys[ysLen-xsLen:]); c != 0 || isZero(ys[:ysLen-xsLen]) {
			return c
		}
		return -1
	}

	ysLen := len(ys) - 1
	if xsLen >= ysLen {
		lo := xsLen - ysLen
		for i := ysLen - 1; i >= 0; i-- {
			if c := cmpW(xs[lo+i], ys[i+1]<<(_W-1)|ys[i]>>1); c != 0 {
				return c
			}
		}
		// the bit shifted out of ys[0] lines up with the top of xs[lo-1]
		y := ys[0] << (_W - 1)
		for i := lo - 1; i >= 0; i-- {
			if c := cmpW(xs[i], y); c != 0 {
				return c
			}
			y = 0
		}
		if y != 0 {
			return -1
		}
		return 0
	}
	k := ysLen - xsLen
	for i := xsLen - 1; i >= 0; i-- {
		if c := cmpW(xs[i], ys[k+i+1]<<(_W-1)|ys[k+i]>>1); c != 0 {
			return c
		}
	}
	for i := k - 1; i >= 0; i-- {
		if ys[i+1]<<(_W-1)|ys[i]>>1 != 0 {
			return -1
		}
	}
	if ys[0]&1 != 0 {
		return -1
	}
	return 0
}

func cmpW(x, y Word) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// subHelper sets xs = xs - ys - borrow, with ys shifted right by one bit
// if extraBit is set, and returns the borrow out.
func subHelper(xs, ys []Word, borrow, extraBit bool) bool {
	for i, x := range xs {
		var y Word
		if extraBit {
			y = ys[i+1]<<(_W-1) | ys[i]>>1
		} else if i < len(ys) {
			y = ys[i]
		} else {
			break
		}
		d := x - y
		if borrow {
			d--
		}
		borrow = x < y || borrow && d == _M
		xs[i] = d
	}
	return borrow
}

// divSignificandsShort tries Mulders' short division: an approximate
// quotient with one extra limb is computed from the top limbs of the
// operands and used directly when it provably rounds correctly.
func divSignificandsShort(qs, ns, ds []Word, prec uint, mode RoundingMode, t *Thresholds) (int, Ordering, bool) {
	qsLen := len(qs)
	nsLen, dsLen := len(ns), len(ds)
	n := qsLen + 1
	sh := uint(-prec) % _W
	shiftBit := Word(1) << sh
	shiftMask := shiftBit - 1

	bufp := getNat(2*n + n + n + divHighScratchLen(n))
	defer putNat(bufp)
	buf := *bufp
	xs := buf[:2*n]
	ys := buf[2*n : 3*n]
	qs2 := buf[3*n : 4*n]
	scratch := buf[4*n:]

	if nsLen >= 2*n {
		copy(xs, ns[nsLen-2*n:])
	} else {
		xs[:2*n-nsLen].clear()
		copy(xs[2*n-nsLen:], ns)
	}
	if dsLen >= n {
		copy(ys, ds[dsLen-n:])
	} else {
		ys[:n-dsLen].clear()
		copy(ys[n-dsLen:], ds)
	}

	if !divHigh(qs2, xs, ys, scratch, t) {
		return 0, 0, false
	}
	// the quotient has its integer bit set: shift it in
	shrVU(qs2, qs2, 1)
	qs2[n-1] |= highBit

	// the error is at most 2n+2 ulps of qs2
	p := n*_W - ceilLog2(2*n+2)
	needed := prec
	if mode == Nearest {
		needed++
	}
	if !roundable(qs2, p, needed) {
		return 0, 0, false
	}

	var roundBit bool
	if sh == 0 {
		roundBit = qs2[0]&highBit != 0
	} else {
		roundBit = qs2[1]>>(sh-1)&1 != 0
	}
	copy(qs, qs2[1:])
	qs[0] &^= shiftMask
	expOffset := 1
	up, o := roundTable(mode, roundBit, true, qs[0]&shiftBit != 0)
	if up && addWInPlace(qs, shiftBit) != 0 {
		expOffset++
		qs[qsLen-1] = highBit
	}
	return expOffset, o, true
}
