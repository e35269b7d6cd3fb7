// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// Division of floating-point significands.
//
// A significand of precision prec is stored in ceil(prec/_W) limbs, with the
// top bit of the top limb set and the low -prec mod _W bits of the low limb
// cleared. It stands for the fraction x = ns / B^len(ns) in [1/2, 1).
//
// The quotient of x by y lies in (1/2, 2). The division functions return its
// significand z rounded to prec bits together with an exponent offset e such
// that x/y ~ z/B^len(z) * 2^e, and the Ordering of the rounded value
// relative to the exact quotient. e is 1 when x >= y and 0 otherwise, plus one
// if rounding carried out of the top bit, in which case z is 1000...0.

// DivSignificands returns the significand of ns/ds rounded to prec bits in
// the given rounding mode. Neither ns nor ds is modified.
//
// nPrec and dPrec are the precisions of ns and ds. DivSignificands panics if
// a significand is not normalized or its length does not match its
// precision, if prec is 0, and with ErrInexact if mode is Exact and the
// quotient is not representable at prec bits.
func DivSignificands(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode) (z []Word, expOffset int, o Ordering) {
	return currentThresholds().DivSignificands(ns, nPrec, ds, dPrec, prec, mode)
}

// DivSignificands is like the package level DivSignificands but chooses the
// division algorithm from t's crossovers. t must be valid.
func (t *Thresholds) DivSignificands(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode) (z []Word, expOffset int, o Ordering) {
	checkSignificands(ns, nPrec, ds, dPrec, prec)
	z = make(nat, limbsFor(prec))
	expOffset, o = divSignificands(z, ns, nPrec, ds, dPrec, prec, mode, t)
	return z, expOffset, o
}

// DivSignificandsInPlace is like DivSignificands but takes both operands by
// value: the result reuses the storage of ns if its capacity allows, and ds
// may be clobbered.
//
// The InPlace, InPlaceRef and RefVal variants mirror the ownership flavors of
// DivExactToOut. The current implementation never writes to ds, so the
// variants only differ in where the result is stored.
func DivSignificandsInPlace(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode) (z []Word, expOffset int, o Ordering) {
	return divSignificandsInPlace(ns, nPrec, ds, dPrec, prec, mode)
}

// DivSignificandsInPlaceRef is like DivSignificandsInPlace but leaves ds
// untouched.
func DivSignificandsInPlaceRef(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode) (z []Word, expOffset int, o Ordering) {
	return divSignificandsInPlace(ns, nPrec, ds, dPrec, prec, mode)
}

// DivSignificandsRefVal is like DivSignificands but ds may be clobbered.
func DivSignificandsRefVal(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode) (z []Word, expOffset int, o Ordering) {
	return DivSignificands(ns, nPrec, ds, dPrec, prec, mode)
}

func divSignificandsInPlace(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode) (z []Word, expOffset int, o Ordering) {
	checkSignificands(ns, nPrec, ds, dPrec, prec)
	qn := limbsFor(prec)
	tp := getNat(qn)
	defer putNat(tp)
	expOffset, o = divSignificands(*tp, ns, nPrec, ds, dPrec, prec, mode, currentThresholds())
	z = nat(ns[:0]).make(qn)
	copy(z, *tp)
	return z, expOffset, o
}

// limbsFor returns the number of limbs of a prec bits significand.
func limbsFor(prec uint) int {
	return int((prec + _W - 1) / _W)
}

func checkSignificands(ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint) {
	if prec == 0 {
		panic("natdiv: zero precision")
	}
	checkSignificand(ns, nPrec)
	checkSignificand(ds, dPrec)
}

func checkSignificand(xs []Word, prec uint) {
	switch {
	case len(xs) == 0 || isZero(xs):
		panic("division by zero")
	case len(xs) != limbsFor(prec):
		panic("natdiv: significand length does not match its precision")
	case xs[len(xs)-1]&highBit == 0:
		panic("natdiv: significand not normalized")
	}
}

// divSignificands sets qs, of limbsFor(prec) limbs, to the rounded quotient.
// qs must not overlap ns or ds.
func divSignificands(qs, ns []Word, nPrec uint, ds []Word, dPrec uint, prec uint, mode RoundingMode, t *Thresholds) (int, Ordering) {
	if nPrec == dPrec && prec == nPrec {
		switch {
		case prec < _W:
			q, inc, o := divSignificandsLtW(ns[0], ds[0], prec, mode)
			qs[0] = q
			return b2i(inc), o
		case prec == _W:
			q, inc, o := divSignificandsW(ns[0], ds[0], mode)
			qs[0] = q
			return b2i(inc), o
		case prec < 2*_W:
			q0, q1, e, o := divSignificandsLt2W(ns[0], ns[1], ds[0], ds[1], prec, mode)
			qs[0], qs[1] = q0, q1
			return e, o
		}
	}
	if len(ds) == 1 {
		return divSignificandsLongByShort(qs, ns, ds[0], prec, mode)
	}
	return divSignificandsGeneral(qs, ns, ds, prec, mode, t)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// roundTable applies the final rounding decision: given the round and
// sticky bits of a truncated quotient z whose ulp is shiftBit, it reports
// whether z must be incremented and the resulting Ordering.
func roundTable(mode RoundingMode, roundBit, sticky bool, odd bool) (inc bool, o Ordering) {
	if !roundBit && !sticky {
		return false, Equal
	}
	switch mode {
	case Exact:
		panicInexact()
	case Nearest:
		if !roundBit || !sticky && !odd {
			return false, Less
		}
		return true, Greater
	case Floor, Down:
		return false, Less
	}
	return true, Greater
}

// divSignificandsLtW divides single limb significands of the same precision
// prec < _W.
func divSignificandsLtW(x, y Word, prec uint, mode RoundingMode) (Word, bool, Ordering) {
	sh := _W - prec
	shiftBit := Word(1) << sh
	halfShiftBit := shiftBit >> 1
	mask := shiftBit - 1
	inc := x >= y
	if inc {
		x -= y
	}
	// approximate quotient floor(x*B/y), at most 2 too small
	hi, _ := mulWW(x, invertHigh(y))
	roundBit := hi + x
	q := roundBit
	if inc {
		q >>= 1
	}
	var sticky Word
	if (q+2)&(mask>>1) > 2 {
		// the approximation is good enough to round, and never exact
		roundBit = q & halfShiftBit
		sticky = 1
	} else {
		q = roundBit
		hi, lo := mulWW(q, y)
		if debugNatdiv && !(hi < x || hi == x && lo == 0) {
			panic("BUG: divSignificandsLtW: quotient overestimated")
		}
		hi, lo = sub2WW(x, 0, hi, lo)
		for i := 0; i < 2; i++ {
			if hi != 0 || lo >= y {
				q++
				if lo < y {
					hi--
				}
				lo -= y
			}
		}
		if debugNatdiv && (hi != 0 || lo >= y) {
			panic("BUG: divSignificandsLtW: remainder too large")
		}
		if inc {
			sticky = lo | q&1
			q >>= 1
		} else {
			sticky = lo
		}
		roundBit = q & halfShiftBit
		sticky |= q & (mask >> 1)
	}
	z := (highBit | q) &^ mask
	up, o := roundTable(mode, roundBit != 0, sticky != 0, z&shiftBit != 0)
	if up {
		z += shiftBit
	}
	return z, inc, o
}

// divSignificandsW divides single limb significands of precision _W.
func divSignificandsW(x, y Word, mode RoundingMode) (Word, bool, Ordering) {
	inc := x >= y
	if inc {
		x -= y
	}
	hi, _ := mulWW(x, invertHigh(y))
	q := x + hi
	// the exact quotient is q, q+1 or q+2
	hi, lo := mulWW(q, y)
	if debugNatdiv && !(hi < x || hi == x && lo == 0) {
		panic("BUG: divSignificandsW: quotient overestimated")
	}
	hi, lo = sub2WW(x, 0, hi, lo)
	for i := 0; i < 2; i++ {
		if hi != 0 || lo >= y {
			q++
			if lo < y {
				hi--
			}
			lo -= y
		}
	}
	if debugNatdiv && (hi != 0 || lo >= y) {
		panic("BUG: divSignificandsW: remainder too large")
	}
	// (x - inc*y)*B = q*y + lo, 0 <= lo < y
	var z, sticky Word
	var roundBit bool
	if inc {
		roundBit = q&1 != 0
		z = highBit | q>>1
		sticky = lo
	} else {
		// lo+lo overflowing means 2*lo > y
		twoLo := lo << 1
		roundBit = twoLo < lo || twoLo >= y
		z = q
		sticky = lo
		if roundBit {
			sticky = twoLo - y
		}
	}
	up, o := roundTable(mode, roundBit, sticky != 0, z&1 != 0)
	if up {
		z++
	}
	return z, inc, o
}

// div2Approx returns an approximation q1*B + q0 of floor(x*B^2/y) for
// x = x1*B + x0 < y = y1*B + y0, y normalized. The approximation is at most
// 21 below the exact value.
func div2Approx(x1, x0, y1, y0 Word) (q1, q0 Word) {
	// lower approximation of B^2/(y1+1) - B
	var inv Word
	if y1 != _M {
		inv = invertHigh(y1 + 1)
	}
	hi, _ := mulWW(x1, inv)
	q1 = hi + x1
	// q1*(y1*B+y0) into r1:r0:yy, subtracted from x1:x0:0
	r1, r0 := mulWW(q1, y1)
	xx, yy := mulWW(q1, y0)
	r0 += xx
	if r0 < xx {
		r1++
	}
	// yy is dropped: bump r0 so that the remainder stays a lower bound
	if yy != 0 {
		r0++
		if r0 == 0 {
			r1++
		}
	}
	r1 = x1 - r1
	if x0 < r0 {
		r1--
	}
	r0 = x0 - r0
	if debugNatdiv && r1&highBit != 0 {
		panic("BUG: div2Approx: negative remainder")
	}
	// the second limb is approximately (r1*B + r0)*(B + inv)/B
	q1 += r1
	hi, _ = mulWW(r0, inv)
	r0 += hi
	if r0 < hi {
		q1++
	}
	if debugNatdiv && r1 > 4 {
		panic("BUG: div2Approx: remainder too large")
	}
	for i := Word(0); i < r1; i++ {
		r0 += inv
		if r0 < inv {
			q1++
		}
	}
	return q1, r0
}

// divSignificandsLt2W divides two limb significands of the same precision
// _W < prec < 2*_W.
func divSignificandsLt2W(x0, x1, y0, y1 Word, prec uint, mode RoundingMode) (z0, z1 Word, expOffset int, o Ordering) {
	sh := 2*_W - prec
	shiftBit := Word(1) << sh
	mask := shiftBit - 1
	inc := x1 > y1 || x1 == y1 && x0 >= y0
	if inc {
		x1, x0 = sub2WW(x1, x0, y1, y0)
	}
	q1, q0 := div2Approx(x1, x0, y1, y0)
	var sticky Word
	if (q0+21)&(mask>>1) > 21 {
		// roundable from the approximation: the quotient is not exact
		sticky = 1
	} else {
		// The remainder is at most 21*y, so the low 3 limbs of q*y are
		// enough.
		s1, s0 := mulWW(q0, y0)
		s2, lo := mulWW(q0, y1)
		s1 += lo
		if s1 < lo {
			s2++
		}
		hi, lo := mulWW(q1, y0)
		s2 += hi
		s1 += lo
		if s1 < lo {
			s2++
		}
		s2 += q1 * y1
		// x0:0:0 - s2:s1:s0
		s2 = x0 - s2
		s1 = -s1
		if s0 != 0 {
			s0 = -s0
			s1--
		}
		if s1 != 0 || s0 != 0 {
			s2--
		}
		for s2 > 0 || s1 > y1 || s1 == y1 && s0 >= y0 {
			q0++
			if q0 == 0 {
				q1++
			}
			if s1 < y1 || s1 == y1 && s0 < y0 {
				s2--
			}
			s1, s0 = sub2WW(s1, s0, y1, y0)
		}
		sticky = s1 | s0
	}
	if inc {
		sticky |= q0 & 1
		q0 = q1<<(_W-1) | q0>>1
		q1 = highBit | q1>>1
	}
	roundBit := q0 & (shiftBit >> 1)
	sticky |= (q0 & mask) ^ roundBit
	z1 = q1
	z0 = q0 &^ mask
	expOffset = b2i(inc)
	up, o := roundTable(mode, roundBit != 0, sticky != 0, z0&shiftBit != 0)
	if up {
		z0 += shiftBit
		if z0 < shiftBit {
			z1++
			if z1 == 0 {
				z1 = highBit
				expOffset++
			}
		}
	}
	return z0, z1, expOffset, o
}
