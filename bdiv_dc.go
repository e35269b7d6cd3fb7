// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// Divide-and-conquer 2-adic division. The divisor is split in a low half and
// a high half; the low half quotient is computed recursively, multiplied by
// the high half of the divisor and subtracted from the running remainder
// before the high half quotient is computed the same way. Borrows out of the
// subtractions are threaded explicitly through the recursion.

// dcModularDivScratchLen returns the scratch length needed by dcModularDiv
// for an n limb dividend and a d limb divisor.
func dcModularDivScratchLen(n, d int, t *Thresholds) int {
	return min(n, d)
}

// modularDivModN divides N = ns[:2n] by D = ds[:n] and sets qs[:n] to the
// quotient, with the remainder in ns[n:2n]. See modularDivModSchoolbook for
// the meaning of the returned borrow. scratch must hold n limbs.
func modularDivModN(qs, ns, ds nat, dinv Word, scratch nat, t *Thresholds) bool {
	n := len(ds)
	if n < t.DCModularDivMod {
		return modularDivModSchoolbook(qs[:n], ns[:2*n], ds, dinv)
	}
	return dcModularDivModN(qs, ns, ds, dinv, scratch, t)
}

func dcModularDivModN(qs, ns, ds nat, dinv Word, scratch nat, t *Thresholds) bool {
	n := len(ds)
	lo := n >> 1
	hi := n - lo
	tp := scratch[:n]

	// low half: ns[:2lo] = Q0*D[:lo] + B^lo*(R0 - c*B^lo)
	c := modularDivModN(qs[:lo], ns[:2*lo], ds[:lo], dinv, scratch, t)
	mulToOut(tp, ds[lo:n], qs[:lo], t)
	if c {
		addWInPlace(tp[lo:n], 1)
	}
	rh := subVV(ns[lo:lo+n], ns[lo:lo+n], tp)
	rh = subWInPlace(ns[lo+n:2*n], rh)

	// high half on ns[lo:lo+2hi]; the remainder lands in ns[n:n+hi]
	c = modularDivModN(qs[lo:n], ns[lo:lo+2*hi], ds[:hi], dinv, scratch, t)
	mulToOut(tp, qs[lo:n], ds[hi:n], t)
	if c {
		addWInPlace(tp[hi:n], 1)
	}
	rh += subVV(ns[n:2*n], ns[n:2*n], tp)
	if debugNatdiv && rh > 1 {
		panic("BUG: dcModularDivModN: double borrow")
	}
	return rh != 0
}

// dcModularDiv sets qs[:nn] to N/D mod B^nn, with N = ns[:nn] and D = ds,
// 1 <= len(ds) <= nn. ns is clobbered. scratch must hold
// dcModularDivScratchLen(nn, len(ds)) limbs.
func dcModularDiv(qs, ns, ds nat, dinv Word, scratch nat, t *Thresholds) {
	nn := len(ns)
	dn := len(ds)
	if debugNatdiv && (dn == 0 || dn > nn || len(qs) < nn) {
		panic("BUG: dcModularDiv: invalid arguments")
	}
	if nn <= dn {
		if nn < t.DCModularDiv {
			modularDivSchoolbook(qs[:nn], ns, ds[:nn], dinv)
		} else {
			dcModularDivN(qs[:nn], ns, ds, dinv, scratch, t)
		}
		return
	}

	// The odd sized block goes first so that all remaining blocks are dn
	// limbs long.
	qn := nn % dn
	if qn == 0 {
		qn = dn
	}
	c := modularDivModN(qs[:qn], ns[:2*qn], ds[:qn], dinv, scratch, t)
	var cy Word
	if c {
		cy = 1
	}
	if qn != dn {
		tp := scratch[:dn]
		mulToOut(tp, qs[:qn], ds[qn:dn], t)
		addWInPlace(tp[qn:], cy)
		b := subVV(ns[qn:qn+dn], ns[qn:qn+dn], tp)
		subWInPlace(ns[qn+dn:nn], b)
		cy = 0
	}
	off := qn
	for nn-off > dn {
		subWInPlace(ns[off+dn:nn], cy)
		cy = 0
		if modularDivModN(qs[off:off+dn], ns[off:off+2*dn], ds, dinv, scratch, t) {
			cy = 1
		}
		off += dn
	}
	// the last borrow falls above B^nn
	dcModularDivN(qs[off:nn], ns[off:nn], ds, dinv, scratch, t)
}

// dcModularDivN sets qs[:n] to N/D mod B^n with N = ns[:n], n <= len(ds).
// Only ds[:n] is read.
func dcModularDivN(qs, ns, ds nat, dinv Word, scratch nat, t *Thresholds) {
	n := len(ns)
	for n >= t.DCModularDiv {
		lo := n >> 1
		hi := n - lo
		c := modularDivModN(qs[:lo], ns[:2*lo], ds[:lo], dinv, scratch, t)
		// (N - Q0*D) / B^lo mod B^hi
		tp := scratch[:hi]
		mulLow(tp, qs[:lo], ds[lo:n], t)
		if c && lo < hi {
			addWInPlace(tp[lo:], 1)
		}
		subVV(ns[lo:n], ns[lo:n], tp)
		qs = qs[lo:]
		ns = ns[lo:]
		n = hi
	}
	modularDivSchoolbook(qs[:n], ns[:n], ds[:n], dinv)
}
