// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// Barrett style 2-adic division: the quotient is produced in blocks of in
// limbs by multiplying the running remainder with a precomputed in limb
// inverse of the divisor, so that a single inversion serves the whole
// division.

// muModularDivInvertSize returns the size of the inverse used to divide an
// nn limb number by a dn limb one.
func muModularDivInvertSize(qn, dn int) int {
	if qn > dn {
		b := (qn-1)/dn + 1 // number of blocks
		return (qn-1)/b + 1
	}
	return qn - qn>>1
}

// muModularDivScratchLen returns the scratch length needed by muModularDiv
// for an nn limb dividend and a dn limb divisor.
func muModularDivScratchLen(nn, dn int, t *Thresholds) int {
	qn := nn
	dn = min(dn, qn)
	in := muModularDivInvertSize(qn, dn)
	inv := modularInvertScratchLen(in, t)
	if qn > dn {
		tn := max(dn+in, mulModBnm1NextSize(dn, t))
		return in + max(inv, dn+tn+mulModBnm1ScratchLen(dn, in))
	}
	tn := max(qn+in, mulModBnm1NextSize(qn, t))
	return in + max(inv, tn+(qn-in)+mulModBnm1ScratchLen(qn, in))
}

// muModularDiv sets qs[:nn] to N/D mod B^nn, with N = ns[:nn] and D = ds,
// 1 <= len(ds) <= nn, ds[0] odd. ns is not modified. scratch must hold
// muModularDivScratchLen(nn, len(ds)) limbs.
func muModularDiv(qs, ns, ds, scratch nat, t *Thresholds) {
	qn := len(ns)
	dn := len(ds)
	if debugNatdiv && (dn == 0 || dn > qn || len(qs) < qn || ds[0]&1 == 0) {
		panic("BUG: muModularDiv: invalid arguments")
	}
	in := muModularDivInvertSize(qn, dn)
	ip := scratch[:in]
	modularInvert(ip, ds[:in], scratch[in:], t)
	if qn > dn {
		muModularDivUnbalanced(qs[:qn], ns, ds, ip, scratch[in:], t)
	} else {
		muModularDivBalanced(qs[:qn], ns, ds[:qn], ip, scratch[in:], t)
	}
}

// mulHigh sets tp[:len(d)+len(q)] to d*q, given that the low len(low) limbs
// of the product are known to equal low. Large products are computed modulo
// B^tn - 1 and unwrapped with the known limbs.
func mulHigh(tp, d, q, low, scratch nat, t *Thresholds) {
	pn := len(d) + len(q)
	if len(q) < t.MuModularDivMulMod {
		mulToOut(tp, d, q, t)
		return
	}
	tn := mulModBnm1NextSize(len(d), t)
	mulModBnm1(tp[:tn], d, q, scratch, t)
	if pn > tn {
		unwrapModBnm1(tp[:pn], tp[:tn], low)
	}
}

func muModularDivUnbalanced(qs, ns, ds, ip, scratch nat, t *Thresholds) {
	qn := len(qs)
	dn := len(ds)
	in := len(ip)
	rp := scratch[:dn]
	tn := max(dn+in, mulModBnm1NextSize(dn, t))
	tp := scratch[dn : dn+tn]
	sp := scratch[dn+tn:]

	copy(rp, ns[:dn])
	np := dn
	mulLow(qs[:in], rp[:in], ip, t)
	qp := 0
	qn -= in
	var cy Word

	for {
		// T = D*Q; its low in limbs cancel rp[:in].
		mulHigh(tp, ds, qs[qp:qp+in], rp[:in], sp, t)
		qp += in
		if dn != in {
			cy += subVV(rp[:dn-in], rp[in:dn], tp[in:dn])
			if cy == 2 {
				addWInPlace(tp[dn:dn+in], 1)
				cy = 1
			}
		}
		if qn <= in {
			break
		}
		cy = subVWithBorrow(rp[dn-in:dn], ns[np:np+in], tp[dn:dn+in], cy)
		np += in
		mulLow(qs[qp:qp+in], rp[:in], ip, t)
		qn -= in
	}

	// last qn <= in limbs: only the low qn limbs of the remainder matter
	if h := qn - (dn - in); h > 0 {
		subVWithBorrow(rp[dn-in:dn-in+h], ns[np:np+h], tp[dn:dn+h], cy)
	}
	mulLow(qs[qp:qp+qn], rp[:qn], ip[:qn], t)
}

func muModularDivBalanced(qs, ns, ds, ip, scratch nat, t *Thresholds) {
	qn := len(qs)
	in := len(ip)
	mulLow(qs[:in], ns[:in], ip, t)
	if qn == in {
		return
	}
	tn := max(qn+in, mulModBnm1NextSize(qn, t))
	tp := scratch[:tn]
	rp := scratch[tn : tn+qn-in]
	sp := scratch[tn+qn-in:]
	mulHigh(tp, ds, qs[:in], ns[:in], sp, t)
	subVV(rp, ns[in:qn], tp[in:qn])
	mulLow(qs[in:qn], rp, ip[:qn-in], t)
}

// subVWithBorrow sets z = x - y - b and returns the borrow out.
func subVWithBorrow(z, x, y []Word, b Word) Word {
	c := subVV(z, x, y)
	return c + subWInPlace(z, b)
}
