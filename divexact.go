// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// DivExactLimb sets qs[:len(ns)] to ns/d where d is a nonzero word that
// divides ns exactly. qs may be the same slice as ns. If d does not divide ns
// the result is unspecified.
func DivExactLimb(qs, ns []Word, d Word) {
	if d == 0 {
		panic("division by zero")
	}
	n := len(ns)
	if n == 0 {
		return
	}
	if len(qs) < n {
		panic("natdiv: DivExactLimb quotient buffer too short")
	}
	shift := ntz(d)
	d >>= shift
	inv := InvertLimb(d)
	if shift == 0 {
		l := ns[0] * inv
		qs[0] = l
		var c Word
		for i := 1; i < n; i++ {
			h, _ := mulWW(l, d)
			c += h
			s := ns[i]
			l = s - c
			c = borrow(s, c)
			l *= inv
			qs[i] = l
		}
		return
	}
	var c Word
	s := ns[0]
	for i := 1; i < n; i++ {
		next := ns[i]
		ls := s>>shift | next<<(_W-shift)
		s = next
		l := ls - c
		c = borrow(ls, c)
		l *= inv
		qs[i-1] = l
		h, _ := mulWW(l, d)
		c += h
	}
	qs[n-1] = (s>>shift - c) * inv
}

// borrow returns 1 if x - y underflows.
func borrow(x, y Word) Word {
	if x < y {
		return 1
	}
	return 0
}

// divExactAlgScratchLen returns the scratch length of the 2-adic division
// chosen for a qn limb quotient and a dn limb (odd) divisor, dn <= qn.
func divExactAlgScratchLen(qn, dn int, t *Thresholds) int {
	switch {
	case dn < t.DCModularDiv:
		return 0
	case dn < t.MuModularDiv:
		return dcModularDivScratchLen(qn, dn, t)
	}
	return muModularDivScratchLen(qn, dn, t)
}

// muModularDivScratchBound is an upper bound of muModularDivScratchLen(qn, d)
// for all d <= dn <= qn.
func muModularDivScratchBound(dn int, t *Thresholds) int {
	return dn + max(modularInvertScratchLen(dn, t), 3*dn+max(2*dn, mulModBnm1NextSize(dn, t)))
}

// divExactScratchLen returns a scratch length that suits any divisor
// obtained from a dn limb one by stripping low zero limbs.
func divExactScratchLen(nn, dn int, t *Thresholds) int {
	if dn <= 1 {
		return 0
	}
	qn := nn - dn + 1
	dc := min(dn, qn)
	alg := dc
	if dc >= t.MuModularDiv {
		alg = muModularDivScratchBound(dc, t)
	}
	return qn + 1 + min(dn, qn+1) + alg
}

// DivExactScratchLen returns the length of the scratch buffer needed by the
// DivExactToOut functions for an nn limb dividend and a dn limb divisor.
func DivExactScratchLen(nn, dn int) int {
	return divExactScratchLen(nn, dn, currentThresholds())
}

// DivExact returns ns/ds, where ds divides ns exactly. The result is
// normalized. Neither ns nor ds is modified.
//
// ds must be normalized (non-zero top limb) and len(ns) >= len(ds). If ds does
// not divide ns exactly, the result is unspecified.
func DivExact(ns, ds []Word) []Word {
	return currentThresholds().DivExact(ns, ds)
}

// DivExact is like the package level DivExact but chooses the division
// algorithm from t's crossovers. t must be valid.
func (t *Thresholds) DivExact(ns, ds []Word) []Word {
	ns = nat(ns).norm()
	checkDivExact(ns, ds)
	if len(ns) < len(ds) {
		return nil
	}
	qs := make(nat, len(ns)-len(ds)+1)
	scratch := make(nat, divExactScratchLen(len(ns), len(ds), t))
	divExact(qs, ns, ds, false, false, scratch, t)
	return qs.norm()
}

// DivExactToOut sets qs[:len(ns)-len(ds)+1] to ns/ds. Both ns and ds are
// clobbered. qs must not overlap ns or ds. scratch must hold at least
// DivExactScratchLen(len(ns), len(ds)) limbs.
func DivExactToOut(qs, ns, ds, scratch []Word) {
	divExactToOut(qs, ns, ds, scratch, true, true)
}

// DivExactToOutValRef is like DivExactToOut but leaves ds untouched.
func DivExactToOutValRef(qs, ns, ds, scratch []Word) {
	divExactToOut(qs, ns, ds, scratch, true, false)
}

// DivExactToOutRefVal is like DivExactToOut but leaves ns untouched.
func DivExactToOutRefVal(qs, ns, ds, scratch []Word) {
	divExactToOut(qs, ns, ds, scratch, false, true)
}

// DivExactToOutRefRef is like DivExactToOut but leaves both ns and ds
// untouched.
func DivExactToOutRefRef(qs, ns, ds, scratch []Word) {
	divExactToOut(qs, ns, ds, scratch, false, false)
}

func divExactToOut(qs, ns, ds, scratch []Word, nsOwned, dsOwned bool) {
	checkDivExact(ns, ds)
	nn, dn := len(ns), len(ds)
	if nn < dn {
		panic("natdiv: dividend shorter than divisor")
	}
	t := currentThresholds()
	qn := nn - dn + 1
	if len(qs) < qn {
		panic("natdiv: quotient buffer too short")
	}
	if len(scratch) < divExactScratchLen(nn, dn, t) {
		panic("natdiv: scratch buffer too short")
	}
	divExact(qs[:qn], ns, ds, nsOwned, dsOwned, scratch, t)
}

func checkDivExact(ns, ds []Word) {
	if len(ds) == 0 || ds[len(ds)-1] == 0 {
		if isZero(ds) {
			panic("division by zero")
		}
		panic("natdiv: divisor not normalized")
	}
}

// divExact sets qs[:len(ns)-len(ds)+1] to ns/ds. ns (resp. ds) is used as
// work space if nsOwned (resp. dsOwned) is set, otherwise it is copied into
// scratch when it needs to be modified.
func divExact(qs, ns, ds nat, nsOwned, dsOwned bool, scratch nat, t *Thresholds) {
	qn := len(ns) - len(ds) + 1
	qs = qs[:qn]
	for ds[0] == 0 {
		ds = ds[1:]
		ns = ns[1:]
	}
	if len(ds) == 1 {
		DivExactLimb(qs, ns, ds[0])
		return
	}

	dn := len(ds)
	nbuf := scratch[:qn+1]
	ss := min(dn, qn+1)
	dbuf := scratch[qn+1 : qn+1+ss]
	as := scratch[qn+1+ss:]
	dc := min(dn, qn)
	inPlace := dc < t.MuModularDiv // schoolbook and divide-and-conquer clobber N

	if shift := ntz(ds[0]); shift > 0 {
		// dn >= 2 implies len(ns) > qn: there is always a limb to shift from.
		if dsOwned {
			dbuf = ds[:ss]
		}
		shrVU(dbuf, ds[:ss], shift)
		ds = dbuf
		if nsOwned {
			nbuf = ns[:qn+1]
		}
		shrVU(nbuf, ns[:qn+1], shift)
		ns = nbuf
	} else if inPlace && !nsOwned {
		copy(nbuf, ns[:qn])
		ns = nbuf
	}
	ns = ns[:qn]
	ds = ds[:dc]

	if debugNatdiv && len(as) < divExactAlgScratchLen(qn, dc, t) {
		panic("BUG: divExact: scratch too short")
	}
	switch {
	case dc < t.DCModularDiv:
		modularDivSchoolbook(qs, ns, ds, -InvertLimb(ds[0]))
	case dc < t.MuModularDiv:
		dcModularDiv(qs, ns, ds, -InvertLimb(ds[0]), as, t)
	default:
		muModularDiv(qs, ns, ds, as, t)
	}
}
