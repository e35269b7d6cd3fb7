// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

import "math/bits"

// Floor division with remainder. Long division (Knuth's algorithm D with
// 3-by-2 quotient digit refinement) is used for short divisors and
// Burnikel-Ziegler style recursive division above Thresholds.DivRecursive.

// DivMod returns q, r such that q = ⌊ns/ds⌋ and r = ns - q·ds. Both results
// are normalized. It panics if ds is zero.
func DivMod(ns, ds []Word) (q, r []Word) {
	u, v := nat(ns).norm(), nat(ds).norm()
	if len(v) == 0 {
		panic("division by zero")
	}
	if u.cmp(v) < 0 {
		return nil, nat(nil).set(u)
	}
	if len(v) == 1 {
		qs := make(nat, len(u))
		rw := divWVW(qs, 0, u, v[0])
		return qs.norm(), nat(nil).setWord(rw)
	}

	t := currentThresholds()
	n := len(v)
	shift := nlz(v[n-1])
	vs := make(nat, n)
	shlVU(vs, v, shift)
	us := make(nat, len(u)+1)
	us[len(u)] = shlVU(us[:len(u)], u, shift)
	qs := make(nat, len(u)-n+1)
	divLarge(qs, us, vs, t)
	shrVU(us[:n], us[:n], shift)
	return qs.norm(), us[:n].norm()
}

// DivRem divides N = ns by D = ds, where ds's top bit is set and
// len(ns) >= len(ds). The low len(ns)-len(ds) limbs of the quotient are
// stored in qs and its top limb, which is 0 or 1, is returned as a flag. The
// remainder is left in ns[:len(ds)].
func DivRem(qs, ns, ds []Word) (qhigh bool) {
	return divRem(qs, ns, ds, currentThresholds())
}

func divRem(qs, ns, ds []Word, t *Thresholds) (qhigh bool) {
	nn, dn := len(ns), len(ds)
	if dn == 0 || ds[dn-1]&highBit == 0 {
		panic("natdiv: DivRem divisor not normalized")
	}
	if nn < dn || len(qs) < nn-dn {
		panic("natdiv: DivRem buffer too short")
	}
	qn := nn - dn
	q := getNat(qn + 1)
	if dn == 1 {
		r := divWVW(*q, 0, ns, ds[0])
		ns[0] = r
	} else {
		u := getNat(nn + 1)
		copy(*u, ns)
		(*u)[nn] = 0
		divLarge((*q)[:qn+1], *u, ds, t)
		copy(ns[:dn], (*u)[:dn])
		putNat(u)
	}
	copy(qs[:qn], (*q)[:qn])
	qhigh = (*q)[qn] != 0
	putNat(q)
	return qhigh
}

// divLarge sets q to ⌊u/v⌋ and leaves the remainder in u. v must have its top
// bit set and at least 2 limbs; u must have a leading zero limb and q
// len(u)-len(v) limbs.
func divLarge(q, u, v nat, t *Thresholds) {
	if len(v) < t.DivRecursive {
		q.divBasic(u, v)
	} else {
		q.divRecursive(u, v, t)
	}
}

// divBasic performs word-by-word division of u by v.
// The quotient is written in pre-allocated q.
// The remainder overwrites input u.
//
// Precondition:
// - q is large enough to hold the quotient u / v
//   which has a maximum length of len(u)-len(v)+1.
func (q nat) divBasic(u, v nat) {
	n := len(v)
	m := len(u) - n

	qhatvp := getNat(n + 1)
	qhatv := *qhatvp

	// Set up for divWW below, precomputing reciprocal argument.
	vn1 := v[n-1]
	rec := reciprocalWord(vn1)

	for j := m; j >= 0; j-- {
		// The first iteration must invent a leading 0 for u.
		qhat := Word(_M)
		var ujn Word
		if j+n < len(u) {
			ujn = u[j+n]
		}
		// ujn <= vn1, or else qhat would be more than one digit.
		if ujn != vn1 {
			var rhat Word
			qhat, rhat = divWW(ujn, u[j+n-1], vn1, rec)

			// 3-by-2 refinement
			vn2 := v[n-2]
			x1, x2 := mulWW(qhat, vn2)
			ujn2 := u[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prevRhat := rhat
				rhat += vn1
				// rhat overflowed: qhat*vn2 is now definitely smaller.
				if rhat < prevRhat {
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}

		qhatv[n] = mulAddVWW(qhatv[0:n], v, qhat, 0)
		qhl := len(qhatv)
		if j+qhl > len(u) && qhatv[n] == 0 {
			qhl--
		}

		// qhat is at most one too large.
		c := subVV(u[j:j+qhl], u[j:], qhatv)
		if c != 0 {
			c := addVV(u[j:j+n], u[j:], v)
			// If n == qhl, the carry from subVV and the carry from addVV
			// cancel out and don't affect u[j+n].
			if n < qhl {
				u[j+n] += c
			}
			qhat--
		}

		// The caller may know the top digit is zero and not leave room for it.
		if j == m && m == len(q) && qhat == 0 {
			continue
		}
		q[j] = qhat
	}

	putNat(qhatvp)
}

// divRecursive performs word-by-word division of u by v.
// The quotient is written in pre-allocated z.
// The remainder overwrites input u.
func (z nat) divRecursive(u, v nat, t *Thresholds) {
	// Recursion depth is less than 2 log2(len(v)).
	recDepth := 2 * bits.Len(uint(len(v)))
	tmp := getNat(3 * len(v))
	temps := make([]*nat, recDepth)

	z.clear()
	z.divRecursiveStep(u, v, 0, tmp, temps, t)

	for _, n := range temps {
		if n != nil {
			putNat(n)
		}
	}
	putNat(tmp)
}

// divRecursiveStep computes the division of u by v.
// - z must be large enough to hold the quotient
// - the quotient will overwrite z
// - the remainder will overwrite u
func (z nat) divRecursiveStep(u, v nat, depth int, tmp *nat, temps []*nat, t *Thresholds) {
	u = u.norm()
	v = v.norm()
	if len(u) == 0 {
		z.clear()
		return
	}

	n := len(v)
	if n < t.DivRecursive {
		z.divBasic(u, v)
		return
	}

	m := len(u) - n
	if m < 0 {
		return
	}

	// B limbs in a row form a single wide digit.
	B := n / 2

	if temps[depth] == nil {
		temps[depth] = getNat(n)
	} else {
		*temps[depth] = temps[depth].make(B + 1)
	}

	j := m
	for j > B {
		// Divide u[j-B:j+n] (3 wide digits) by v (2 wide digits), first
		// with a (2B+1)-by-(B+1) guess, then extended to the full 3-by-2.
		s := B - 1
		uu := u[j-B:]

		qhat := *temps[depth]
		qhat.clear()
		qhat.divRecursiveStep(uu[s:B+n], v[s:], depth+1, tmp, temps, t)
		qhat = qhat.norm()

		// The top of uu now holds the remainder of the guess: subtracting
		// qhat*v[:s] yields the full remainder. qhat is at most 2 too large.
		qhatv := tmp.make(3 * n)
		qhatv.clear()
		qhatv = qhatv.mul(qhat, v[:s], t)
		for i := 0; i < 2; i++ {
			e := qhatv.cmp(uu.norm())
			if e <= 0 {
				break
			}
			subVW(qhat, qhat, 1)
			c := subVV(qhatv[:s], qhatv[:s], v[:s])
			if len(qhatv) > s {
				subVW(qhatv[s:], qhatv[s:], c)
			}
			addAt(uu[s:], v[s:], 0)
		}
		if qhatv.cmp(uu.norm()) > 0 {
			panic("BUG: divRecursiveStep: quotient guess too large")
		}
		c := subVV(uu[:len(qhatv)], uu[:len(qhatv)], qhatv)
		if c > 0 {
			subVW(uu[len(qhatv):], uu[len(qhatv):], c)
		}
		addAt(z, qhat, j-B)
		j -= B
	}

	// Now u < (v<<B): compute the low limbs the same way.
	s := B - 1
	qhat := *temps[depth]
	qhat.clear()
	qhat.divRecursiveStep(u[s:].norm(), v[s:], depth+1, tmp, temps, t)
	qhat = qhat.norm()
	qhatv := tmp.make(3 * n)
	qhatv.clear()
	qhatv = qhatv.mul(qhat, v[:s], t)
	for i := 0; i < 2; i++ {
		if e := qhatv.cmp(u.norm()); e > 0 {
			subVW(qhat, qhat, 1)
			c := subVV(qhatv[:s], qhatv[:s], v[:s])
			if len(qhatv) > s {
				subVW(qhatv[s:], qhatv[s:], c)
			}
			addAt(u[s:], v[s:], 0)
		}
	}
	if qhatv.cmp(u.norm()) > 0 {
		panic("BUG: divRecursiveStep: quotient guess too large")
	}
	c := subVV(u[0:len(qhatv)], u[0:len(qhatv)], qhatv)
	if c > 0 {
		c = subVW(u[len(qhatv):], u[len(qhatv):], c)
	}
	if c > 0 {
		panic("BUG: divRecursiveStep: negative remainder")
	}

	addAt(z, qhat.norm(), 0)
}

// mul sets z to x*y, normalized. z must not alias x or y.
func (z nat) mul(x, y nat, t *Thresholds) nat {
	x, y = x.norm(), y.norm()
	if len(x) == 0 || len(y) == 0 {
		return z[:0]
	}
	z = z.make(len(x) + len(y))
	mulToOut(z, x, y, t)
	return z.norm()
}

// addAt implements z += x<<(_W*i); z must be long enough.
func addAt(z, x nat, i int) {
	if n := len(x); n > 0 {
		if c := addVV(z[i:i+n], z[i:], x); c > 0 {
			j := i + n
			if j < len(z) {
				addVW(z[j:], z[j:], c)
			}
		}
	}
}
