// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// 2-adic (Hensel) division cancels the dividend from its least significant
// limb up. With D odd, every quotient limb q satisfies N[i] + q*D[0] == 0
// (mod B) for dinv = -1/D[0] mod B and q = dinv*N[i]: adding q*D clears one
// limb at a time. The quotient built that way is -N/D, hence the final
// negation.

// modularDivSchoolbook sets qs[:n] to N/D mod B^n, with N = ns[:n] and
// D = ds[:d], 1 <= d <= n, and dinv = -1/ds[0] mod B. ns is clobbered.
func modularDivSchoolbook(qs, ns, ds nat, dinv Word) {
	n := len(ns)
	d := len(ds)
	if debugNatdiv && (d == 0 || d > n || len(qs) < n || dinv*ds[0] != _M) {
		panic("BUG: modularDivSchoolbook: invalid arguments")
	}
	for i := 0; i < n; i++ {
		q := dinv * ns[i]
		m := min(d, n-i)
		c := addMulVVW(ns[i:i+m], ds[:m], q)
		if i+m < n {
			addWInPlace(ns[i+m:n], c)
		}
		qs[i] = ^q
	}
	addWInPlace(qs[:n], 1)
}

// modularDivModSchoolbook divides N = ns[:nn] by D = ds[:d], d <= nn, and
// sets qs[:nn-d] to the quotient Q = N/D mod B^(nn-d). The remainder R is
// left in ns[nn-d:nn] and satisfies
//
//   N = Q*D + B^(nn-d) * (R - borrow*B^d)
//
// where borrow is the returned flag.
func modularDivModSchoolbook(qs, ns, ds nat, dinv Word) bool {
	nn := len(ns)
	d := len(ds)
	qn := nn - d
	if debugNatdiv && (qn < 0 || len(qs) < qn || dinv*ds[0] != _M) {
		panic("BUG: modularDivModSchoolbook: invalid arguments")
	}
	var hi Word
	for i := 0; i < qn; i++ {
		q := dinv * ns[i]
		c := addMulVVW(ns[i:i+d], ds, q)
		hi += addWInPlace(ns[i+d:nn], c)
		qs[i] = ^q
	}
	if addWInPlace(qs[:qn], 1) != 0 {
		// The accumulated quotient was zero: nothing to subtract.
		return false
	}
	b := subVV(ns[qn:nn], ns[qn:nn], ds)
	if debugNatdiv && hi > b {
		panic("BUG: modularDivModSchoolbook: remainder overflow")
	}
	return b != hi
}
