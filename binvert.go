// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package natdiv

// invertTab[i] is the inverse of 2*i+1 modulo 2^8.
var invertTab = [128]byte{
	0x01, 0xab, 0xcd, 0xb7, 0x39, 0xa3, 0xc5, 0xef, 0xf1, 0x1b, 0x3d, 0xa7, 0x29, 0x13, 0x35, 0xdf,
	0xe1, 0x8b, 0xad, 0x97, 0x19, 0x83, 0xa5, 0xcf, 0xd1, 0xfb, 0x1d, 0x87, 0x09, 0xf3, 0x15, 0xbf,
	0xc1, 0x6b, 0x8d, 0x77, 0xf9, 0x63, 0x85, 0xaf, 0xb1, 0xdb, 0xfd, 0x67, 0xe9, 0xd3, 0xf5, 0x9f,
	0xa1, 0x4b, 0x6d, 0x57, 0xd9, 0x43, 0x65, 0x8f, 0x91, 0xbb, 0xdd, 0x47, 0xc9, 0xb3, 0xd5, 0x7f,
	0x81, 0x2b, 0x4d, 0x37, 0xb9, 0x23, 0x45, 0x6f, 0x71, 0x9b, 0xbd, 0x27, 0xa9, 0x93, 0xb5, 0x5f,
	0x61, 0x0b, 0x2d, 0x17, 0x99, 0x03, 0x25, 0x4f, 0x51, 0x7b, 0x9d, 0x07, 0x89, 0x73, 0x95, 0x3f,
	0x41, 0xeb, 0x0d, 0xf7, 0x79, 0xe3, 0x05, 0x2f, 0x31, 0x5b, 0x7d, 0xe7, 0x69, 0x53, 0x75, 0x1f,
	0x21, 0xcb, 0xed, 0xd7, 0x59, 0xc3, 0xe5, 0x0f, 0x11, 0x3b, 0x5d, 0xc7, 0x49, 0x33, 0x55, 0xff,
}

// InvertLimb returns the inverse of the odd word d modulo B, that is the word
// inv such that d*inv == 1 (mod B). It panics if d is even.
func InvertLimb(d Word) Word {
	if d&1 == 0 {
		panic("natdiv: even divisor")
	}
	inv := Word(invertTab[(d>>1)&127]) // 8 bits
	// Each step doubles the number of correct bits.
	inv = 2*inv - inv*inv*d // 16 bits
	inv = 2*inv - inv*inv*d // 32 bits
	if _W == 64 {
		inv = 2*inv - inv*inv*d
	}
	if debugNatdiv && inv*d != 1 {
		panic("BUG: InvertLimb")
	}
	return inv
}

// invertSizes fills sizes with the precisions of the Newton iterations for a
// target of n limbs, largest first, and returns the number of entries. The
// last entry is the base case size, below InvertNewton.
func invertSizes(sizes []int, n int, t *Thresholds) int {
	i := 0
	for ; n >= t.InvertNewton; i++ {
		sizes[i] = n
		n = (n + 1) >> 1
	}
	sizes[i] = n
	return i + 1
}

// modularInvertScratchLen returns the scratch length needed by modularInvert
// for an n limb divisor.
func modularInvertScratchLen(n int, t *Thresholds) int {
	// base case: dividend copy plus exact division scratch
	base := n + dcModularDivScratchLen(n, n, t)
	if n < t.InvertNewton {
		return base
	}
	m := mulModBnm1NextSize(n, t)
	// product residue, wrapped limbs and product scratch
	return max(base, m+n+mulModBnm1ScratchLen(n, n))
}

// InvertOddScratchLen returns the length of the scratch buffer needed by
// InvertOdd for an n limb divisor.
func InvertOddScratchLen(n int) int {
	return modularInvertScratchLen(n, currentThresholds())
}

// InvertOdd sets is[:len(ds)] to the inverse of ds modulo B^len(ds), so that
// ds*is == 1 (mod B^len(ds)). ds[0] must be odd and scratch must hold at
// least InvertOddScratchLen(len(ds)) limbs. is must not overlap ds or
// scratch.
func InvertOdd(is, ds, scratch []Word) {
	n := len(ds)
	if n == 0 {
		panic("natdiv: inversion of an empty vector")
	}
	if ds[0]&1 == 0 {
		panic("natdiv: even divisor")
	}
	t := currentThresholds()
	if len(is) < n || len(scratch) < modularInvertScratchLen(n, t) {
		panic("natdiv: InvertOdd buffer too short")
	}
	modularInvert(is[:n], ds, scratch, t)
}

// modularInvert sets is to the inverse of ds modulo B^n, n = len(ds), by
// Newton's iteration I' = I*(2 - D*I), each step doubling the number of
// correct limbs. The largest products are taken modulo B^m - 1 and unwrapped.
func modularInvert(is, ds, scratch nat, t *Thresholds) {
	n := len(ds)
	var sizes [64]int
	k := invertSizes(sizes[:], n, t)

	// base case: I = 1/D mod B^rn by exact division
	rn := sizes[k-1]
	xs := scratch[:rn]
	xs.clear()
	xs[0] = 1
	dinv := -InvertLimb(ds[0])
	if rn < t.DCModularDiv || rn < 2 {
		modularDivSchoolbook(is[:rn], xs, ds[:rn], dinv)
	} else {
		dcModularDiv(is[:rn], xs, ds[:rn], dinv, scratch[rn:], t)
	}

	for k--; k > 0; k-- {
		size := sizes[k-1]
		m := mulModBnm1NextSize(size, t)
		wn := size + rn - m
		if wn < 0 {
			wn = 0
		}
		// D*I = 1 + B^rn*e; only e mod B^(size-rn) is needed.
		xp := scratch[:m+wn]
		mulModBnm1(xp[:m], ds[:size], is[:rn], scratch[m+wn:], t)
		unwrapModBnm1(xp, xp[:m], unitLow(scratch[m+wn:], rn))
		// is[rn:size] = -I*e mod B^(size-rn)
		hn := size - rn
		mulLow(is[rn:size], is[:hn], xp[rn:size], t)
		negVV(is[rn:size], is[rn:size])
		rn = size
	}
}

// unitLow clears x[:n], sets x[0] to 1 and returns x[:n]: the n low limbs of
// any number congruent to 1 modulo B^n.
func unitLow(x nat, n int) nat {
	x = x[:n]
	x.clear()
	x[0] = 1
	return x
}
