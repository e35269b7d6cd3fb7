// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !natdiv_pure_go

package natdiv

// Vectors longer than this use the early-exit carry loops.
const largeVWThreshold = 32

func mulWW(x, y Word) (z1, z0 Word) {
	return mulWW_g(x, y)
}

func addVV(z, x, y []Word) (c Word) {
	return addVV_g(z, x, y)
}

func subVV(z, x, y []Word) (c Word) {
	return subVV_g(z, x, y)
}

func addVW(z, x []Word, y Word) (c Word) {
	if len(z) > largeVWThreshold {
		return addVWlarge(z, x, y)
	}
	return addVW_g(z, x, y)
}

func subVW(z, x []Word, y Word) (c Word) {
	if len(z) > largeVWThreshold {
		return subVWlarge(z, x, y)
	}
	return subVW_g(z, x, y)
}

func shlVU(z, x []Word, s uint) (c Word) {
	return shlVU_g(z, x, s)
}

func shrVU(z, x []Word, s uint) (c Word) {
	return shrVU_g(z, x, s)
}

func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	return mulAddVWW_g(z, x, y, r)
}

func addMulVVW(z, x []Word, y Word) (c Word) {
	return addMulVVW_g(z, x, y)
}
