// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements string conversion of limb vectors.

package natdiv

import (
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

var (
	errNoDigits = errors.New("number has no digits")
	errInvalSep = errors.New("'_' must separate successive digits")
)

// ParseNat parses s as an unsigned integer and returns its normalized limbs.
// A prefix of "0b", "0o" or "0x" selects base 2, 8 or 16; otherwise the
// base is 10. Underscores may separate successive digits. Leading white space
// is ignored.
func ParseNat(s string) ([]Word, error) {
	r := strings.NewReader(s)
	z, err := ScanNat(r)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", s)
	}
	if r.Len() > 0 {
		return nil, errors.Errorf("parse %q: trailing characters", s)
	}
	return z, nil
}

// ScanNat skips white space and reads an unsigned integer from r, with the
// syntax accepted by ParseNat. It stops at the first byte that cannot be part
// of the number and leaves it unread.
func ScanNat(r io.ByteScanner) ([]Word, error) {
	if err := skipSpace(r); err != nil {
		if err == io.EOF {
			return nil, errNoDigits
		}
		return nil, err
	}
	return nat(nil).scan(r)
}

// FormatNat returns the representation of x in the given base, 2 <= base <=
// 62, using lower-case letters for digit values >= 10.
func FormatNat(x []Word, base int) string {
	return nat(x).norm().toBig().Text(base)
}

func (z nat) scan(r io.ByteScanner) (res nat, err error) {
	// prev encodes the previously seen char: it is one
	// of '_', '0' (a digit), or '.' (anything else).
	prev := '.'
	invalSep := false
	count := 0

	ch, err := r.ReadByte()
	b := 10
	if err == nil && ch == '0' {
		prev = '0'
		count = 1
		ch, err = r.ReadByte()
		if err == nil {
			switch ch {
			case 'b', 'B':
				b = 2
			case 'o', 'O':
				b = 8
			case 'x', 'X':
				b = 16
			}
			if b != 10 {
				count = 0 // prefix is not counted
				ch, err = r.ReadByte()
			}
		}
	}

	z = z[:0]
	b1 := Word(b)
	for err == nil {
		if ch == '_' {
			if prev != '0' {
				invalSep = true
			}
			prev = '_'
		} else {
			var d1 Word
			switch {
			case '0' <= ch && ch <= '9':
				d1 = Word(ch - '0')
			case 'a' <= ch && ch <= 'z':
				d1 = Word(ch - 'a' + 10)
			case 'A' <= ch && ch <= 'Z':
				d1 = Word(ch - 'A' + 10)
			default:
				d1 = b1
			}
			if d1 >= b1 {
				err = r.UnreadByte() // ch does not belong to number anymore
				break
			}
			prev = '0'
			count++
			z = z.mulAddWW(b1, d1)
		}
		ch, err = r.ReadByte()
	}
	if err == io.EOF {
		err = nil
	}
	if err == nil && (invalSep || prev == '_') {
		err = errInvalSep
	}
	if count == 0 {
		err = errNoDigits
	}
	return z.norm(), err
}

// mulAddWW sets z to z*y + r.
func (z nat) mulAddWW(y, r Word) nat {
	if c := mulAddVWW(z, z, y, r); c != 0 {
		z = append(z, c)
	}
	return z
}

// Significand returns x as a floating-point significand: a copy of x
// shifted so that the top bit of its top limb is set, with precision
// len(s)*_W, and the exponent e such that x = s/B^len(s) * 2^e.
// It panics if x is zero.
func Significand(x []Word) (s []Word, prec uint, e int) {
	xs := nat(x).norm()
	if len(xs) == 0 {
		panic("natdiv: zero has no significand")
	}
	z := make(nat, len(xs))
	shlVU(z, xs, nlz(xs[len(xs)-1]))
	return z, uint(len(z)) * _W, xs.bitLen()
}

// SignificandFloat returns the value s/B^len(s) * 2^e as a big.Float with
// the precision of s.
func SignificandFloat(s []Word, e int) *big.Float {
	m := new(big.Float).SetInt(nat(s).toBig())
	m.SetMantExp(m, e-len(s)*_W)
	return m
}
