// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package natdiv implements division of arbitrary-precision natural numbers
stored as little-endian Word slices, the way math/big stores the absolute
value of a big.Int.

Three families of operations are provided.

Exact division computes N/D when D is known to divide N. It works from the
low end of the operands using 2-adic (Hensel) division: the quotient limbs
are obtained by multiplying with the inverse of D modulo B = 2**_W, which
avoids the quotient digit estimation of ordinary long division.

    q := natdiv.DivExact(ns, ds)

Depending on the divisor length, the schoolbook loop, a divide-and-conquer
recursion or Barrett's method with a Newton-computed inverse is used. The
crossover sizes are held in a Thresholds value; see SetThresholds and the
divtune command, which measures them for a given host.

The DivExactToOut functions perform the same operation into caller provided
buffers. They come in four flavors that differ in which operands they are
allowed to clobber:

    func DivExactToOut(qs, ns, ds, scratch []Word)       // ns and ds
    func DivExactToOutValRef(qs, ns, ds, scratch []Word) // ns only
    func DivExactToOutRefVal(qs, ns, ds, scratch []Word) // ds only
    func DivExactToOutRefRef(qs, ns, ds, scratch []Word) // neither

Floor division with remainder is available as DivMod for any divisor, and as
DivRem for a normalized divisor and caller provided buffers.

Finally, DivSignificands divides floating-point significands and rounds the
quotient to a given precision in one of six rounding modes:

    z, e, o := natdiv.DivSignificands(xs, 128, ys, 128, 100, natdiv.Nearest)

The result significand z has its top bit set, e is the binary exponent
offset of the quotient (0, 1 or, after a carry, 2) and o tells whether z is
Less than, Equal to or Greater than the exact quotient. In Exact mode an
inexact quotient panics with ErrInexact; the context subpackage turns these
panics into errors.

Unless documented otherwise, functions panic on contract violations such as a
zero or unnormalized divisor or too short buffers. Internal consistency
checks panic with a message prefixed by "BUG:".
*/
package natdiv
