// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context_test

import (
	"fmt"

	"github.com/db47h/natdiv"
	"github.com/db47h/natdiv/context"
)

// ratio returns x/y as a decimal string, or an error if the quotient cannot
// be computed exactly at ctx's precision.
func ratio(ctx *context.Context, x, y uint) (string, error) {
	z, e, _ := ctx.QuoInt([]natdiv.Word{natdiv.Word(x)}, []natdiv.Word{natdiv.Word(y)})
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%d/%d: %w", x, y, err)
	}
	return natdiv.SignificandFloat(z, e).Text('g', 10), nil
}

// Example demonstrates error handling with Contexts.
func Example() {
	ctx := context.New(10, natdiv.Exact)
	for _, p := range [][2]uint{{10, 4}, {1, 3}, {3, 8}} {
		s, err := ratio(ctx, p[0], p[1])
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%d/%d = %s\n", p[0], p[1], s)
	}
	//
	// Output:
	// 10/4 = 2.5
	// 1/3: natdiv: inexact float division
	// 3/8 = 0.375
}
