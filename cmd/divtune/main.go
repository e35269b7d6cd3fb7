// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command divtune measures, verifies and shows the algorithm crossover
// thresholds of package natdiv, and runs one-off divisions.
package main

import (
	"os"

	"github.com/db47h/natdiv/cmd/divtune/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
