// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/db47h/natdiv"
	"github.com/db47h/natdiv/tune"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the thresholds in effect as a profile",
	Long: `show prints the thresholds in effect, the built-in defaults or those of the
profile given with --profile, together with a description of this host.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeProfile(cmd, tune.NewProfile(natdiv.CurrentThresholds()), "")
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
