// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the divtune subcommands.
package cmd

import (
	"io"
	"os"

	"github.com/db47h/natdiv/tune"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	profilePath string
	formatName  string

	log *logrus.Entry
)

var rootCmd = &cobra.Command{
	Use:   "divtune",
	Short: "Tune and exercise natdiv division thresholds",
	Long: `divtune measures the operand sizes at which natdiv switches between its
exact division algorithms, checks all algorithms against math/big, and stores
or shows the resulting threshold profiles (TOML or YAML).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "threshold profile to load before running")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", "profile format: toml, yaml or auto")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup configures logging and applies the profile given with --profile.
func setup(cmd *cobra.Command, args []string) error {
	l, err := newLogger(os.Stderr, logLevel)
	if err != nil {
		return err
	}
	log = l
	if profilePath == "" {
		return nil
	}
	format, err := tune.ParseFormat(formatName)
	if err != nil {
		return err
	}
	p, err := tune.LoadProfile(profilePath, format)
	if err != nil {
		return err
	}
	if h := tune.CurrentHost(); !p.Host.Matches(h) {
		log.WithFields(logrus.Fields{
			"profile_host": p.Host.Name(),
			"host":         h.Name(),
		}).Warn("profile was measured on a different host")
	}
	if err := p.Apply(); err != nil {
		return errors.Wrap(err, "apply profile")
	}
	log.WithField("profile", profilePath).Debug("profile applied")
	return nil
}

// newLogger returns a logger writing to w at the given level, tagged with a
// new run id.
func newLogger(w io.Writer, level string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	return l.WithFields(logrus.Fields{"run": uuid.New().String()[:8]}), nil
}

// newProgress returns a progress callback over n steps, drawing a bar when
// stderr is a terminal, and a function to call when done.
func newProgress(n int, title string) (step func(), done func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return func() {}, func() {}
	}
	bar := progressbar.Default(int64(n), title)
	return func() { _ = bar.Add(1) }, func() { _ = bar.Close() }
}
