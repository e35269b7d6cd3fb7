// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/natdiv"
)

// run executes divtune with args and returns its standard output. Flag
// variables keep their values across executions, so they are reset first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logLevel, profilePath, formatName = "warn", "", "auto"
	divFlags.exact, divFlags.prec, divFlags.base, divFlags.digits = false, 0, 10, 0
	divFlags.mode = modeValue(natdiv.Nearest)
	calibrateFlags.sizes, calibrateFlags.reps, calibrateFlags.out, calibrateFlags.timings = nil, 5, "", false
	verifyFlags.rounds, verifyFlags.maxLimbs, verifyFlags.workers = 1000, 64, 0

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDiv(t *testing.T) {
	td := []struct {
		args []string
		out  string
	}{
		{[]string{"div", "100", "7"}, "14 2\n"},
		{[]string{"div", "--base", "16", "0x1_0000_0000_0000_0000_0001", "0x10"}, "10000000000000000000 1\n"},
		{[]string{"div", "--exact", "56088", "456"}, "123\n"},
		{[]string{"div", "--exact", "0", "456"}, "0\n"},
		{[]string{"div", "--prec", "10", "--mode", "Exact", "10", "4"}, "2.5 (Equal)\n"},
		{[]string{"div", "--prec", "24", "--mode", "Down", "1", "3"}, "0.3333333 (Less)\n"},
		{[]string{"div", "--prec", "24", "--digits", "3", "1", "3"}, "0.333 (Greater)\n"},
		{[]string{"div", "--prec", "8", "0", "3"}, "0 (Equal)\n"},
	}
	for _, d := range td {
		t.Run(strings.Join(d.args, " "), func(t *testing.T) {
			out, err := run(t, d.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != d.out {
				t.Fatalf("got %q, want %q", out, d.out)
			}
		})
	}
}

func TestDivErrors(t *testing.T) {
	td := [][]string{
		{"div", "1", "0"},
		{"div", "x", "3"},
		{"div", "3", "1_"},
		{"div", "--exact", "3", "56088"},
		{"div", "--prec", "10", "--mode", "Exact", "1", "3"},
		{"div", "--mode", "ToZero", "1", "3"},
		{"div", "1"},
	}
	for _, args := range td {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := run(t, args...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestShowAndProfile(t *testing.T) {
	saved := natdiv.CurrentThresholds()
	defer natdiv.SetThresholds(saved)

	out, err := run(t, "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[thresholds]") || !strings.Contains(out, "run_id") {
		t.Fatalf("show printed:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "profile.yaml")
	if _, err := run(t, "calibrate", "--sizes", "4,8", "--reps", "1", "-o", path); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "show", "--profile", path, "--format", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "thresholds:") || !strings.Contains(out, "dc_modular_div:") {
		t.Fatalf("show printed:\n%s", out)
	}

	if _, err := run(t, "show", "--profile", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("loading a missing profile succeeded")
	}
	if _, err := run(t, "show", "--log-level", "loud"); err == nil {
		t.Fatal("invalid log level accepted")
	}
}

func TestVerifyCommand(t *testing.T) {
	if _, err := run(t, "verify", "-n", "20", "--max-limbs", "6", "-j", "2"); err != nil {
		t.Fatal(err)
	}
}
