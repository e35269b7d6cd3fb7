// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tune

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/db47h/natdiv"
	"github.com/sirupsen/logrus"
)

func testLogger(buf *bytes.Buffer) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(l)
}

func TestAlgorithmThresholds(t *testing.T) {
	base := natdiv.DefaultThresholds()
	for _, a := range Algorithms {
		th := a.Thresholds(base)
		if err := th.Validate(); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
		// a 3 limb divisor
		var got Algorithm
		switch {
		case 3 < th.DCModularDiv:
			got = Schoolbook
		case 3 < th.MuModularDiv:
			got = DivideAndConquer
		default:
			got = Barrett
		}
		if got != a {
			t.Errorf("%s thresholds select %s", a, got)
		}
	}
	if s := Algorithm(7).String(); s != "Algorithm(7)" {
		t.Errorf("Algorithm(7).String() = %s", s)
	}
}

func TestVerify(t *testing.T) {
	var buf bytes.Buffer
	var steps int64
	err := Verify(context.Background(), natdiv.DefaultThresholds(), VerifyOptions{
		Rounds:   200,
		MaxLimbs: 12,
		Workers:  4,
		Seed:     42,
		Log:      testLogger(&buf),
		Progress: func() { atomic.AddInt64(&steps, 1) },
	})
	if err != nil {
		t.Fatalf("%v\n%s", err, buf.String())
	}
	if steps != 200 {
		t.Fatalf("Progress called %d times, want 200", steps)
	}
	if !strings.Contains(buf.String(), "verification passed") {
		t.Fatalf("missing summary in log:\n%s", buf.String())
	}
}

func TestVerifyCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := Verify(ctx, natdiv.DefaultThresholds(), VerifyOptions{Rounds: 10, Workers: 1, Log: testLogger(&buf)})
	if err != context.Canceled {
		t.Fatalf("Verify on a cancelled context returned %v", err)
	}
}

func TestVerifyFloat(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	th := natdiv.DefaultThresholds()
	th.FloatDivMulders = 5
	for i := 0; i < 300; i++ {
		if m := verifyFloat(rnd, th, 10); m != nil {
			t.Fatal(m)
		}
	}
}

func TestMismatchError(t *testing.T) {
	m := &Mismatch{Op: "DivExact", Algorithm: "barrett", N: []natdiv.Word{255}, D: []natdiv.Word{5}, Got: "32", Want: "33"}
	if s := m.Error(); s != "DivExact (barrett): ff / 5 = 32, want 33" {
		t.Fatalf("Error() = %q", s)
	}
}

func TestCrossover(t *testing.T) {
	ms := time.Millisecond
	sizes := []int{8, 16, 32, 64}
	best := map[int][]time.Duration{
		8:  {1 * ms, 2 * ms, 3 * ms},
		16: {2 * ms, 1 * ms, 3 * ms}, // not confirmed at 32
		32: {4 * ms, 5 * ms, 6 * ms},
		64: {9 * ms, 6 * ms, 5 * ms},
	}
	if n := crossover(sizes, best, Schoolbook, DivideAndConquer, 2, 100); n != 64 {
		t.Errorf("schoolbook/dc crossover = %d, want 64", n)
	}
	if n := crossover(sizes, best, DivideAndConquer, Barrett, 2, 100); n != 64 {
		t.Errorf("dc/barrett crossover = %d, want 64", n)
	}
	if n := crossover(sizes[:3], best, DivideAndConquer, Barrett, 2, 100); n != 100 {
		t.Errorf("missing crossover = %d, want the default", n)
	}
}

func TestCalibrate(t *testing.T) {
	var buf bytes.Buffer
	var steps int
	opts := CalibrateOptions{
		Sizes:    []int{4, 8, 16},
		Reps:     1,
		Seed:     1,
		Log:      testLogger(&buf),
		Progress: func() { steps++ },
	}
	th, timings, err := Calibrate(context.Background(), natdiv.DefaultThresholds(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := th.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(timings) != 9 || steps != CalibrateSteps(opts) {
		t.Fatalf("%d timings, %d steps, want 9", len(timings), steps)
	}

	opts.Sizes = []int{1}
	if _, _, err := Calibrate(context.Background(), natdiv.DefaultThresholds(), opts); err == nil {
		t.Fatal("Calibrate accepted a size of 1")
	}
}

func TestHost(t *testing.T) {
	h := CurrentHost()
	if h.WordBits != 32 && h.WordBits != 64 {
		t.Fatalf("WordBits = %d", h.WordBits)
	}
	if !strings.HasPrefix(h.Name(), h.OS+"-"+h.Arch) {
		t.Fatalf("Name() = %s", h.Name())
	}
	o := h
	o.CPUs++
	o.Features = nil
	if !h.Matches(o) {
		t.Fatal("hosts differing in CPU count and features do not match")
	}
	o.Arch = "other"
	if h.Matches(o) {
		t.Fatal("hosts with different architectures match")
	}
}
