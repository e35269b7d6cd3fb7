// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tune

import (
	"math/bits"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Host describes the machine a profile was measured on.
type Host struct {
	OS       string   `toml:"os" yaml:"os"`
	Arch     string   `toml:"arch" yaml:"arch"`
	WordBits int      `toml:"word_bits" yaml:"word_bits"`
	CPUs     int      `toml:"cpus" yaml:"cpus"`
	Features []string `toml:"features" yaml:"features"`
}

// CurrentHost returns a description of the running host.
func CurrentHost() Host {
	return Host{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		WordBits: bits.UintSize,
		CPUs:     runtime.NumCPU(),
		Features: cpuFeatures(),
	}
}

// cpuFeatures lists the CPU extensions that matter to multi-precision
// arithmetic kernels.
func cpuFeatures() []string {
	var fs []string
	add := func(ok bool, name string) {
		if ok {
			fs = append(fs, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasPMULL, "pmull")
	}
	return fs
}

// Name returns a file name friendly identifier of h, like
// "linux-amd64-adx-bmi2".
func (h Host) Name() string {
	parts := append([]string{h.OS, h.Arch}, h.Features...)
	return strings.Join(parts, "-")
}

// Matches reports whether a profile measured on h is meaningful on o.
func (h Host) Matches(o Host) bool {
	return h.OS == o.OS && h.Arch == o.Arch && h.WordBits == o.WordBits
}
