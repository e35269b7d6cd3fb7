// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tune

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/natdiv"
)

func testProfile() *Profile {
	t := natdiv.DefaultThresholds()
	t.DCModularDiv = 33
	t.MuModularDiv = 777
	return NewProfile(t)
}

func TestProfileRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			p := testProfile()
			var buf bytes.Buffer
			if err := p.Encode(&buf, format); err != nil {
				t.Fatal(err)
			}
			q, err := DecodeProfile(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("%v\n%s", err, buf.String())
			}
			if q.Thresholds != p.Thresholds {
				t.Fatalf("thresholds: got %+v, want %+v", q.Thresholds, p.Thresholds)
			}
			if q.RunID != p.RunID || !q.Created.Equal(p.Created) {
				t.Fatalf("stamp: got %s %s, want %s %s", q.RunID, q.Created, p.RunID, p.Created)
			}
			if !q.Host.Matches(p.Host) || q.Host.Name() != p.Host.Name() {
				t.Fatalf("host: got %+v, want %+v", q.Host, p.Host)
			}
		})
	}
}

func TestDecodeProfilePartial(t *testing.T) {
	src := `
[thresholds]
dc_modular_div = 50
mu_modular_div = 600
`
	p, err := DecodeProfile([]byte(src), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	want := natdiv.DefaultThresholds()
	want.DCModularDiv, want.MuModularDiv = 50, 600
	if p.Thresholds != want {
		t.Fatalf("got %+v, want %+v", p.Thresholds, want)
	}

	src = `
thresholds:
  float_div_mulders: 30
`
	p, err = DecodeProfile([]byte(src), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	want = natdiv.DefaultThresholds()
	want.FloatDivMulders = 30
	if p.Thresholds != want {
		t.Fatalf("got %+v, want %+v", p.Thresholds, want)
	}
}

func TestDecodeProfileInvalid(t *testing.T) {
	td := []struct {
		name   string
		src    string
		format Format
		err    string
	}{
		{"syntax", "[thresholds\n", FormatTOML, "TOML parse error"},
		{"yaml syntax", "thresholds: [1, 2\n", FormatYAML, "YAML parse error"},
		{"order", "[thresholds]\ndc_modular_div = 100\nmu_modular_div = 50\n", FormatTOML, "MuModularDiv"},
		{"too small", "thresholds:\n  div_recursive: 2\n", FormatYAML, "DivRecursive"},
		{"format", "", FormatAuto, "unsupported format"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := DecodeProfile([]byte(d.src), d.format)
			if err == nil || !strings.Contains(err.Error(), d.err) {
				t.Fatalf("got error %v, want one containing %q", err, d.err)
			}
		})
	}
}

func TestProfileSaveLoad(t *testing.T) {
	dir := t.TempDir()
	p := testProfile()
	for _, name := range []string{"host.toml", "host.yaml"} {
		path := filepath.Join(dir, name)
		if err := p.Save(path, FormatAuto); err != nil {
			t.Fatal(err)
		}
		q, err := LoadProfile(path, FormatAuto)
		if err != nil {
			t.Fatal(err)
		}
		if q.Thresholds != p.Thresholds {
			t.Fatalf("%s: got %+v, want %+v", name, q.Thresholds, p.Thresholds)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "host.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("mu_modular_div: 777")) {
		t.Fatalf("YAML profile missing thresholds:\n%s", data)
	}
	if _, err := LoadProfile(filepath.Join(dir, "missing.toml"), FormatAuto); err == nil {
		t.Fatal("loading a missing profile succeeded")
	}
}

func TestProfileApply(t *testing.T) {
	saved := natdiv.CurrentThresholds()
	defer natdiv.SetThresholds(saved)

	p := testProfile()
	if err := p.Apply(); err != nil {
		t.Fatal(err)
	}
	if natdiv.CurrentThresholds() != p.Thresholds {
		t.Fatal("Apply did not install the thresholds")
	}
	p.Thresholds.MuModularDiv = 1
	if err := p.Apply(); err == nil {
		t.Fatal("Apply accepted invalid thresholds")
	}
}

func TestParseFormat(t *testing.T) {
	td := []struct {
		s string
		f Format
	}{
		{"toml", FormatTOML},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{"", FormatAuto},
		{"auto", FormatAuto},
	}
	for _, d := range td {
		f, err := ParseFormat(d.s)
		if err != nil || f != d.f {
			t.Errorf("ParseFormat(%q) = %s, %v; want %s", d.s, f, err, d.f)
		}
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Error("ParseFormat(json) succeeded")
	}
}
