// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tune measures and verifies the crossover thresholds of package
// natdiv, and stores them in profile files.
package tune

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/db47h/natdiv"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format represents the profile file format.
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota
	// FormatYAML represents YAML format
	FormatYAML
	// FormatAuto detects the format from the file extension
	FormatAuto
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	}
	return "unknown"
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "auto", "":
		return FormatAuto, nil
	}
	return 0, errors.Errorf("unknown profile format %q", s)
}

// detectFormat determines the profile format from a file extension.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// A Profile is a set of thresholds together with the host and run that
// produced them.
type Profile struct {
	RunID      string            `toml:"run_id" yaml:"run_id"`
	Created    time.Time         `toml:"created" yaml:"created"`
	Host       Host              `toml:"host" yaml:"host"`
	Thresholds natdiv.Thresholds `toml:"thresholds" yaml:"thresholds"`
}

// NewProfile returns a profile for t, stamped with a new run id and the
// current host.
func NewProfile(t natdiv.Thresholds) *Profile {
	return &Profile{
		RunID:      uuid.New().String(),
		Created:    time.Now().UTC().Truncate(time.Second),
		Host:       CurrentHost(),
		Thresholds: t,
	}
}

// DecodeProfile parses a profile. Thresholds missing from data keep their
// default value.
func DecodeProfile(data []byte, format Format) (*Profile, error) {
	p := &Profile{Thresholds: natdiv.DefaultThresholds()}
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, errors.Wrap(err, "YAML parse error")
		}
	default:
		return nil, errors.Errorf("unsupported format: %s", format)
	}
	if err := p.Thresholds.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}
	return p, nil
}

// Encode writes p to w in the given format.
func (p *Profile) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(p), "TOML encode error")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return errors.Wrap(err, "YAML encode error")
		}
		return errors.Wrap(enc.Close(), "YAML encode error")
	}
	return errors.Errorf("unsupported format: %s", format)
}

// LoadProfile reads a profile file. If format is FormatAuto, the format is
// chosen from the file extension.
func LoadProfile(path string, format Format) (*Profile, error) {
	if format == FormatAuto {
		format = detectFormat(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read profile")
	}
	p, err := DecodeProfile(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return p, nil
}

// Save writes p to a file.
func (p *Profile) Save(path string, format Format) error {
	if format == FormatAuto {
		format = detectFormat(path)
	}
	var buf bytes.Buffer
	if err := p.Encode(&buf, format); err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0o644), "write profile")
}

// Apply makes p's thresholds the ones used by package natdiv.
func (p *Profile) Apply() error {
	return natdiv.SetThresholds(p.Thresholds)
}
