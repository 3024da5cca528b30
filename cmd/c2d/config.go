package main

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/affine"
	"github.com/milosgajdos/go-systems/set"
)

// SetConfig describes a constraint set attached to a system definition.
// Type is either "universe" or "box": universe sets need dim, box sets
// need lo and hi bounds of equal length.
type SetConfig struct {
	Type string    `yaml:"type"`
	Dim  int       `yaml:"dim,omitempty"`
	Lo   []float64 `yaml:"lo,omitempty"`
	Hi   []float64 `yaml:"hi,omitempty"`
}

// Config is a YAML definition of a continuous affine system. The fields
// which are present pick the system variant: state_matrix alone loads as a
// linear system, state_matrix plus offset as an affine system, and so on
// through the registered correspondence table. state_dim stands in for the
// state matrix in identity systems which carry no dynamics at all.
type Config struct {
	StateDim    int         `yaml:"state_dim,omitempty"`
	StateMatrix [][]float64 `yaml:"state_matrix,omitempty"`
	InputMatrix [][]float64 `yaml:"input_matrix,omitempty"`
	Offset      []float64   `yaml:"offset,omitempty"`
	NoiseMatrix [][]float64 `yaml:"noise_matrix,omitempty"`
	StateSet    *SetConfig  `yaml:"state_set,omitempty"`
	InputSet    *SetConfig  `yaml:"input_set,omitempty"`
	NoiseSet    *SetConfig  `yaml:"noise_set,omitempty"`
}

// LoadConfig reads a system definition from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	return cfg, nil
}

// System builds the continuous system the config describes.
// It fails if the present fields do not match any registered variant.
func (c *Config) System() (systems.ContinuousSystem, error) {
	var (
		x, u, w systems.Set
		err     error
	)
	if c.StateSet != nil {
		if x, err = setFrom(c.StateSet); err != nil {
			return nil, fmt.Errorf("state_set: %v", err)
		}
	}
	if c.InputSet != nil {
		if u, err = setFrom(c.InputSet); err != nil {
			return nil, fmt.Errorf("input_set: %v", err)
		}
	}
	if c.NoiseSet != nil {
		if w, err = setFrom(c.NoiseSet); err != nil {
			return nil, fmt.Errorf("noise_set: %v", err)
		}
	}

	if len(c.StateMatrix) == 0 {
		return c.identity(x, u, w)
	}

	a, err := denseFrom(c.StateMatrix)
	if err != nil {
		return nil, fmt.Errorf("state_matrix: %v", err)
	}

	var b, d *mat.Dense
	if len(c.InputMatrix) > 0 {
		if b, err = denseFrom(c.InputMatrix); err != nil {
			return nil, fmt.Errorf("input_matrix: %v", err)
		}
	}
	if len(c.NoiseMatrix) > 0 {
		if d, err = denseFrom(c.NoiseMatrix); err != nil {
			return nil, fmt.Errorf("noise_matrix: %v", err)
		}
	}

	var off *mat.VecDense
	if len(c.Offset) > 0 {
		off = mat.NewVecDense(len(c.Offset), c.Offset)
	}

	f := systems.FieldStateMatrix.Mask()
	if b != nil {
		f |= systems.FieldInputMatrix.Mask()
	}
	if off != nil {
		f |= systems.FieldOffset.Mask()
	}
	if d != nil {
		f |= systems.FieldNoiseMatrix.Mask()
	}
	if x != nil {
		f |= systems.FieldStateSet.Mask()
	}
	if u != nil {
		f |= systems.FieldInputSet.Mask()
	}
	if w != nil {
		f |= systems.FieldNoiseSet.Mask()
	}

	switch f {
	case fields(systems.FieldStateMatrix):
		return affine.NewLinearContinuousSystem(a)
	case fields(systems.FieldStateMatrix, systems.FieldOffset):
		return affine.NewAffineContinuousSystem(a, off)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix):
		return affine.NewLinearControlContinuousSystem(a, b)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldOffset):
		return affine.NewAffineControlContinuousSystem(a, b, off)
	case fields(systems.FieldStateMatrix, systems.FieldNoiseMatrix):
		return affine.NewNoisyLinearContinuousSystem(a, d)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldNoiseMatrix):
		return affine.NewNoisyLinearControlContinuousSystem(a, b, d)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldOffset, systems.FieldNoiseMatrix):
		return affine.NewNoisyAffineControlContinuousSystem(a, b, off, d)
	case fields(systems.FieldStateMatrix, systems.FieldStateSet):
		return affine.NewConstrainedLinearContinuousSystem(a, x)
	case fields(systems.FieldStateMatrix, systems.FieldOffset, systems.FieldStateSet):
		return affine.NewConstrainedAffineContinuousSystem(a, off, x)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldStateSet, systems.FieldInputSet):
		return affine.NewConstrainedLinearControlContinuousSystem(a, b, x, u)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldOffset, systems.FieldStateSet, systems.FieldInputSet):
		return affine.NewConstrainedAffineControlContinuousSystem(a, b, off, x, u)
	case fields(systems.FieldStateMatrix, systems.FieldNoiseMatrix, systems.FieldStateSet, systems.FieldNoiseSet):
		return affine.NewNoisyConstrainedLinearContinuousSystem(a, d, x, w)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldNoiseMatrix, systems.FieldStateSet, systems.FieldInputSet, systems.FieldNoiseSet):
		return affine.NewNoisyConstrainedLinearControlContinuousSystem(a, b, d, x, u, w)
	case fields(systems.FieldStateMatrix, systems.FieldInputMatrix, systems.FieldOffset, systems.FieldNoiseMatrix, systems.FieldStateSet, systems.FieldInputSet, systems.FieldNoiseSet):
		return affine.NewNoisyConstrainedAffineControlContinuousSystem(a, b, off, d, x, u, w)
	}

	return nil, fmt.Errorf("fields [%v] do not match any system variant", f)
}

func (c *Config) identity(x, u, w systems.Set) (systems.ContinuousSystem, error) {
	if c.StateDim <= 0 {
		return nil, fmt.Errorf("either state_matrix or state_dim must be set")
	}
	if len(c.InputMatrix) > 0 || len(c.Offset) > 0 || len(c.NoiseMatrix) > 0 || u != nil || w != nil {
		return nil, fmt.Errorf("identity systems admit no field beside the state set")
	}

	if x != nil {
		return affine.NewConstrainedIdentityContinuousSystem(c.StateDim, x)
	}

	return affine.NewIdentityContinuousSystem(c.StateDim)
}

func fields(ff ...systems.Field) systems.Fields {
	var m systems.Fields
	for _, f := range ff {
		m |= f.Mask()
	}
	return m
}

func denseFrom(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty matrix")
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d entries, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), cols, data), nil
}

func setFrom(c *SetConfig) (systems.Set, error) {
	switch strings.ToLower(c.Type) {
	case "universe":
		return set.NewUniverse(c.Dim)
	case "box":
		if len(c.Lo) == 0 || len(c.Hi) == 0 {
			return nil, fmt.Errorf("box set needs lo and hi bounds")
		}
		lo := mat.NewVecDense(len(c.Lo), c.Lo)
		hi := mat.NewVecDense(len(c.Hi), c.Hi)
		return set.NewBox(lo, hi)
	}

	return nil, fmt.Errorf("unknown set type: %s", c.Type)
}
