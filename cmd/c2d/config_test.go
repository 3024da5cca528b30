package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/affine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "system.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return path
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	body := `
state_matrix:
  - [0, 1]
  - [-2, -3]
input_matrix:
  - [0]
  - [1]
offset: [0.5, 0.5]
state_set:
  type: universe
  dim: 2
input_set:
  type: box
  lo: [-1]
  hi: [1]
`
	cfg, err := LoadConfig(writeConfig(t, body))
	assert.NotNil(cfg)
	assert.NoError(err)
	assert.Equal([][]float64{{0, 1}, {-2, -3}}, cfg.StateMatrix)
	assert.Equal([]float64{0.5, 0.5}, cfg.Offset)
	assert.Equal("universe", cfg.StateSet.Type)
	assert.Equal([]float64{-1}, cfg.InputSet.Lo)

	sys, err := cfg.System()
	assert.NotNil(sys)
	assert.NoError(err)
	assert.IsType(&affine.ConstrainedAffineControlContinuousSystem{}, sys)
	assert.Equal(2, sys.StateDim())
	assert.Equal(1, sys.InputDim())

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Nil(cfg)
	assert.Error(err)

	cfg, err = LoadConfig(writeConfig(t, "state_matrix: {not: a list}"))
	assert.Nil(cfg)
	assert.Error(err)
}

func TestConfigSystem(t *testing.T) {
	assert := assert.New(t)

	a := [][]float64{{0, 1}, {-2, -3}}
	b := [][]float64{{0}, {1}}
	c := []float64{0.5, 0.5}
	d := [][]float64{{1}, {0}}
	x := &SetConfig{Type: "universe", Dim: 2}
	u := &SetConfig{Type: "box", Lo: []float64{-1}, Hi: []float64{1}}
	w := &SetConfig{Type: "box", Lo: []float64{-0.1}, Hi: []float64{0.1}}

	testCases := []struct {
		name string
		cfg  *Config
		want systems.ContinuousSystem
	}{
		{"identity", &Config{StateDim: 2}, &affine.IdentityContinuousSystem{}},
		{"constrained identity", &Config{StateDim: 2, StateSet: x}, &affine.ConstrainedIdentityContinuousSystem{}},
		{"linear", &Config{StateMatrix: a}, &affine.LinearContinuousSystem{}},
		{"affine", &Config{StateMatrix: a, Offset: c}, &affine.AffineContinuousSystem{}},
		{"linear control", &Config{StateMatrix: a, InputMatrix: b}, &affine.LinearControlContinuousSystem{}},
		{"affine control", &Config{StateMatrix: a, InputMatrix: b, Offset: c}, &affine.AffineControlContinuousSystem{}},
		{"noisy linear", &Config{StateMatrix: a, NoiseMatrix: d}, &affine.NoisyLinearContinuousSystem{}},
		{"noisy linear control", &Config{StateMatrix: a, InputMatrix: b, NoiseMatrix: d}, &affine.NoisyLinearControlContinuousSystem{}},
		{"noisy affine control", &Config{StateMatrix: a, InputMatrix: b, Offset: c, NoiseMatrix: d}, &affine.NoisyAffineControlContinuousSystem{}},
		{"constrained linear", &Config{StateMatrix: a, StateSet: x}, &affine.ConstrainedLinearContinuousSystem{}},
		{"constrained affine", &Config{StateMatrix: a, Offset: c, StateSet: x}, &affine.ConstrainedAffineContinuousSystem{}},
		{"constrained linear control", &Config{StateMatrix: a, InputMatrix: b, StateSet: x, InputSet: u}, &affine.ConstrainedLinearControlContinuousSystem{}},
		{"constrained affine control", &Config{StateMatrix: a, InputMatrix: b, Offset: c, StateSet: x, InputSet: u}, &affine.ConstrainedAffineControlContinuousSystem{}},
		{"noisy constrained linear", &Config{StateMatrix: a, NoiseMatrix: d, StateSet: x, NoiseSet: w}, &affine.NoisyConstrainedLinearContinuousSystem{}},
		{"noisy constrained linear control", &Config{StateMatrix: a, InputMatrix: b, NoiseMatrix: d, StateSet: x, InputSet: u, NoiseSet: w}, &affine.NoisyConstrainedLinearControlContinuousSystem{}},
		{"noisy constrained affine control", &Config{StateMatrix: a, InputMatrix: b, Offset: c, NoiseMatrix: d, StateSet: x, InputSet: u, NoiseSet: w}, &affine.NoisyConstrainedAffineControlContinuousSystem{}},
	}

	for _, tc := range testCases {
		sys, err := tc.cfg.System()
		assert.NotNil(sys, tc.name)
		assert.NoError(err, tc.name)
		assert.IsType(tc.want, sys, tc.name)
		assert.Equal(2, sys.StateDim(), tc.name)
	}
}

func TestConfigSystemInvalid(t *testing.T) {
	assert := assert.New(t)

	a := [][]float64{{0, 1}, {-2, -3}}
	u := &SetConfig{Type: "box", Lo: []float64{-1}, Hi: []float64{1}}
	w := &SetConfig{Type: "box", Lo: []float64{-0.1}, Hi: []float64{0.1}}

	testCases := []struct {
		name string
		cfg  *Config
	}{
		{"empty", &Config{}},
		{"identity with input matrix", &Config{StateDim: 2, InputMatrix: [][]float64{{1}, {1}}}},
		{"identity with input set", &Config{StateDim: 2, InputSet: u}},
		{"ragged state matrix", &Config{StateMatrix: [][]float64{{0, 1}, {1}}}},
		{"empty state matrix row", &Config{StateMatrix: [][]float64{{}}}},
		{"non square state matrix", &Config{StateMatrix: [][]float64{{0, 1}}}},
		{"input set without input matrix", &Config{StateMatrix: a, InputSet: u}},
		{"noise set without noise matrix", &Config{StateMatrix: a, NoiseSet: w}},
		{"unknown set type", &Config{StateMatrix: a, StateSet: &SetConfig{Type: "sphere", Dim: 2}}},
		{"box without bounds", &Config{StateMatrix: a, StateSet: &SetConfig{Type: "box"}}},
		{"box bounds length mismatch", &Config{StateMatrix: a, StateSet: &SetConfig{Type: "box", Lo: []float64{0}, Hi: []float64{1, 2}}}},
		{"state set dim mismatch", &Config{StateMatrix: a, StateSet: &SetConfig{Type: "universe", Dim: 3}}},
	}

	for _, tc := range testCases {
		sys, err := tc.cfg.System()
		assert.Nil(sys, tc.name)
		assert.Error(err, tc.name)
	}
}
