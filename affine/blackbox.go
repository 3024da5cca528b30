package affine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MapFunc evaluates an arbitrary system map at state x given input u and
// noise w.
type MapFunc func(x, u, w mat.Vector) (mat.Vector, error)

// BlackBoxContinuousSystem is a continuous time system x' = f(x, u, w) given
// by an arbitrary map. Its dynamics do not decompose into the affine form.
type BlackBoxContinuousSystem struct {
	// f is the system map
	f MapFunc
	// n, m, p are the state, input and noise dimensions
	n, m, p int
}

// NewBlackBoxContinuousSystem creates new BlackBoxContinuousSystem with map f
// and the given state, input and noise dimensions.
func NewBlackBoxContinuousSystem(f MapFunc, statedim, inputdim, noisedim int) (*BlackBoxContinuousSystem, error) {
	if f == nil {
		return nil, fmt.Errorf("system map must be defined")
	}

	if statedim <= 0 || inputdim < 0 || noisedim < 0 {
		return nil, fmt.Errorf("invalid system dimensions: %d, %d, %d", statedim, inputdim, noisedim)
	}

	return &BlackBoxContinuousSystem{f: f, n: statedim, m: inputdim, p: noisedim}, nil
}

// StateDim returns the dimension of the system state.
func (s *BlackBoxContinuousSystem) StateDim() int { return s.n }

// InputDim returns the dimension of the system input.
func (s *BlackBoxContinuousSystem) InputDim() int { return s.m }

// NoiseDim returns the dimension of the system noise.
func (s *BlackBoxContinuousSystem) NoiseDim() int { return s.p }

// VectorField evaluates the system map at state x given input u and noise w.
func (s *BlackBoxContinuousSystem) VectorField(x, u, w mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != s.n {
		return nil, fmt.Errorf("invalid state vector: %v", x)
	}

	return s.f(x, u, w)
}

// BlackBoxDiscreteSystem is a discrete time system x[k+1] = f(x[k], u[k], w[k])
// given by an arbitrary map. Its dynamics do not decompose into the affine form.
type BlackBoxDiscreteSystem struct {
	// f is the system map
	f MapFunc
	// n, m, p are the state, input and noise dimensions
	n, m, p int
}

// NewBlackBoxDiscreteSystem creates new BlackBoxDiscreteSystem with map f and
// the given state, input and noise dimensions.
func NewBlackBoxDiscreteSystem(f MapFunc, statedim, inputdim, noisedim int) (*BlackBoxDiscreteSystem, error) {
	if f == nil {
		return nil, fmt.Errorf("system map must be defined")
	}

	if statedim <= 0 || inputdim < 0 || noisedim < 0 {
		return nil, fmt.Errorf("invalid system dimensions: %d, %d, %d", statedim, inputdim, noisedim)
	}

	return &BlackBoxDiscreteSystem{f: f, n: statedim, m: inputdim, p: noisedim}, nil
}

// StateDim returns the dimension of the system state.
func (s *BlackBoxDiscreteSystem) StateDim() int { return s.n }

// InputDim returns the dimension of the system input.
func (s *BlackBoxDiscreteSystem) InputDim() int { return s.m }

// NoiseDim returns the dimension of the system noise.
func (s *BlackBoxDiscreteSystem) NoiseDim() int { return s.p }

// Successor evaluates the system map at state x given input u and noise w.
func (s *BlackBoxDiscreteSystem) Successor(x, u, w mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != s.n {
		return nil, fmt.Errorf("invalid state vector: %v", x)
	}

	return s.f(x, u, w)
}
