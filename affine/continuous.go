package affine

import (
	"fmt"

	systems "github.com/milosgajdos/go-systems"
	"gonum.org/v1/gonum/mat"
)

// IdentityContinuousSystem is a trivial continuous time system x' = 0:
// the state never changes. It carries no dynamics fields.
type IdentityContinuousSystem struct {
	continuousBase
}

// NewIdentityContinuousSystem creates new IdentityContinuousSystem with state
// dimension n. It returns error if n is not positive.
func NewIdentityContinuousSystem(n int) (*IdentityContinuousSystem, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", n)
	}

	return &IdentityContinuousSystem{continuousBase{base{n: n}}}, nil
}

// ConstrainedIdentityContinuousSystem is a trivial continuous time system
// x' = 0 with states constrained to the set X.
type ConstrainedIdentityContinuousSystem struct {
	continuousBase
}

// NewConstrainedIdentityContinuousSystem creates new
// ConstrainedIdentityContinuousSystem with state dimension n and state
// constraint set x. It returns error if n is not positive or if the set
// dimension does not match n.
func NewConstrainedIdentityContinuousSystem(n int, x systems.Set) (*ConstrainedIdentityContinuousSystem, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", n)
	}

	if x == nil {
		return nil, fmt.Errorf("state set must be defined")
	}

	if x.Dim() != n {
		return nil, fmt.Errorf("invalid state set dimension: %d", x.Dim())
	}

	return &ConstrainedIdentityContinuousSystem{continuousBase{base{n: n, x: x}}}, nil
}

// LinearContinuousSystem is a continuous time system x' = A x.
type LinearContinuousSystem struct {
	continuousBase
}

// NewLinearContinuousSystem creates new LinearContinuousSystem with state
// matrix a. It returns error if a is nil or not square.
func NewLinearContinuousSystem(a mat.Matrix) (*LinearContinuousSystem, error) {
	bs, err := newBase(a, nil, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &LinearContinuousSystem{continuousBase{bs}}, nil
}

// AffineContinuousSystem is a continuous time system x' = A x + c.
type AffineContinuousSystem struct {
	continuousBase
}

// NewAffineContinuousSystem creates new AffineContinuousSystem with state
// matrix a and offset vector c. It returns error if any argument is nil or
// the shapes do not agree.
func NewAffineContinuousSystem(a mat.Matrix, c mat.Vector) (*AffineContinuousSystem, error) {
	if c == nil {
		return nil, fmt.Errorf("offset vector must be defined")
	}

	bs, err := newBase(a, nil, c, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &AffineContinuousSystem{continuousBase{bs}}, nil
}

// LinearControlContinuousSystem is a continuous time system x' = A x + B u.
type LinearControlContinuousSystem struct {
	continuousBase
}

// NewLinearControlContinuousSystem creates new LinearControlContinuousSystem
// with state matrix a and input matrix b. It returns error if any argument is
// nil or the shapes do not agree.
func NewLinearControlContinuousSystem(a, b mat.Matrix) (*LinearControlContinuousSystem, error) {
	if b == nil {
		return nil, fmt.Errorf("input matrix must be defined")
	}

	bs, err := newBase(a, b, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &LinearControlContinuousSystem{continuousBase{bs}}, nil
}

// AffineControlContinuousSystem is a continuous time system x' = A x + B u + c.
type AffineControlContinuousSystem struct {
	continuousBase
}

// NewAffineControlContinuousSystem creates new AffineControlContinuousSystem
// with state matrix a, input matrix b and offset vector c.
func NewAffineControlContinuousSystem(a, b mat.Matrix, c mat.Vector) (*AffineControlContinuousSystem, error) {
	if b == nil || c == nil {
		return nil, fmt.Errorf("input matrix and offset vector must be defined")
	}

	bs, err := newBase(a, b, c, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &AffineControlContinuousSystem{continuousBase{bs}}, nil
}

// NoisyLinearContinuousSystem is a continuous time system x' = A x + D w.
type NoisyLinearContinuousSystem struct {
	continuousBase
}

// NewNoisyLinearContinuousSystem creates new NoisyLinearContinuousSystem with
// state matrix a and noise matrix d.
func NewNoisyLinearContinuousSystem(a, d mat.Matrix) (*NoisyLinearContinuousSystem, error) {
	if d == nil {
		return nil, fmt.Errorf("noise matrix must be defined")
	}

	bs, err := newBase(a, nil, nil, d, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &NoisyLinearContinuousSystem{continuousBase{bs}}, nil
}

// NoisyLinearControlContinuousSystem is a continuous time system
// x' = A x + B u + D w.
type NoisyLinearControlContinuousSystem struct {
	continuousBase
}

// NewNoisyLinearControlContinuousSystem creates new
// NoisyLinearControlContinuousSystem with state matrix a, input matrix b and
// noise matrix d.
func NewNoisyLinearControlContinuousSystem(a, b, d mat.Matrix) (*NoisyLinearControlContinuousSystem, error) {
	if b == nil || d == nil {
		return nil, fmt.Errorf("input and noise matrices must be defined")
	}

	bs, err := newBase(a, b, nil, d, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &NoisyLinearControlContinuousSystem{continuousBase{bs}}, nil
}

// NoisyAffineControlContinuousSystem is a continuous time system
// x' = A x + B u + c + D w.
type NoisyAffineControlContinuousSystem struct {
	continuousBase
}

// NewNoisyAffineControlContinuousSystem creates new
// NoisyAffineControlContinuousSystem with the full set of affine dynamics
// fields: state matrix a, input matrix b, offset vector c and noise matrix d.
func NewNoisyAffineControlContinuousSystem(a, b mat.Matrix, c mat.Vector, d mat.Matrix) (*NoisyAffineControlContinuousSystem, error) {
	if b == nil || c == nil || d == nil {
		return nil, fmt.Errorf("input matrix, offset vector and noise matrix must be defined")
	}

	bs, err := newBase(a, b, c, d, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &NoisyAffineControlContinuousSystem{continuousBase{bs}}, nil
}

// ConstrainedLinearContinuousSystem is a continuous time system x' = A x with
// states constrained to the set X.
type ConstrainedLinearContinuousSystem struct {
	continuousBase
}

// NewConstrainedLinearContinuousSystem creates new
// ConstrainedLinearContinuousSystem with state matrix a and state set x.
func NewConstrainedLinearContinuousSystem(a mat.Matrix, x systems.Set) (*ConstrainedLinearContinuousSystem, error) {
	if x == nil {
		return nil, fmt.Errorf("state set must be defined")
	}

	bs, err := newBase(a, nil, nil, nil, x, nil, nil)
	if err != nil {
		return nil, err
	}

	return &ConstrainedLinearContinuousSystem{continuousBase{bs}}, nil
}

// ConstrainedAffineContinuousSystem is a continuous time system x' = A x + c
// with states constrained to the set X.
type ConstrainedAffineContinuousSystem struct {
	continuousBase
}

// NewConstrainedAffineContinuousSystem creates new
// ConstrainedAffineContinuousSystem with state matrix a, offset vector c and
// state set x.
func NewConstrainedAffineContinuousSystem(a mat.Matrix, c mat.Vector, x systems.Set) (*ConstrainedAffineContinuousSystem, error) {
	if c == nil {
		return nil, fmt.Errorf("offset vector must be defined")
	}

	if x == nil {
		return nil, fmt.Errorf("state set must be defined")
	}

	bs, err := newBase(a, nil, c, nil, x, nil, nil)
	if err != nil {
		return nil, err
	}

	return &ConstrainedAffineContinuousSystem{continuousBase{bs}}, nil
}

// ConstrainedLinearControlContinuousSystem is a continuous time system
// x' = A x + B u with states constrained to X and inputs to U.
type ConstrainedLinearControlContinuousSystem struct {
	continuousBase
}

// NewConstrainedLinearControlContinuousSystem creates new
// ConstrainedLinearControlContinuousSystem with state matrix a, input matrix
// b, state set x and input set u.
func NewConstrainedLinearControlContinuousSystem(a, b mat.Matrix, x, u systems.Set) (*ConstrainedLinearControlContinuousSystem, error) {
	if b == nil {
		return nil, fmt.Errorf("input matrix must be defined")
	}

	if x == nil || u == nil {
		return nil, fmt.Errorf("state and input sets must be defined")
	}

	bs, err := newBase(a, b, nil, nil, x, u, nil)
	if err != nil {
		return nil, err
	}

	return &ConstrainedLinearControlContinuousSystem{continuousBase{bs}}, nil
}

// ConstrainedAffineControlContinuousSystem is a continuous time system
// x' = A x + B u + c with states constrained to X and inputs to U.
type ConstrainedAffineControlContinuousSystem struct {
	continuousBase
}

// NewConstrainedAffineControlContinuousSystem creates new
// ConstrainedAffineControlContinuousSystem with state matrix a, input matrix
// b, offset vector c, state set x and input set u.
func NewConstrainedAffineControlContinuousSystem(a, b mat.Matrix, c mat.Vector, x, u systems.Set) (*ConstrainedAffineControlContinuousSystem, error) {
	if b == nil || c == nil {
		return nil, fmt.Errorf("input matrix and offset vector must be defined")
	}

	if x == nil || u == nil {
		return nil, fmt.Errorf("state and input sets must be defined")
	}

	bs, err := newBase(a, b, c, nil, x, u, nil)
	if err != nil {
		return nil, err
	}

	return &ConstrainedAffineControlContinuousSystem{continuousBase{bs}}, nil
}

// NoisyConstrainedLinearContinuousSystem is a continuous time system
// x' = A x + D w with states constrained to X and noise to W.
type NoisyConstrainedLinearContinuousSystem struct {
	continuousBase
}

// NewNoisyConstrainedLinearContinuousSystem creates new
// NoisyConstrainedLinearContinuousSystem with state matrix a, noise matrix d,
// state set x and noise set w.
func NewNoisyConstrainedLinearContinuousSystem(a, d mat.Matrix, x, w systems.Set) (*NoisyConstrainedLinearContinuousSystem, error) {
	if d == nil {
		return nil, fmt.Errorf("noise matrix must be defined")
	}

	if x == nil || w == nil {
		return nil, fmt.Errorf("state and noise sets must be defined")
	}

	bs, err := newBase(a, nil, nil, d, x, nil, w)
	if err != nil {
		return nil, err
	}

	return &NoisyConstrainedLinearContinuousSystem{continuousBase{bs}}, nil
}

// NoisyConstrainedLinearControlContinuousSystem is a continuous time system
// x' = A x + B u + D w with states constrained to X, inputs to U and noise to W.
type NoisyConstrainedLinearControlContinuousSystem struct {
	continuousBase
}

// NewNoisyConstrainedLinearControlContinuousSystem creates new
// NoisyConstrainedLinearControlContinuousSystem with state matrix a, input
// matrix b, noise matrix d and the constraint sets x, u and w.
func NewNoisyConstrainedLinearControlContinuousSystem(a, b, d mat.Matrix, x, u, w systems.Set) (*NoisyConstrainedLinearControlContinuousSystem, error) {
	if b == nil || d == nil {
		return nil, fmt.Errorf("input and noise matrices must be defined")
	}

	if x == nil || u == nil || w == nil {
		return nil, fmt.Errorf("state, input and noise sets must be defined")
	}

	bs, err := newBase(a, b, nil, d, x, u, w)
	if err != nil {
		return nil, err
	}

	return &NoisyConstrainedLinearControlContinuousSystem{continuousBase{bs}}, nil
}

// NoisyConstrainedAffineControlContinuousSystem is a continuous time system
// x' = A x + B u + c + D w with states constrained to X, inputs to U and
// noise to W. It is the richest affine variant.
type NoisyConstrainedAffineControlContinuousSystem struct {
	continuousBase
}

// NewNoisyConstrainedAffineControlContinuousSystem creates new
// NoisyConstrainedAffineControlContinuousSystem with all four dynamics fields
// and all three constraint sets.
func NewNoisyConstrainedAffineControlContinuousSystem(a, b mat.Matrix, c mat.Vector, d mat.Matrix, x, u, w systems.Set) (*NoisyConstrainedAffineControlContinuousSystem, error) {
	if b == nil || c == nil || d == nil {
		return nil, fmt.Errorf("input matrix, offset vector and noise matrix must be defined")
	}

	if x == nil || u == nil || w == nil {
		return nil, fmt.Errorf("state, input and noise sets must be defined")
	}

	bs, err := newBase(a, b, c, d, x, u, w)
	if err != nil {
		return nil, err
	}

	return &NoisyConstrainedAffineControlContinuousSystem{continuousBase{bs}}, nil
}
