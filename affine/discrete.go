package affine

import (
	"fmt"

	systems "github.com/milosgajdos/go-systems"
	"gonum.org/v1/gonum/mat"
)

// identitySuccessor validates the step arguments and returns a copy of x.
func identitySuccessor(s *base, x, u, w mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != s.n {
		return nil, fmt.Errorf("invalid state vector: %v", x)
	}

	if u != nil && u.Len() != 0 {
		return nil, fmt.Errorf("invalid input vector: %v", u)
	}

	if w != nil && w.Len() != 0 {
		return nil, fmt.Errorf("invalid noise vector: %v", w)
	}

	return mat.VecDenseCopyOf(x), nil
}

// IdentityDiscreteSystem is a trivial discrete time system x[k+1] = x[k]:
// every state is its own successor. It carries no dynamics fields.
type IdentityDiscreteSystem struct {
	discreteBase
}

// NewIdentityDiscreteSystem creates new IdentityDiscreteSystem with state
// dimension n. It returns error if n is not positive.
func NewIdentityDiscreteSystem(n int) (*IdentityDiscreteSystem, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", n)
	}

	return &IdentityDiscreteSystem{discreteBase{base{n: n}}}, nil
}

// Successor returns the next state of the identity map, i.e. x itself.
func (s *IdentityDiscreteSystem) Successor(x, u, w mat.Vector) (mat.Vector, error) {
	return identitySuccessor(&s.base, x, u, w)
}

// ConstrainedIdentityDiscreteSystem is a trivial discrete time system
// x[k+1] = x[k] with states constrained to the set X.
type ConstrainedIdentityDiscreteSystem struct {
	discreteBase
}

// NewConstrainedIdentityDiscreteSystem creates new
// ConstrainedIdentityDiscreteSystem with state dimension n and state
// constraint set x. It returns error if n is not positive or if the set
// dimension does not match n.
func NewConstrainedIdentityDiscreteSystem(n int, x systems.Set) (*ConstrainedIdentityDiscreteSystem, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", n)
	}

	if x == nil {
		return nil, fmt.Errorf("state set must be defined")
	}

	if x.Dim() != n {
		return nil, fmt.Errorf("invalid state set dimension: %d", x.Dim())
	}

	return &ConstrainedIdentityDiscreteSystem{discreteBase{base{n: n, x: x}}}, nil
}

// Successor returns the next state of the identity map, i.e. x itself.
func (s *ConstrainedIdentityDiscreteSystem) Successor(x, u, w mat.Vector) (mat.Vector, error) {
	return identitySuccessor(&s.base, x, u, w)
}

// LinearDiscreteSystem is a discrete time system x[k+1] = A x[k].
type LinearDiscreteSystem struct {
	discreteBase
}

// NewLinearDiscreteSystem creates new LinearDiscreteSystem with state matrix
// a. It returns error if a is nil or not square.
func NewLinearDiscreteSystem(a mat.Matrix) (*LinearDiscreteSystem, error) {
	bs, err := newBase(a, nil, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &LinearDiscreteSystem{discreteBase{bs}}, nil
}

// AffineDiscreteSystem is a discrete time system x[k+1] = A x[k] + c.
type AffineDiscreteSystem struct {
	discreteBase
}

// NewAffineDiscreteSystem creates new AffineDiscreteSystem with state matrix
// a and offset vector c.
func NewAffineDiscreteSystem(a mat.Matrix, c mat.Vector) (*AffineDiscreteSystem, error) {
	if c == nil {
		return nil, fmt.Errorf("offset vector must be defined")
	}

	bs, err := newBase(a, nil, c, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &AffineDiscreteSystem{discreteBase{bs}}, nil
}

// LinearControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k].
type LinearControlDiscreteSystem struct {
	discreteBase
}

// NewLinearControlDiscreteSystem creates new LinearControlDiscreteSystem with
// state matrix a and input matrix b.
func NewLinearControlDiscreteSystem(a, b mat.Matrix) (*LinearControlDiscreteSystem, error) {
	if b == nil {
		return nil, fmt.Errorf("input matrix must be defined")
	}

	bs, err := newBase(a, b, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &LinearControlDiscreteSystem{discreteBase{bs}}, nil
}

// AffineControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] + c.
type AffineControlDiscreteSystem struct {
	discreteBase
}

// NewAffineControlDiscreteSystem creates new AffineControlDiscreteSystem with
// state matrix a, input matrix b and offset vector c.
func NewAffineControlDiscreteSystem(a, b mat.Matrix, c mat.Vector) (*AffineControlDiscreteSystem, error) {
	if b == nil || c == nil {
		return nil, fmt.Errorf("input matrix and offset vector must be defined")
	}

	bs, err := newBase(a, b, c, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &AffineControlDiscreteSystem{discreteBase{bs}}, nil
}

// NoisyLinearDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + D w[k].
type NoisyLinearDiscreteSystem struct {
	discreteBase
}

// NewNoisyLinearDiscreteSystem creates new NoisyLinearDiscreteSystem with
// state matrix a and noise matrix d.
func NewNoisyLinearDiscreteSystem(a, d mat.Matrix) (*NoisyLinearDiscreteSystem, error) {
	if d == nil {
		return nil, fmt.Errorf("noise matrix must be defined")
	}

	bs, err := newBase(a, nil, nil, d, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &NoisyLinearDiscreteSystem{discreteBase{bs}}, nil
}

// NoisyLinearControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] + D w[k].
type NoisyLinearControlDiscreteSystem struct {
	discreteBase
}

// NewNoisyLinearControlDiscreteSystem creates new
// NoisyLinearControlDiscreteSystem with state matrix a, input matrix b and
// noise matrix d.
func NewNoisyLinearControlDiscreteSystem(a, b, d mat.Matrix) (*NoisyLinearControlDiscreteSystem, error) {
	if b == nil || d == nil {
		return nil, fmt.Errorf("input and noise matrices must be defined")
	}

	bs, err := newBase(a, b, nil, d, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &NoisyLinearControlDiscreteSystem{discreteBase{bs}}, nil
}

// NoisyAffineControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] + c + D w[k].
type NoisyAffineControlDiscreteSystem struct {
	discreteBase
}

// NewNoisyAffineControlDiscreteSystem creates new
// NoisyAffineControlDiscreteSystem with the full set of affine dynamics
// fields: state matrix a, input matrix b, offset vector c and noise matrix d.
func NewNoisyAffineControlDiscreteSystem(a, b mat.Matrix, c mat.Vector, d mat.Matrix) (*NoisyAffineControlDiscreteSystem, error) {
	if b == nil || c == nil || d == nil {
		return nil, fmt.Errorf("input matrix, offset vector and noise matrix must be defined")
	}

	bs, err := newBase(a, b, c, d, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	return &NoisyAffineControlDiscreteSystem{discreteBase{bs}}, nil
}

// ConstrainedLinearDiscreteSystem is a discrete time system x[k+1] = A x[k]
// with states constrained to the set X.
type ConstrainedLinearDiscreteSystem struct {
	discreteBase
}

// NewConstrainedLinearDiscreteSystem creates new
// ConstrainedLinearDiscreteSystem with state matrix a and state set x.
func NewConstrainedLinearDiscreteSystem(a mat.Matrix, x systems.Set) (*ConstrainedLinearDiscreteSystem, error) {
	if x == nil {
		return nil, fmt.Errorf("state set must be defined")
	}

	bs, err := newBase(a, nil, nil, nil, x, nil, nil)
	if err != nil {
		return nil, err
	}

	return &ConstrainedLinearDiscreteSystem{discreteBase{bs}}, nil
}

// ConstrainedAffineDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + c with states constrained to the set X.
type ConstrainedAffineDiscreteSystem struct {
	discreteBase
}

// NewConstrainedAffineDiscreteSystem creates new
// ConstrainedAffineDiscreteSystem with state matrix a, offset vector c and
// state set x.
func NewConstrainedAffineDiscreteSystem(a mat.Matrix, c mat.Vector, x systems.Set) (*ConstrainedAffineDiscreteSystem, error) {
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

	return &ConstrainedAffineDiscreteSystem{discreteBase{bs}}, nil
}

// ConstrainedLinearControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] with states constrained to X and inputs to U.
type ConstrainedLinearControlDiscreteSystem struct {
	discreteBase
}

// NewConstrainedLinearControlDiscreteSystem creates new
// ConstrainedLinearControlDiscreteSystem with state matrix a, input matrix b,
// state set x and input set u.
func NewConstrainedLinearControlDiscreteSystem(a, b mat.Matrix, x, u systems.Set) (*ConstrainedLinearControlDiscreteSystem, error) {
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

	return &ConstrainedLinearControlDiscreteSystem{discreteBase{bs}}, nil
}

// ConstrainedAffineControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] + c with states constrained to X and inputs to U.
type ConstrainedAffineControlDiscreteSystem struct {
	discreteBase
}

// NewConstrainedAffineControlDiscreteSystem creates new
// ConstrainedAffineControlDiscreteSystem with state matrix a, input matrix b,
// offset vector c, state set x and input set u.
func NewConstrainedAffineControlDiscreteSystem(a, b mat.Matrix, c mat.Vector, x, u systems.Set) (*ConstrainedAffineControlDiscreteSystem, error) {
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

	return &ConstrainedAffineControlDiscreteSystem{discreteBase{bs}}, nil
}

// NoisyConstrainedLinearDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + D w[k] with states constrained to X and noise to W.
type NoisyConstrainedLinearDiscreteSystem struct {
	discreteBase
}

// NewNoisyConstrainedLinearDiscreteSystem creates new
// NoisyConstrainedLinearDiscreteSystem with state matrix a, noise matrix d,
// state set x and noise set w.
func NewNoisyConstrainedLinearDiscreteSystem(a, d mat.Matrix, x, w systems.Set) (*NoisyConstrainedLinearDiscreteSystem, error) {
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

	return &NoisyConstrainedLinearDiscreteSystem{discreteBase{bs}}, nil
}

// NoisyConstrainedLinearControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] + D w[k] with states constrained to X, inputs to U
// and noise to W.
type NoisyConstrainedLinearControlDiscreteSystem struct {
	discreteBase
}

// NewNoisyConstrainedLinearControlDiscreteSystem creates new
// NoisyConstrainedLinearControlDiscreteSystem with state matrix a, input
// matrix b, noise matrix d and the constraint sets x, u and w.
func NewNoisyConstrainedLinearControlDiscreteSystem(a, b, d mat.Matrix, x, u, w systems.Set) (*NoisyConstrainedLinearControlDiscreteSystem, error) {
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

	return &NoisyConstrainedLinearControlDiscreteSystem{discreteBase{bs}}, nil
}

// NoisyConstrainedAffineControlDiscreteSystem is a discrete time system
// x[k+1] = A x[k] + B u[k] + c + D w[k] with states constrained to X, inputs
// to U and noise to W. It is the richest affine variant.
type NoisyConstrainedAffineControlDiscreteSystem struct {
	discreteBase
}

// NewNoisyConstrainedAffineControlDiscreteSystem creates new
// NoisyConstrainedAffineControlDiscreteSystem with all four dynamics fields
// and all three constraint sets.
func NewNoisyConstrainedAffineControlDiscreteSystem(a, b mat.Matrix, c mat.Vector, d mat.Matrix, x, u, w systems.Set) (*NoisyConstrainedAffineControlDiscreteSystem, error) {
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

	return &NoisyConstrainedAffineControlDiscreteSystem{discreteBase{bs}}, nil
}
