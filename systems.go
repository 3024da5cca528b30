// Package systems defines descriptions of continuous and discrete time
// dynamical systems and the affine contract consumed by the discretize package.
package systems

import "gonum.org/v1/gonum/mat"

// System is a dynamical system description.
type System interface {
	// StateDim returns the dimension of the system state
	StateDim() int
	// InputDim returns the dimension of the system input
	InputDim() int
	// NoiseDim returns the dimension of the system noise
	NoiseDim() int
}

// ContinuousSystem is a system evolving in continuous time.
type ContinuousSystem interface {
	System
	// VectorField evaluates the state derivative at state x given input u
	// and noise w. Systems without input or noise accept nil u and w.
	VectorField(x, u, w mat.Vector) (mat.Vector, error)
}

// DiscreteSystem is a system evolving in discrete time steps.
type DiscreteSystem interface {
	System
	// Successor returns the state following x given input u and noise w.
	// Systems without input or noise accept nil u and w.
	Successor(x, u, w mat.Vector) (mat.Vector, error)
}

// Set is a constraint set over system states, inputs or noise.
// Discretization passes sets through unchanged.
type Set interface {
	// Dim returns the ambient dimension of the set
	Dim() int
}

// Field identifies a single field of an affine system description.
type Field uint8

const (
	// FieldStateMatrix is the state matrix A
	FieldStateMatrix Field = iota
	// FieldInputMatrix is the input matrix B
	FieldInputMatrix
	// FieldOffset is the affine offset vector c
	FieldOffset
	// FieldNoiseMatrix is the noise matrix D
	FieldNoiseMatrix
	// FieldStateSet is the state constraint set X
	FieldStateSet
	// FieldInputSet is the input constraint set U
	FieldInputSet
	// FieldNoiseSet is the noise constraint set W
	FieldNoiseSet
)

// String implements the Stringer interface.
func (f Field) String() string {
	switch f {
	case FieldStateMatrix:
		return "A"
	case FieldInputMatrix:
		return "B"
	case FieldOffset:
		return "c"
	case FieldNoiseMatrix:
		return "D"
	case FieldStateSet:
		return "X"
	case FieldInputSet:
		return "U"
	case FieldNoiseSet:
		return "W"
	}
	return "invalid"
}

// Fields is a bitmask of affine system fields.
type Fields uint8

// Mask returns the single-field bitmask of f.
func (f Field) Mask() Fields { return 1 << f }

// Has returns true if field f is present in the mask.
func (fs Fields) Has(f Field) bool { return fs&f.Mask() != 0 }

// List returns the fields present in the mask in canonical order:
// dynamics fields A, B, c, D first, followed by set fields X, U, W.
func (fs Fields) List() []Field {
	var list []Field
	for f := FieldStateMatrix; f <= FieldNoiseSet; f++ {
		if fs.Has(f) {
			list = append(list, f)
		}
	}
	return list
}

// String implements the Stringer interface.
func (fs Fields) String() string {
	s := "{"
	for i, f := range fs.List() {
		if i > 0 {
			s += " "
		}
		s += f.String()
	}
	return s + "}"
}

// AffineSystem describes a system whose dynamics decompose into the affine form
//
//	x'(t) = A x(t) + B u(t) + c + D w(t)    (continuous time)
//	x[k+1] = A x[k] + B u[k] + c + D w[k]   (discrete time)
//
// Only the fields reported by DynamicsFields and SetFields are present on a
// given system variant; accessors return nil for absent fields.
type AffineSystem interface {
	System
	// DynamicsFields returns the dynamics fields present on the system in canonical order
	DynamicsFields() []Field
	// SetFields returns the constraint set fields present on the system in canonical order
	SetFields() []Field
	// Dynamics returns the value of dynamics field f or nil if f is absent.
	// The affine offset is returned as a single column matrix.
	Dynamics(f Field) mat.Matrix
	// Set returns the constraint set stored in set field f or nil if f is absent
	Set(f Field) Set
}

// IsAffine returns true if the system dynamics decompose into the affine form.
func IsAffine(s System) bool {
	_, ok := s.(AffineSystem)
	return ok
}

// IsLinear returns true if the system dynamics are linear, i.e. affine with
// no constant offset term.
func IsLinear(s System) bool {
	a, ok := s.(AffineSystem)
	if !ok {
		return false
	}
	for _, f := range a.DynamicsFields() {
		if f == FieldOffset {
			return false
		}
	}
	return true
}
