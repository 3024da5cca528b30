// Package affine provides descriptions of affine dynamical system variants in
// both continuous and discrete time. Each variant carries a fixed subset of
// the canonical affine fields
//
//	x' = A x + B u + c + D w
//
// together with optional constraint sets X, U and W on states, inputs and
// noise. Variants are immutable: constructors copy their matrix arguments and
// accessors return copies.
package affine

import (
	"fmt"

	systems "github.com/milosgajdos/go-systems"
	"gonum.org/v1/gonum/mat"
)

// base carries the canonical affine fields shared by all system variants.
// Absent fields are nil.
type base struct {
	// n is the state dimension
	n int
	// a is the state matrix A
	a *mat.Dense
	// b is the input matrix B
	b *mat.Dense
	// c is the affine offset vector c
	c *mat.VecDense
	// d is the noise matrix D
	d *mat.Dense
	// x, u, w are the state, input and noise constraint sets
	x, u, w systems.Set
}

// newBase validates the affine field shapes and assembles a base from copies
// of the given values. Fields a variant does not carry are passed in as nil.
func newBase(a, b mat.Matrix, c mat.Vector, d mat.Matrix, x, u, w systems.Set) (base, error) {
	if a == nil {
		return base{}, fmt.Errorf("state matrix must be defined")
	}

	n, cols := a.Dims()
	if n != cols {
		return base{}, fmt.Errorf("invalid state matrix dimensions: [%d x %d]", n, cols)
	}

	bs := base{n: n, a: mat.DenseCopyOf(a)}

	if b != nil {
		rb, cb := b.Dims()
		if rb != n {
			return base{}, fmt.Errorf("invalid input matrix dimensions: [%d x %d]", rb, cb)
		}
		bs.b = mat.DenseCopyOf(b)
	}

	if c != nil {
		if c.Len() != n {
			return base{}, fmt.Errorf("invalid offset vector length: %d", c.Len())
		}
		bs.c = mat.VecDenseCopyOf(c)
	}

	if d != nil {
		rd, cd := d.Dims()
		if rd != n {
			return base{}, fmt.Errorf("invalid noise matrix dimensions: [%d x %d]", rd, cd)
		}
		bs.d = mat.DenseCopyOf(d)
	}

	if x != nil {
		if x.Dim() != n {
			return base{}, fmt.Errorf("invalid state set dimension: %d", x.Dim())
		}
		bs.x = x
	}

	if u != nil {
		if bs.b == nil {
			return base{}, fmt.Errorf("input set requires an input matrix")
		}
		if _, cb := bs.b.Dims(); u.Dim() != cb {
			return base{}, fmt.Errorf("invalid input set dimension: %d", u.Dim())
		}
		bs.u = u
	}

	if w != nil {
		if bs.d == nil {
			return base{}, fmt.Errorf("noise set requires a noise matrix")
		}
		if _, cd := bs.d.Dims(); w.Dim() != cd {
			return base{}, fmt.Errorf("invalid noise set dimension: %d", w.Dim())
		}
		bs.w = w
	}

	return bs, nil
}

// StateDim returns the dimension of the system state.
func (s *base) StateDim() int {
	return s.n
}

// InputDim returns the dimension of the system input.
// Systems without an input matrix have input dimension 0.
func (s *base) InputDim() int {
	if s.b == nil {
		return 0
	}
	_, cols := s.b.Dims()

	return cols
}

// NoiseDim returns the dimension of the system noise.
// Systems without a noise matrix have noise dimension 0.
func (s *base) NoiseDim() int {
	if s.d == nil {
		return 0
	}
	_, cols := s.d.Dims()

	return cols
}

// DynamicsFields returns the dynamics fields present on the system in
// canonical order A, B, c, D.
func (s *base) DynamicsFields() []systems.Field {
	var fields []systems.Field
	if s.a != nil {
		fields = append(fields, systems.FieldStateMatrix)
	}
	if s.b != nil {
		fields = append(fields, systems.FieldInputMatrix)
	}
	if s.c != nil {
		fields = append(fields, systems.FieldOffset)
	}
	if s.d != nil {
		fields = append(fields, systems.FieldNoiseMatrix)
	}

	return fields
}

// SetFields returns the constraint set fields present on the system in
// canonical order X, U, W.
func (s *base) SetFields() []systems.Field {
	var fields []systems.Field
	if s.x != nil {
		fields = append(fields, systems.FieldStateSet)
	}
	if s.u != nil {
		fields = append(fields, systems.FieldInputSet)
	}
	if s.w != nil {
		fields = append(fields, systems.FieldNoiseSet)
	}

	return fields
}

// Dynamics returns a copy of the value of dynamics field f or nil if f is
// absent. The affine offset is returned as a single column matrix.
func (s *base) Dynamics(f systems.Field) mat.Matrix {
	switch f {
	case systems.FieldStateMatrix:
		return s.StateMatrix()
	case systems.FieldInputMatrix:
		return s.InputMatrix()
	case systems.FieldOffset:
		if s.c == nil {
			return nil
		}
		return mat.VecDenseCopyOf(s.c)
	case systems.FieldNoiseMatrix:
		return s.NoiseMatrix()
	}

	return nil
}

// Set returns the constraint set stored in set field f or nil if f is absent.
func (s *base) Set(f systems.Field) systems.Set {
	switch f {
	case systems.FieldStateSet:
		return s.x
	case systems.FieldInputSet:
		return s.u
	case systems.FieldNoiseSet:
		return s.w
	}

	return nil
}

// StateMatrix returns a copy of the state matrix A or nil if the system has none.
func (s *base) StateMatrix() mat.Matrix {
	if s.a == nil {
		return nil
	}

	return mat.DenseCopyOf(s.a)
}

// InputMatrix returns a copy of the input matrix B or nil if the system has none.
func (s *base) InputMatrix() mat.Matrix {
	if s.b == nil {
		return nil
	}

	return mat.DenseCopyOf(s.b)
}

// Offset returns a copy of the affine offset vector c or nil if the system has none.
func (s *base) Offset() mat.Vector {
	if s.c == nil {
		return nil
	}

	return mat.VecDenseCopyOf(s.c)
}

// NoiseMatrix returns a copy of the noise matrix D or nil if the system has none.
func (s *base) NoiseMatrix() mat.Matrix {
	if s.d == nil {
		return nil
	}

	return mat.DenseCopyOf(s.d)
}

// StateSet returns the state constraint set X or nil if the system has none.
func (s *base) StateSet() systems.Set {
	return s.x
}

// InputSet returns the input constraint set U or nil if the system has none.
func (s *base) InputSet() systems.Set {
	return s.u
}

// NoiseSet returns the noise constraint set W or nil if the system has none.
func (s *base) NoiseSet() systems.Set {
	return s.w
}

// eval computes A x + B u + c + D w skipping absent fields.
// Vectors for absent fields may be nil or zero length.
func (s *base) eval(x, u, w mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != s.n {
		return nil, fmt.Errorf("invalid state vector: %v", x)
	}

	if u != nil && u.Len() != s.InputDim() {
		return nil, fmt.Errorf("invalid input vector: %v", u)
	}

	if w != nil && w.Len() != s.NoiseDim() {
		return nil, fmt.Errorf("invalid noise vector: %v", w)
	}

	out := mat.NewVecDense(s.n, nil)
	if s.a != nil {
		out.MulVec(s.a, x)
	}

	if s.b != nil && u != nil && u.Len() > 0 {
		bu := mat.NewVecDense(s.n, nil)
		bu.MulVec(s.b, u)
		out.AddVec(out, bu)
	}

	if s.c != nil {
		out.AddVec(out, s.c)
	}

	if s.d != nil && w != nil && w.Len() > 0 {
		dw := mat.NewVecDense(s.n, nil)
		dw.MulVec(s.d, w)
		out.AddVec(out, dw)
	}

	return out, nil
}

// continuousBase equips an affine base with continuous time evaluation.
type continuousBase struct {
	base
}

// VectorField evaluates the state derivative x' = A x + B u + c + D w at
// state x given input u and noise w. Absent fields are skipped; systems
// without input or noise accept nil u and w.
func (s *continuousBase) VectorField(x, u, w mat.Vector) (mat.Vector, error) {
	return s.eval(x, u, w)
}

// discreteBase equips an affine base with discrete time evaluation.
type discreteBase struct {
	base
}

// Successor returns the state following x, i.e. A x + B u + c + D w, given
// input u and noise w. Absent fields are skipped; systems without input or
// noise accept nil u and w.
func (s *discreteBase) Successor(x, u, w mat.Vector) (mat.Vector, error) {
	return s.eval(x, u, w)
}
