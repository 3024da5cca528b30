package discretize

import (
	"fmt"

	systems "github.com/milosgajdos/go-systems"
	"gonum.org/v1/gonum/mat"
)

// Dynamics is the ordered bundle of affine dynamics fields
//
//	x' = A x + B u + c + D w
//
// passed to and returned from discretization. Fields the source system
// variant does not carry are nil.
type Dynamics struct {
	// A is the state matrix
	A *mat.Dense
	// B is the input matrix
	B *mat.Dense
	// C is the affine offset vector c
	C *mat.VecDense
	// D is the noise matrix
	D *mat.Dense
}

// Fields returns the bitmask of dynamics fields present in the bundle.
func (dyn Dynamics) Fields() systems.Fields {
	var fs systems.Fields
	if dyn.A != nil {
		fs |= systems.FieldStateMatrix.Mask()
	}
	if dyn.B != nil {
		fs |= systems.FieldInputMatrix.Mask()
	}
	if dyn.C != nil {
		fs |= systems.FieldOffset.Mask()
	}
	if dyn.D != nil {
		fs |= systems.FieldNoiseMatrix.Mask()
	}

	return fs
}

// Values returns the present dynamics fields as matrices in canonical order
// A, B, c, D. The offset is returned as a single column matrix.
func (dyn Dynamics) Values() []mat.Matrix {
	var vals []mat.Matrix
	if dyn.A != nil {
		vals = append(vals, dyn.A)
	}
	if dyn.B != nil {
		vals = append(vals, dyn.B)
	}
	if dyn.C != nil {
		vals = append(vals, dyn.C)
	}
	if dyn.D != nil {
		vals = append(vals, dyn.D)
	}

	return vals
}

// Apply discretizes the bundle dyn with algorithm alg under sampling period
// dt. Absent fields are padded with zero values of matching shape before the
// kernel runs and trimmed from its output, so the result carries exactly the
// fields of the input. A bundle with no fields at all is returned unchanged:
// there is nothing to discretize.
func Apply(alg Algorithm, dt float64, dyn Dynamics) (Dynamics, error) {
	if alg == nil {
		return Dynamics{}, fmt.Errorf("invalid algorithm: %v", alg)
	}

	if dyn.Fields() == 0 {
		return Dynamics{}, nil
	}

	if dyn.A == nil {
		return Dynamics{}, fmt.Errorf("%w: %v", ErrMissingField, systems.FieldStateMatrix)
	}

	n, _ := dyn.A.Dims()

	b := dyn.B
	if b == nil {
		b = mat.NewDense(n, n, nil)
	}

	c := dyn.C
	if c == nil {
		c = mat.NewVecDense(n, nil)
	}

	d := dyn.D
	if d == nil {
		d = mat.NewDense(n, n, nil)
	}

	ad, bd, cd, dd, err := alg.Discretize(dt, dyn.A, b, c, d)
	if err != nil {
		return Dynamics{}, err
	}

	out := Dynamics{A: ad}
	if dyn.B != nil {
		out.B = bd
	}
	if dyn.C != nil {
		out.C = cd
	}
	if dyn.D != nil {
		out.D = dd
	}

	return out, nil
}
