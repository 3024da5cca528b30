package discretize

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// eps is the double precision machine epsilon used in the rank tolerance.
const eps = 2.220446049250313e-16

// Algorithm computes discrete time dynamics from continuous time dynamics
// over one sampling period. Kernels operate on the canonical four slot form
// (A, B, c, D); Apply pads absent fields with zero values of matching shape
// and trims the corresponding outputs.
type Algorithm interface {
	// Discretize transforms the canonical continuous dynamics (a, b, c, d)
	// into their discrete counterparts under sampling period dt.
	Discretize(dt float64, a, b mat.Matrix, c mat.Vector, d mat.Matrix) (ad, bd *mat.Dense, cd *mat.VecDense, dd *mat.Dense, err error)
}

// Exact is the exact discretization algorithm: under piecewise constant
// inputs the discrete system matches the continuous one at every sampling
// instant. It requires an invertible state matrix.
//
//	A_d = e^(A*dt)
//	B_d = A^-1 (A_d - I) B
//	c_d = A^-1 (A_d - I) c
//	D_d = A^-1 (A_d - I) D
//
// See Discrete-Time Control Systems by Katsuhiko Ogata, Eq. (5-73).
type Exact struct{}

// Discretize implements the Algorithm interface.
// It returns ErrSingularStateMatrix if a is rank deficient; the Euler
// algorithm handles such systems.
func (Exact) Discretize(dt float64, a, b mat.Matrix, c mat.Vector, d mat.Matrix) (*mat.Dense, *mat.Dense, *mat.VecDense, *mat.Dense, error) {
	if err := validateCanonical(a, b, c, d); err != nil {
		return nil, nil, nil, nil, err
	}

	n, _ := a.Dims()

	if !fullRank(a) {
		return nil, nil, nil, nil, fmt.Errorf("%w: use the Euler algorithm", ErrSingularStateMatrix)
	}

	// A_d = e^(A*dt)
	ad := &mat.Dense{}
	ad.Scale(dt, a)
	ad.Exp(ad)

	// M = A^-1 (A_d - I)
	eye, _ := matrix.NewDenseValIdentity(n, 1.0)
	aux := mat.NewDense(n, n, nil)
	aux.Sub(ad, eye)

	ainv := mat.NewDense(n, n, nil)
	if err := ainv.Inverse(a); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %v", ErrSingularStateMatrix, err)
	}

	m := mat.NewDense(n, n, nil)
	m.Mul(ainv, aux)

	bd := &mat.Dense{}
	bd.Mul(m, b)

	cd := mat.NewVecDense(n, nil)
	cd.MulVec(m, c)

	dd := &mat.Dense{}
	dd.Mul(m, d)

	return ad, bd, cd, dd, nil
}

// String implements the Stringer interface.
func (Exact) String() string {
	return "exact"
}

// Euler is the forward Euler discretization algorithm: a first order
// approximation of Exact valid for small sampling periods. It places no
// conditions on the state matrix.
//
//	A_d = I + dt*A
//	B_d = dt*B
//	c_d = dt*c
//	D_d = dt*D
type Euler struct{}

// Discretize implements the Algorithm interface.
func (Euler) Discretize(dt float64, a, b mat.Matrix, c mat.Vector, d mat.Matrix) (*mat.Dense, *mat.Dense, *mat.VecDense, *mat.Dense, error) {
	if err := validateCanonical(a, b, c, d); err != nil {
		return nil, nil, nil, nil, err
	}

	n, _ := a.Dims()

	// A_d = I + dt*A
	eye, _ := matrix.NewDenseValIdentity(n, 1.0)
	ad := &mat.Dense{}
	ad.Scale(dt, a)
	ad.Add(ad, eye)

	bd := &mat.Dense{}
	bd.Scale(dt, b)

	cd := mat.NewVecDense(c.Len(), nil)
	cd.ScaleVec(dt, c)

	dd := &mat.Dense{}
	dd.Scale(dt, d)

	return ad, bd, cd, dd, nil
}

// String implements the Stringer interface.
func (Euler) String() string {
	return "euler"
}

// validateCanonical checks the canonical dynamics slots: a square, b and d
// with as many rows as a, c with as many entries as a has rows.
func validateCanonical(a, b mat.Matrix, c mat.Vector, d mat.Matrix) error {
	if a == nil || b == nil || c == nil || d == nil {
		return fmt.Errorf("canonical dynamics slots must all be defined")
	}

	n, cols := a.Dims()
	if n != cols {
		return fmt.Errorf("invalid state matrix dimensions: [%d x %d]", n, cols)
	}

	if rb, cb := b.Dims(); rb != n {
		return fmt.Errorf("invalid input matrix dimensions: [%d x %d]", rb, cb)
	}

	if c.Len() != n {
		return fmt.Errorf("invalid offset vector length: %d", c.Len())
	}

	if rd, cd := d.Dims(); rd != n {
		return fmt.Errorf("invalid noise matrix dimensions: [%d x %d]", rd, cd)
	}

	return nil
}

// fullRank returns true if the square matrix a has full numerical rank: all
// singular values sit above the eps scaled tolerance.
func fullRank(a mat.Matrix) bool {
	n, _ := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return false
	}

	// singular values come ordered largest first
	vals := svd.Values(nil)
	tol := float64(n) * vals[0] * eps

	return vals[len(vals)-1] > tol
}
