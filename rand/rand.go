// Package rand generates random system matrices and vectors.
package rand

import (
	"fmt"

	rnd "golang.org/x/exp/rand"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dense returns an r x c matrix with standard normal random entries drawn
// from src. It returns error if src is nil or either dimension is not
// positive.
func Dense(src *rnd.Rand, r, c int) (*mat.Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("invalid random source: %v", src)
	}

	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("invalid matrix dimensions: [%d x %d]", r, c)
	}

	norm := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}
	data := make([]float64, r*c)
	for i := range data {
		data[i] = norm.Rand()
	}

	return mat.NewDense(r, c, data), nil
}

// Vec returns a length n vector with standard normal random entries drawn
// from src. It returns error if src is nil or n is not positive.
func Vec(src *rnd.Rand, n int) (*mat.VecDense, error) {
	if src == nil {
		return nil, fmt.Errorf("invalid random source: %v", src)
	}

	if n <= 0 {
		return nil, fmt.Errorf("invalid vector length: %d", n)
	}

	norm := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}
	data := make([]float64, n)
	for i := range data {
		data[i] = norm.Rand()
	}

	return mat.NewVecDense(n, data), nil
}

// Stable returns a random n x n Hurwitz stable state matrix: every
// eigenvalue has a negative real part, so the matrix is invertible and suits
// exact discretization. The matrix is built as -(G^T G)/n - I from a random
// gaussian G, which makes it symmetric with eigenvalues at or below -1.
func Stable(src *rnd.Rand, n int) (*mat.Dense, error) {
	g, err := Dense(src, n, n)
	if err != nil {
		return nil, err
	}

	a := mat.NewDense(n, n, nil)
	a.Mul(g.T(), g)
	a.Scale(-1.0/float64(n), a)

	eye, _ := matrix.NewDenseValIdentity(n, 1.0)
	a.Sub(a, eye)

	return a, nil
}
