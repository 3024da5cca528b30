package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AsVec returns the single column of m as a new column vector.
// It returns error if m is nil or has more than one column.
func AsVec(m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid matrix: %v", m)
	}

	if v, ok := m.(mat.Vector); ok {
		return mat.VecDenseCopyOf(v), nil
	}

	r, c := m.Dims()
	if c != 1 {
		return nil, fmt.Errorf("invalid column vector dimensions: [%d x %d]", r, c)
	}

	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}

	return v, nil
}

// IsSquare returns true if m has as many rows as columns.
// It panics if m is nil.
func IsSquare(m mat.Matrix) bool {
	r, c := m.Dims()

	return r == c
}
