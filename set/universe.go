package set

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Universe is the unconstrained set: it contains every vector of its dimension.
type Universe struct {
	// dim is the Universe dimension
	dim int
}

// NewUniverse creates new Universe with dimension dim.
// It returns error if dim is not positive.
func NewUniverse(dim int) (*Universe, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid set dimension: %d", dim)
	}

	return &Universe{dim: dim}, nil
}

// Dim returns the Universe dimension.
func (u *Universe) Dim() int {
	return u.dim
}

// Contains returns true if x has the Universe dimension.
func (u *Universe) Contains(x mat.Vector) bool {
	return x != nil && x.Len() == u.dim
}

// String implements the Stringer interface.
func (u *Universe) String() string {
	return fmt.Sprintf("Universe{\nDim=%d\n}", u.dim)
}
