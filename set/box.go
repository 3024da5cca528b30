package set

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Box is a hyperrectangle given by its lower and upper corner vectors.
type Box struct {
	// lo is the lower corner
	lo *mat.VecDense
	// hi is the upper corner
	hi *mat.VecDense
	// dist are per dimension uniform distributions used for sampling
	dist []distuv.Uniform
}

// NewBox creates new Box bounded by the corner vectors lo and hi.
// It returns error if the corners have mismatched lengths or if the Box is
// empty in some dimension.
func NewBox(lo, hi mat.Vector) (*Box, error) {
	if lo == nil || hi == nil {
		return nil, fmt.Errorf("invalid box corners: %v, %v", lo, hi)
	}

	if lo.Len() != hi.Len() {
		return nil, fmt.Errorf("box corner length mismatch: %d vs %d", lo.Len(), hi.Len())
	}

	if lo.Len() == 0 {
		return nil, fmt.Errorf("invalid set dimension: %d", lo.Len())
	}

	src := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	dist := make([]distuv.Uniform, lo.Len())
	for i := 0; i < lo.Len(); i++ {
		if lo.AtVec(i) > hi.AtVec(i) {
			return nil, fmt.Errorf("empty box: dimension %d has lo %v > hi %v", i, lo.AtVec(i), hi.AtVec(i))
		}
		dist[i] = distuv.Uniform{Min: lo.AtVec(i), Max: hi.AtVec(i), Src: src}
	}

	return &Box{
		lo:   mat.VecDenseCopyOf(lo),
		hi:   mat.VecDenseCopyOf(hi),
		dist: dist,
	}, nil
}

// Dim returns the Box dimension.
func (b *Box) Dim() int {
	return b.lo.Len()
}

// Lo returns the lower corner of the Box.
func (b *Box) Lo() mat.Vector {
	lo := &mat.VecDense{}
	lo.CloneFromVec(b.lo)

	return lo
}

// Hi returns the upper corner of the Box.
func (b *Box) Hi() mat.Vector {
	hi := &mat.VecDense{}
	hi.CloneFromVec(b.hi)

	return hi
}

// Contains returns true if x lies within the Box bounds.
func (b *Box) Contains(x mat.Vector) bool {
	if x == nil || x.Len() != b.Dim() {
		return false
	}

	for i := 0; i < x.Len(); i++ {
		if x.AtVec(i) < b.lo.AtVec(i) || x.AtVec(i) > b.hi.AtVec(i) {
			return false
		}
	}

	return true
}

// Sample draws a uniform random vector from the Box.
func (b *Box) Sample() mat.Vector {
	s := mat.NewVecDense(b.Dim(), nil)
	for i := range b.dist {
		s.SetVec(i, b.dist[i].Rand())
	}

	return s
}

// String implements the Stringer interface.
func (b *Box) String() string {
	return fmt.Sprintf("Box{\nLo=%v\nHi=%v\n}",
		mat.Formatted(b.lo, mat.Prefix("   "), mat.Squeeze()),
		mat.Formatted(b.hi, mat.Prefix("   "), mat.Squeeze()))
}
