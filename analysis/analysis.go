// Package analysis quantifies discretization behavior across sampling periods.
package analysis

import (
	"fmt"
	"math"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/discretize"
	"gonum.org/v1/gonum/mat"
)

// Compare returns the distance between the discretizations of sys produced
// by algorithms a and b at each of the given sampling periods. The distance
// is the Frobenius norm of the difference of the discretized dynamics
// bundles. It returns error if sys is not affine or if either algorithm
// fails at any period.
func Compare(sys systems.ContinuousSystem, periods []float64, a, b discretize.Algorithm) ([]float64, error) {
	if sys == nil {
		return nil, fmt.Errorf("invalid system: %v", sys)
	}

	if len(periods) == 0 {
		return nil, fmt.Errorf("no sampling periods given")
	}

	if a == nil || b == nil {
		return nil, fmt.Errorf("algorithms must be defined")
	}

	aff, ok := sys.(systems.AffineSystem)
	if !ok {
		return nil, fmt.Errorf("%w: %T", discretize.ErrNotAffine, sys)
	}

	dyn, _, err := discretize.Extract(aff)
	if err != nil {
		return nil, err
	}

	dist := make([]float64, len(periods))
	for i, dt := range periods {
		da, err := discretize.Apply(a, dt, dyn)
		if err != nil {
			return nil, err
		}

		db, err := discretize.Apply(b, dt, dyn)
		if err != nil {
			return nil, err
		}

		dist[i] = distance(da, db)
	}

	return dist, nil
}

// Convergence returns the distance between the Exact and Euler
// discretizations of sys at each of the given sampling periods. The distance
// vanishes as the periods shrink.
func Convergence(sys systems.ContinuousSystem, periods []float64) ([]float64, error) {
	return Compare(sys, periods, discretize.Exact{}, discretize.Euler{})
}

// Periods returns n logarithmically spaced sampling periods from lo to hi
// inclusive. It returns error unless 0 < lo <= hi and n > 1.
func Periods(lo, hi float64, n int) ([]float64, error) {
	if lo <= 0 || hi < lo {
		return nil, fmt.Errorf("invalid period range: [%v, %v]", lo, hi)
	}

	if n < 2 {
		return nil, fmt.Errorf("invalid period count: %d", n)
	}

	ratio := math.Pow(hi/lo, 1.0/float64(n-1))
	periods := make([]float64, n)
	p := lo
	for i := range periods {
		periods[i] = p
		p *= ratio
	}
	periods[n-1] = hi

	return periods, nil
}

// distance returns the Frobenius norm of the difference of two dynamics
// bundles. Fields absent from either bundle contribute zero.
func distance(a, b discretize.Dynamics) float64 {
	sum := sqDiff(a.A, b.A) + sqDiff(a.B, b.B) + sqDiff(a.D, b.D)

	if a.C != nil && b.C != nil {
		diff := mat.NewVecDense(a.C.Len(), nil)
		diff.SubVec(a.C, b.C)
		n := mat.Norm(diff, 2)
		sum += n * n
	}

	return math.Sqrt(sum)
}

// sqDiff returns the squared Frobenius norm of m1 - m2.
func sqDiff(m1, m2 *mat.Dense) float64 {
	if m1 == nil || m2 == nil {
		return 0
	}

	r, c := m1.Dims()
	diff := mat.NewDense(r, c, nil)
	diff.Sub(m1, m2)
	n := mat.Norm(diff, 2)

	return n * n
}
