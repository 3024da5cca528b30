package discretize

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/affine"
	"github.com/milosgajdos/go-systems/set"
)

var (
	fA *mat.Dense
	fB *mat.Dense
	fC *mat.VecDense
	fD *mat.Dense
	sX systems.Set
	sU systems.Set
	sW systems.Set
)

func setup() {
	fA = mat.NewDense(2, 2, []float64{0.0, 1.0, -2.0, -3.0})
	fB = mat.NewDense(2, 1, []float64{0.0, 1.0})
	fC = mat.NewVecDense(2, []float64{0.5, 0.5})
	fD = mat.NewDense(2, 1, []float64{1.0, 0.0})

	sX, _ = set.NewUniverse(2)
	sU, _ = set.NewBox(mat.NewVecDense(1, []float64{-1.0}), mat.NewVecDense(1, []float64{1.0}))
	sW, _ = set.NewBox(mat.NewVecDense(1, []float64{-0.1}), mat.NewVecDense(1, []float64{0.1}))
}

func TestMain(m *testing.M) {
	setup()
	retCode := m.Run()
	os.Exit(retCode)
}

// phantomFieldSystem declares a state matrix it does not carry.
type phantomFieldSystem struct{}

func (s *phantomFieldSystem) StateDim() int { return 1 }
func (s *phantomFieldSystem) InputDim() int { return 0 }
func (s *phantomFieldSystem) NoiseDim() int { return 0 }
func (s *phantomFieldSystem) VectorField(x, u, w mat.Vector) (mat.Vector, error) {
	return x, nil
}
func (s *phantomFieldSystem) DynamicsFields() []systems.Field {
	return []systems.Field{systems.FieldStateMatrix}
}
func (s *phantomFieldSystem) SetFields() []systems.Field        { return nil }
func (s *phantomFieldSystem) Dynamics(systems.Field) mat.Matrix { return nil }
func (s *phantomFieldSystem) Set(systems.Field) systems.Set     { return nil }

// reorderedSystem declares its fields in non-canonical order.
type reorderedSystem struct {
	a *mat.Dense
	c *mat.VecDense
}

func (s *reorderedSystem) StateDim() int { return 2 }
func (s *reorderedSystem) InputDim() int { return 0 }
func (s *reorderedSystem) NoiseDim() int { return 0 }
func (s *reorderedSystem) VectorField(x, u, w mat.Vector) (mat.Vector, error) {
	return x, nil
}
func (s *reorderedSystem) DynamicsFields() []systems.Field {
	return []systems.Field{systems.FieldOffset, systems.FieldStateMatrix}
}
func (s *reorderedSystem) SetFields() []systems.Field { return nil }
func (s *reorderedSystem) Dynamics(f systems.Field) mat.Matrix {
	switch f {
	case systems.FieldStateMatrix:
		return s.a
	case systems.FieldOffset:
		return s.c
	}
	return nil
}
func (s *reorderedSystem) Set(systems.Field) systems.Set { return nil }

// customLinear is an affine variant with no registered counterpart.
type customLinear struct {
	*affine.LinearContinuousSystem
}

func TestDiscretizeVariants(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		name  string
		build func() (systems.ContinuousSystem, error)
		want  systems.DiscreteSystem
		sets  []systems.Set
	}{
		{
			name:  "Identity",
			build: func() (systems.ContinuousSystem, error) { return affine.NewIdentityContinuousSystem(2) },
			want:  &affine.IdentityDiscreteSystem{},
		},
		{
			name:  "ConstrainedIdentity",
			build: func() (systems.ContinuousSystem, error) { return affine.NewConstrainedIdentityContinuousSystem(2, sX) },
			want:  &affine.ConstrainedIdentityDiscreteSystem{},
			sets:  []systems.Set{sX},
		},
		{
			name:  "Linear",
			build: func() (systems.ContinuousSystem, error) { return affine.NewLinearContinuousSystem(fA) },
			want:  &affine.LinearDiscreteSystem{},
		},
		{
			name:  "Affine",
			build: func() (systems.ContinuousSystem, error) { return affine.NewAffineContinuousSystem(fA, fC) },
			want:  &affine.AffineDiscreteSystem{},
		},
		{
			name:  "LinearControl",
			build: func() (systems.ContinuousSystem, error) { return affine.NewLinearControlContinuousSystem(fA, fB) },
			want:  &affine.LinearControlDiscreteSystem{},
		},
		{
			name:  "AffineControl",
			build: func() (systems.ContinuousSystem, error) { return affine.NewAffineControlContinuousSystem(fA, fB, fC) },
			want:  &affine.AffineControlDiscreteSystem{},
		},
		{
			name:  "NoisyLinear",
			build: func() (systems.ContinuousSystem, error) { return affine.NewNoisyLinearContinuousSystem(fA, fD) },
			want:  &affine.NoisyLinearDiscreteSystem{},
		},
		{
			name:  "NoisyLinearControl",
			build: func() (systems.ContinuousSystem, error) { return affine.NewNoisyLinearControlContinuousSystem(fA, fB, fD) },
			want:  &affine.NoisyLinearControlDiscreteSystem{},
		},
		{
			name: "NoisyAffineControl",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewNoisyAffineControlContinuousSystem(fA, fB, fC, fD)
			},
			want: &affine.NoisyAffineControlDiscreteSystem{},
		},
		{
			name:  "ConstrainedLinear",
			build: func() (systems.ContinuousSystem, error) { return affine.NewConstrainedLinearContinuousSystem(fA, sX) },
			want:  &affine.ConstrainedLinearDiscreteSystem{},
			sets:  []systems.Set{sX},
		},
		{
			name: "ConstrainedAffine",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewConstrainedAffineContinuousSystem(fA, fC, sX)
			},
			want: &affine.ConstrainedAffineDiscreteSystem{},
			sets: []systems.Set{sX},
		},
		{
			name: "ConstrainedLinearControl",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewConstrainedLinearControlContinuousSystem(fA, fB, sX, sU)
			},
			want: &affine.ConstrainedLinearControlDiscreteSystem{},
			sets: []systems.Set{sX, sU},
		},
		{
			name: "ConstrainedAffineControl",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewConstrainedAffineControlContinuousSystem(fA, fB, fC, sX, sU)
			},
			want: &affine.ConstrainedAffineControlDiscreteSystem{},
			sets: []systems.Set{sX, sU},
		},
		{
			name: "NoisyConstrainedLinear",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewNoisyConstrainedLinearContinuousSystem(fA, fD, sX, sW)
			},
			want: &affine.NoisyConstrainedLinearDiscreteSystem{},
			sets: []systems.Set{sX, sW},
		},
		{
			name: "NoisyConstrainedLinearControl",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewNoisyConstrainedLinearControlContinuousSystem(fA, fB, fD, sX, sU, sW)
			},
			want: &affine.NoisyConstrainedLinearControlDiscreteSystem{},
			sets: []systems.Set{sX, sU, sW},
		},
		{
			name: "NoisyConstrainedAffineControl",
			build: func() (systems.ContinuousSystem, error) {
				return affine.NewNoisyConstrainedAffineControlContinuousSystem(fA, fB, fC, fD, sX, sU, sW)
			},
			want: &affine.NoisyConstrainedAffineControlDiscreteSystem{},
			sets: []systems.Set{sX, sU, sW},
		},
	} {
		sys, err := test.build()
		assert.NotNil(sys, test.name)
		assert.NoError(err, test.name)

		disc, err := Discretize(sys, 0.01)
		assert.NotNil(disc, test.name)
		assert.NoError(err, test.name)
		assert.IsType(test.want, disc, test.name)

		// dimensions carry over
		assert.Equal(sys.StateDim(), disc.StateDim(), test.name)
		assert.Equal(sys.InputDim(), disc.InputDim(), test.name)
		assert.Equal(sys.NoiseDim(), disc.NoiseDim(), test.name)

		// field structure matches the source variant
		src := sys.(systems.AffineSystem)
		dst := disc.(systems.AffineSystem)
		assert.Equal(src.DynamicsFields(), dst.DynamicsFields(), test.name)
		assert.Equal(src.SetFields(), dst.SetFields(), test.name)

		// constraint sets are carried over as the same objects
		for i, f := range dst.SetFields() {
			assert.Same(test.sets[i], dst.Set(f), test.name)
		}
	}
}

func TestDiscretizeClosedForm(t *testing.T) {
	assert := assert.New(t)
	delta := 1e-12

	a := mat.NewDense(1, 1, []float64{-1.0})
	b := mat.NewDense(1, 1, []float64{1.0})

	sys, err := affine.NewLinearControlContinuousSystem(a, b)
	assert.NotNil(sys)
	assert.NoError(err)

	// x' = -x + u sampled at dt=1: A_d = e^-1, B_d = 1 - e^-1
	disc, err := Discretize(sys, 1.0)
	assert.NotNil(disc)
	assert.NoError(err)

	aff := disc.(systems.AffineSystem)
	ad := aff.Dynamics(systems.FieldStateMatrix)
	bd := aff.Dynamics(systems.FieldInputMatrix)
	assert.InDelta(math.Exp(-1.0), ad.At(0, 0), delta)
	assert.InDelta(1.0-math.Exp(-1.0), bd.At(0, 0), delta)

	// forward Euler of the same system: A_d = 0, B_d = 1
	disc, err = Discretize(sys, 1.0, WithAlgorithm(Euler{}))
	assert.NotNil(disc)
	assert.NoError(err)

	aff = disc.(systems.AffineSystem)
	assert.InDelta(0.0, aff.Dynamics(systems.FieldStateMatrix).At(0, 0), delta)
	assert.InDelta(1.0, aff.Dynamics(systems.FieldInputMatrix).At(0, 0), delta)
}

func TestDiscretizeSingular(t *testing.T) {
	assert := assert.New(t)

	sys, err := affine.NewLinearContinuousSystem(mat.NewDense(2, 2, nil))
	assert.NotNil(sys)
	assert.NoError(err)

	disc, err := Discretize(sys, 0.1)
	assert.Nil(disc)
	assert.True(errors.Is(err, ErrSingularStateMatrix))

	// Euler handles rank deficient state matrices: A_d = I + dt*0 = I
	disc, err = Discretize(sys, 0.1, WithAlgorithm(Euler{}))
	assert.NotNil(disc)
	assert.NoError(err)

	ad := disc.(systems.AffineSystem).Dynamics(systems.FieldStateMatrix)
	assert.True(mat.Equal(ad, mat.NewDense(2, 2, []float64{1.0, 0.0, 0.0, 1.0})))
}

func TestDiscretizeNotAffine(t *testing.T) {
	assert := assert.New(t)

	f := func(x, u, w mat.Vector) (mat.Vector, error) { return x, nil }
	sys, err := affine.NewBlackBoxContinuousSystem(f, 2, 0, 0)
	assert.NotNil(sys)
	assert.NoError(err)

	disc, err := Discretize(sys, 0.1)
	assert.Nil(disc)
	assert.True(errors.Is(err, ErrNotAffine))
}

func TestDiscretizeUnknownVariant(t *testing.T) {
	assert := assert.New(t)

	inner, err := affine.NewLinearContinuousSystem(fA)
	assert.NotNil(inner)
	assert.NoError(err)

	disc, err := Discretize(&customLinear{inner}, 0.1)
	assert.Nil(disc)
	assert.True(errors.Is(err, ErrUnknownVariant))
}

func TestDiscretizeMissingField(t *testing.T) {
	assert := assert.New(t)

	ctor := func(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
		return affine.NewIdentityDiscreteSystem(src.StateDim())
	}

	disc, err := Discretize(&phantomFieldSystem{}, 0.1, WithConstructor(ctor))
	assert.Nil(disc)
	assert.True(errors.Is(err, ErrMissingField))
}

func TestDiscretizeConstructorOverride(t *testing.T) {
	assert := assert.New(t)
	delta := 1e-12

	sys, err := affine.NewLinearContinuousSystem(mat.NewDense(1, 1, []float64{-1.0}))
	assert.NotNil(sys)
	assert.NoError(err)

	var got []mat.Matrix
	ctor := func(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
		got = dyn
		return affine.NewIdentityDiscreteSystem(src.StateDim())
	}

	disc, err := Discretize(sys, 1.0, WithConstructor(ctor))
	assert.NotNil(disc)
	assert.NoError(err)

	// the override received the discretized values and decided the target shape
	assert.IsType(&affine.IdentityDiscreteSystem{}, disc)
	assert.Len(got, 1)
	assert.InDelta(math.Exp(-1.0), got[0].At(0, 0), delta)
}

func TestDiscretizeNil(t *testing.T) {
	assert := assert.New(t)

	disc, err := Discretize(nil, 0.1)
	assert.Nil(disc)
	assert.Error(err)
}

func TestExtract(t *testing.T) {
	assert := assert.New(t)

	sys, err := affine.NewNoisyConstrainedAffineControlContinuousSystem(fA, fB, fC, fD, sX, sU, sW)
	assert.NotNil(sys)
	assert.NoError(err)

	dyn, sets, err := Extract(sys)
	assert.NoError(err)
	assert.True(mat.Equal(fA, dyn.A))
	assert.True(mat.Equal(fB, dyn.B))
	assert.True(mat.Equal(fC, dyn.C))
	assert.True(mat.Equal(fD, dyn.D))
	assert.Len(sets, 3)
	assert.Same(sX, sets[0])
	assert.Same(sU, sets[1])
	assert.Same(sW, sets[2])

	// extraction canonicalizes the declared field order
	re := &reorderedSystem{a: fA, c: fC}
	dyn, sets, err = Extract(re)
	assert.NoError(err)
	assert.Len(sets, 0)
	assert.True(mat.Equal(fA, dyn.A))
	assert.True(mat.Equal(fC, dyn.C))

	vals := dyn.Values()
	assert.Len(vals, 2)
	r, c := vals[0].Dims()
	assert.Equal([2]int{2, 2}, [2]int{r, c})

	// declared fields must carry values
	_, _, err = Extract(&phantomFieldSystem{})
	assert.True(errors.Is(err, ErrMissingField))

	_, _, err = Extract(nil)
	assert.Error(err)
}
