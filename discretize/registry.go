package discretize

import (
	"fmt"
	"reflect"
	"sort"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/affine"
	"github.com/milosgajdos/go-systems/matrix"
	"gonum.org/v1/gonum/mat"
)

// Constructor builds a discrete time system from discretized dynamics values
// and carried over constraint sets, both in canonical order. The source
// continuous system src supplies dimensions the values alone do not carry,
// such as the state dimension of identity variants.
type Constructor func(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error)

// Pair names a registered correspondence between a continuous time variant
// and its discrete time counterpart.
type Pair struct {
	// Continuous is the continuous time variant name
	Continuous string
	// Discrete is the discrete time variant name
	Discrete string
}

// entry ties a discrete counterpart type to its constructor.
type entry struct {
	typ  reflect.Type
	ctor Constructor
}

// Registry maps continuous time system variants to their discrete time
// counterparts. The mapping is bijective: no two continuous variants share a
// discrete counterpart.
//
// Registry is not synchronized: register all variants before lookups start,
// ideally from package init functions.
type Registry struct {
	continuous map[reflect.Type]entry
	discrete   map[reflect.Type]reflect.Type
}

// NewRegistry creates new empty variant Registry.
func NewRegistry() *Registry {
	return &Registry{
		continuous: make(map[reflect.Type]entry),
		discrete:   make(map[reflect.Type]reflect.Type),
	}
}

// Register records the correspondence between the variant of cont and the
// variant of disc together with the constructor rebuilding the variant of
// disc from discretized values. The prototypes carry variant identity only:
// their field values are ignored. It returns error for nil arguments,
// duplicate registrations and correspondences that would break bijectivity.
func (r *Registry) Register(cont systems.ContinuousSystem, disc systems.DiscreteSystem, ctor Constructor) error {
	if cont == nil || disc == nil || ctor == nil {
		return fmt.Errorf("invalid variant registration")
	}

	ct := reflect.TypeOf(cont)
	dt := reflect.TypeOf(disc)

	if _, ok := r.continuous[ct]; ok {
		return fmt.Errorf("variant already registered: %v", typeName(ct))
	}

	if prev, ok := r.discrete[dt]; ok {
		return fmt.Errorf("discrete variant %v already paired with %v", typeName(dt), typeName(prev))
	}

	r.continuous[ct] = entry{typ: dt, ctor: ctor}
	r.discrete[dt] = ct

	return nil
}

// Registered returns true if the variant of cont has a discrete counterpart.
func (r *Registry) Registered(cont systems.ContinuousSystem) bool {
	if cont == nil {
		return false
	}

	_, ok := r.continuous[reflect.TypeOf(cont)]

	return ok
}

// Constructor returns the constructor of the discrete counterpart of the
// variant of cont. It returns ErrUnknownVariant if the variant has no
// registered counterpart.
func (r *Registry) Constructor(cont systems.ContinuousSystem) (Constructor, error) {
	e, ok := r.continuous[reflect.TypeOf(cont)]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, cont)
	}

	return e.ctor, nil
}

// Pairs returns the registered variant correspondences sorted by continuous
// variant name.
func (r *Registry) Pairs() []Pair {
	pairs := make([]Pair, 0, len(r.continuous))
	for ct, e := range r.continuous {
		pairs = append(pairs, Pair{Continuous: typeName(ct), Discrete: typeName(e.typ)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Continuous < pairs[j].Continuous })

	return pairs
}

// typeName returns the bare type name of t with pointer indirection stripped.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Name()
}

// DefaultRegistry holds the correspondence for every variant in the affine
// package. A failed registration here is a programming error and panics.
var DefaultRegistry = NewRegistry()

func init() {
	for _, v := range []struct {
		cont systems.ContinuousSystem
		disc systems.DiscreteSystem
		ctor Constructor
	}{
		{&affine.IdentityContinuousSystem{}, &affine.IdentityDiscreteSystem{}, newIdentity},
		{&affine.ConstrainedIdentityContinuousSystem{}, &affine.ConstrainedIdentityDiscreteSystem{}, newConstrainedIdentity},
		{&affine.LinearContinuousSystem{}, &affine.LinearDiscreteSystem{}, newLinear},
		{&affine.AffineContinuousSystem{}, &affine.AffineDiscreteSystem{}, newAffine},
		{&affine.LinearControlContinuousSystem{}, &affine.LinearControlDiscreteSystem{}, newLinearControl},
		{&affine.AffineControlContinuousSystem{}, &affine.AffineControlDiscreteSystem{}, newAffineControl},
		{&affine.NoisyLinearContinuousSystem{}, &affine.NoisyLinearDiscreteSystem{}, newNoisyLinear},
		{&affine.NoisyLinearControlContinuousSystem{}, &affine.NoisyLinearControlDiscreteSystem{}, newNoisyLinearControl},
		{&affine.NoisyAffineControlContinuousSystem{}, &affine.NoisyAffineControlDiscreteSystem{}, newNoisyAffineControl},
		{&affine.ConstrainedLinearContinuousSystem{}, &affine.ConstrainedLinearDiscreteSystem{}, newConstrainedLinear},
		{&affine.ConstrainedAffineContinuousSystem{}, &affine.ConstrainedAffineDiscreteSystem{}, newConstrainedAffine},
		{&affine.ConstrainedLinearControlContinuousSystem{}, &affine.ConstrainedLinearControlDiscreteSystem{}, newConstrainedLinearControl},
		{&affine.ConstrainedAffineControlContinuousSystem{}, &affine.ConstrainedAffineControlDiscreteSystem{}, newConstrainedAffineControl},
		{&affine.NoisyConstrainedLinearContinuousSystem{}, &affine.NoisyConstrainedLinearDiscreteSystem{}, newNoisyConstrainedLinear},
		{&affine.NoisyConstrainedLinearControlContinuousSystem{}, &affine.NoisyConstrainedLinearControlDiscreteSystem{}, newNoisyConstrainedLinearControl},
		{&affine.NoisyConstrainedAffineControlContinuousSystem{}, &affine.NoisyConstrainedAffineControlDiscreteSystem{}, newNoisyConstrainedAffineControl},
	} {
		if err := DefaultRegistry.Register(v.cont, v.disc, v.ctor); err != nil {
			panic(err)
		}
	}
}

// arity validates the argument counts handed to a variant constructor.
func arity(dyn []mat.Matrix, nd int, sets []systems.Set, ns int) error {
	if len(dyn) != nd || len(sets) != ns {
		return fmt.Errorf("invalid variant arguments: got %d dynamics values and %d sets, want %d and %d", len(dyn), len(sets), nd, ns)
	}

	return nil
}

func newIdentity(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 0, sets, 0); err != nil {
		return nil, err
	}

	return affine.NewIdentityDiscreteSystem(src.StateDim())
}

func newConstrainedIdentity(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 0, sets, 1); err != nil {
		return nil, err
	}

	return affine.NewConstrainedIdentityDiscreteSystem(src.StateDim(), sets[0])
}

func newLinear(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 1, sets, 0); err != nil {
		return nil, err
	}

	return affine.NewLinearDiscreteSystem(dyn[0])
}

func newAffine(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 2, sets, 0); err != nil {
		return nil, err
	}

	c, err := matrix.AsVec(dyn[1])
	if err != nil {
		return nil, err
	}

	return affine.NewAffineDiscreteSystem(dyn[0], c)
}

func newLinearControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 2, sets, 0); err != nil {
		return nil, err
	}

	return affine.NewLinearControlDiscreteSystem(dyn[0], dyn[1])
}

func newAffineControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 3, sets, 0); err != nil {
		return nil, err
	}

	c, err := matrix.AsVec(dyn[2])
	if err != nil {
		return nil, err
	}

	return affine.NewAffineControlDiscreteSystem(dyn[0], dyn[1], c)
}

func newNoisyLinear(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 2, sets, 0); err != nil {
		return nil, err
	}

	return affine.NewNoisyLinearDiscreteSystem(dyn[0], dyn[1])
}

func newNoisyLinearControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 3, sets, 0); err != nil {
		return nil, err
	}

	return affine.NewNoisyLinearControlDiscreteSystem(dyn[0], dyn[1], dyn[2])
}

func newNoisyAffineControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 4, sets, 0); err != nil {
		return nil, err
	}

	c, err := matrix.AsVec(dyn[2])
	if err != nil {
		return nil, err
	}

	return affine.NewNoisyAffineControlDiscreteSystem(dyn[0], dyn[1], c, dyn[3])
}

func newConstrainedLinear(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 1, sets, 1); err != nil {
		return nil, err
	}

	return affine.NewConstrainedLinearDiscreteSystem(dyn[0], sets[0])
}

func newConstrainedAffine(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 2, sets, 1); err != nil {
		return nil, err
	}

	c, err := matrix.AsVec(dyn[1])
	if err != nil {
		return nil, err
	}

	return affine.NewConstrainedAffineDiscreteSystem(dyn[0], c, sets[0])
}

func newConstrainedLinearControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 2, sets, 2); err != nil {
		return nil, err
	}

	return affine.NewConstrainedLinearControlDiscreteSystem(dyn[0], dyn[1], sets[0], sets[1])
}

func newConstrainedAffineControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 3, sets, 2); err != nil {
		return nil, err
	}

	c, err := matrix.AsVec(dyn[2])
	if err != nil {
		return nil, err
	}

	return affine.NewConstrainedAffineControlDiscreteSystem(dyn[0], dyn[1], c, sets[0], sets[1])
}

func newNoisyConstrainedLinear(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 2, sets, 2); err != nil {
		return nil, err
	}

	return affine.NewNoisyConstrainedLinearDiscreteSystem(dyn[0], dyn[1], sets[0], sets[1])
}

func newNoisyConstrainedLinearControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 3, sets, 3); err != nil {
		return nil, err
	}

	return affine.NewNoisyConstrainedLinearControlDiscreteSystem(dyn[0], dyn[1], dyn[2], sets[0], sets[1], sets[2])
}

func newNoisyConstrainedAffineControl(src systems.ContinuousSystem, dyn []mat.Matrix, sets []systems.Set) (systems.DiscreteSystem, error) {
	if err := arity(dyn, 4, sets, 3); err != nil {
		return nil, err
	}

	c, err := matrix.AsVec(dyn[2])
	if err != nil {
		return nil, err
	}

	return affine.NewNoisyConstrainedAffineControlDiscreteSystem(dyn[0], dyn[1], c, dyn[3], sets[0], sets[1], sets[2])
}
