// Package discretize maps continuous time affine systems to their discrete
// time equivalents under a sampling period.
//
// The dynamics fields of the source system are discretized with one of the
// provided algorithms, Exact or Euler, and its constraint sets are carried
// over unchanged into a discrete system of the corresponding variant:
//
//	disc, err := discretize.Discretize(sys, 0.1)
//
// Variant correspondence is resolved through DefaultRegistry, which covers
// every variant in the affine package. Custom variants plug in through
// Registry and the Discretize options.
package discretize

import (
	"errors"
	"fmt"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/matrix"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotAffine is returned when the dynamics of a system do not
	// decompose into the affine form.
	ErrNotAffine = errors.New("discretize: system is not affine")
	// ErrSingularStateMatrix is returned by the Exact algorithm when the
	// state matrix is rank deficient.
	ErrSingularStateMatrix = errors.New("discretize: singular state matrix")
	// ErrUnknownVariant is returned when a continuous system variant has no
	// registered discrete counterpart.
	ErrUnknownVariant = errors.New("discretize: unknown system variant")
	// ErrMissingField is returned when a system carries no value for a
	// field its variant declares.
	ErrMissingField = errors.New("discretize: missing system field")
)

// Option configures a Discretize call.
type Option func(*options)

type options struct {
	alg  Algorithm
	ctor Constructor
	reg  *Registry
}

// WithAlgorithm sets the discretization algorithm. The default is Exact.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) {
		if alg != nil {
			o.alg = alg
		}
	}
}

// WithConstructor sets the constructor used to rebuild the discrete system,
// bypassing variant lookup. It allows discretizing into arbitrary shapes.
func WithConstructor(ctor Constructor) Option {
	return func(o *options) {
		if ctor != nil {
			o.ctor = ctor
		}
	}
}

// WithRegistry resolves the variant correspondence against r instead of
// DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.reg = r
		}
	}
}

// Discretize maps the continuous time system sys to its discrete time
// equivalent under sampling period dt.
//
// The dynamics fields of sys are discretized with the configured algorithm
// and its constraint sets are carried over unchanged into a discrete system
// of the corresponding variant. The sampling period is not sign checked:
// non-positive periods are numerically well defined, if rarely useful.
//
// It returns ErrNotAffine for systems that do not satisfy the affine system
// contract and ErrUnknownVariant for variants with no registered discrete
// counterpart.
func Discretize(sys systems.ContinuousSystem, dt float64, opts ...Option) (systems.DiscreteSystem, error) {
	if sys == nil {
		return nil, fmt.Errorf("invalid system: %v", sys)
	}

	o := options{alg: Exact{}, reg: DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}

	aff, ok := sys.(systems.AffineSystem)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAffine, sys)
	}

	ctor := o.ctor
	if ctor == nil {
		var err error
		ctor, err = o.reg.Constructor(sys)
		if err != nil {
			return nil, err
		}
	}

	dyn, sets, err := Extract(aff)
	if err != nil {
		return nil, err
	}

	dd, err := Apply(o.alg, dt, dyn)
	if err != nil {
		return nil, err
	}

	return ctor(sys, dd.Values(), sets)
}

// Extract pulls the dynamics bundle and the constraint sets out of an affine
// system. Fields are gathered in canonical order regardless of the order the
// system declares them in. It returns ErrMissingField if a declared field
// carries no value.
func Extract(sys systems.AffineSystem) (Dynamics, []systems.Set, error) {
	if sys == nil {
		return Dynamics{}, nil, fmt.Errorf("invalid system: %v", sys)
	}

	var dyn Dynamics
	for _, f := range sys.DynamicsFields() {
		v := sys.Dynamics(f)
		if v == nil {
			return Dynamics{}, nil, fmt.Errorf("%w: %v", ErrMissingField, f)
		}

		switch f {
		case systems.FieldStateMatrix:
			dyn.A = mat.DenseCopyOf(v)
		case systems.FieldInputMatrix:
			dyn.B = mat.DenseCopyOf(v)
		case systems.FieldOffset:
			c, err := matrix.AsVec(v)
			if err != nil {
				return Dynamics{}, nil, fmt.Errorf("%w: %v: %v", ErrMissingField, f, err)
			}
			dyn.C = c
		case systems.FieldNoiseMatrix:
			dyn.D = mat.DenseCopyOf(v)
		default:
			return Dynamics{}, nil, fmt.Errorf("invalid dynamics field: %v", f)
		}
	}

	var stateSet, inputSet, noiseSet systems.Set
	for _, f := range sys.SetFields() {
		s := sys.Set(f)
		if s == nil {
			return Dynamics{}, nil, fmt.Errorf("%w: %v", ErrMissingField, f)
		}

		switch f {
		case systems.FieldStateSet:
			stateSet = s
		case systems.FieldInputSet:
			inputSet = s
		case systems.FieldNoiseSet:
			noiseSet = s
		default:
			return Dynamics{}, nil, fmt.Errorf("invalid set field: %v", f)
		}
	}

	var sets []systems.Set
	for _, s := range []systems.Set{stateSet, inputSet, noiseSet} {
		if s != nil {
			sets = append(sets, s)
		}
	}

	return dyn, sets, nil
}
