// Package set provides constraint sets for system states, inputs and noise.
package set

import (
	"gonum.org/v1/gonum/mat"
)

// Sampler is a set from which random members can be drawn.
type Sampler interface {
	// Sample draws a random member of the set
	Sample() mat.Vector
}
