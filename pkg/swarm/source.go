package swarm

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
)

// Source is the uniform random service injected into the engine.
// A single instance is used for the whole run and never re-seeded.
type Source interface {
	// Velocity samples each axis uniformly from the configured velocity range.
	Velocity() geometry.Vector3D
	// Brightness samples an integer brightness in [0,100].
	Brightness() float64
	// Coordinate samples uniformly from [0, extent].
	Coordinate(extent float64) float64
}

// UniformSource is the deterministic Source backed by a seeded PCG generator.
type UniformSource struct {
	rng    *rand.Rand
	velMin float64
	velMax float64
}

var _ Source = (*UniformSource)(nil)

// NewUniformSource seeds a generator; velocities are drawn from [velMin, velMax).
func NewUniformSource(seed uint64, velMin, velMax float64) *UniformSource {
	if velMax < velMin {
		velMin, velMax = velMax, velMin
	}
	return &UniformSource{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		velMin: velMin,
		velMax: velMax,
	}
}

func (s *UniformSource) Velocity() geometry.Vector3D {
	return geometry.Vector3D{X: s.component(), Y: s.component(), Z: s.component()}
}

func (s *UniformSource) Brightness() float64 {
	return float64(s.rng.IntN(101))
}

func (s *UniformSource) Coordinate(extent float64) float64 {
	return s.rng.Float64() * extent
}

func (s *UniformSource) component() float64 {
	return s.velMin + s.rng.Float64()*(s.velMax-s.velMin)
}
