package swarm

import (
	"time"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/hsl"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var testBounds = Bounds{Width: 500, Height: 500, Depth: 500}

// fixedSource always returns the same samples and counts velocity draws.
type fixedSource struct {
	velocity      geometry.Vector3D
	brightness    float64
	velocityCalls int
}

func (s *fixedSource) Velocity() geometry.Vector3D {
	s.velocityCalls++
	return s.velocity
}

func (s *fixedSource) Brightness() float64 { return s.brightness }

func (s *fixedSource) Coordinate(extent float64) float64 { return extent / 2 }

func firefly(id int, brightness float64, pos geometry.Vector3D) Agent {
	return Agent{
		ID:         id,
		Role:       RoleRegular,
		Color:      hsl.Yellow.WithLuminance(brightness),
		Position:   pos,
		LastUpdate: t0,
	}
}

func beaconAt(id int, brightness float64, pos geometry.Vector3D) Agent {
	a := firefly(id, brightness, pos)
	a.Role = RoleBeacon
	a.Color = hsl.Red.WithLuminance(brightness)
	return a
}

func vec(x, y, z float64) geometry.Vector3D {
	return geometry.Vector3D{X: x, Y: y, Z: z}
}
