package swarm

import (
	"image/color"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
)

// Sprite is everything the renderer needs to draw one agent.
type Sprite struct {
	Center geometry.Vector2D
	// Scale is (depth − z) / depth: 1 at the front face, 0 at the back.
	Scale float64
	Color color.RGBA
}

// Project maps an agent onto the screen plane.
func Project(a Agent, b Bounds) Sprite {
	scale := 1.0
	if b.Depth > 0 {
		scale = (b.Depth - a.Position.Z) / b.Depth
	}
	return Sprite{
		Center: a.Position.XY(),
		Scale:  scale,
		Color:  a.Color.RGBA(),
	}
}

// Sprites projects a depth-sorted collection, keeping its back-to-front order.
func Sprites(agents []Agent, b Bounds) []Sprite {
	out := make([]Sprite, len(agents))
	for i, a := range agents {
		out[i] = Project(a, b)
	}
	return out
}
