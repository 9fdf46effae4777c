package swarm

import "github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"

// Bounds is the axis-aligned box [0,Width]×[0,Height]×[0,Depth].
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Center returns the middle of the box.
func (b Bounds) Center() geometry.Vector3D {
	return geometry.Vector3D{X: b.Width / 2, Y: b.Height / 2, Z: b.Depth / 2}
}

// Contains reports whether p lies inside the box, faces included.
func (b Bounds) Contains(p geometry.Vector3D) bool {
	return p.X >= 0 && p.X <= b.Width &&
		p.Y >= 0 && p.Y <= b.Height &&
		p.Z >= 0 && p.Z <= b.Depth
}

// Reflect clamps a position back into the box and negates the velocity component
// of every axis that was crossed. Axes are handled independently, so a corner hit
// reflects on each violated axis.
func (b Bounds) Reflect(pos, vel geometry.Vector3D) (geometry.Vector3D, geometry.Vector3D) {
	pos.X, vel.X = reflectAxis(pos.X, vel.X, b.Width)
	pos.Y, vel.Y = reflectAxis(pos.Y, vel.Y, b.Height)
	pos.Z, vel.Z = reflectAxis(pos.Z, vel.Z, b.Depth)
	return pos, vel
}

func reflectAxis(p, v, extent float64) (float64, float64) {
	if p < 0 {
		return 0, -v
	}
	if p > extent {
		return extent, -v
	}
	return p, v
}
