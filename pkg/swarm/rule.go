package swarm

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
)

const (
	// DefaultForceConstant is K in f = K / r².
	DefaultForceConstant = 100.0
	// DefaultEpsilon is the smallest squared distance (or brightness gap) used as a divisor.
	DefaultEpsilon = 1e-6
)

// Rule names accepted by NewRule.
const (
	RulePairwise = "pairwise"
	RuleCentroid = "centroid"
)

// Params tunes the influence rules.
type Params struct {
	ForceConstant float64
	Epsilon       float64
}

// DefaultParams returns K=100 and a 1e-6 degeneracy threshold.
func DefaultParams() Params {
	return Params{ForceConstant: DefaultForceConstant, Epsilon: DefaultEpsilon}
}

// Influence is what the neighbours of one agent do to it during a frame.
type Influence struct {
	Acceleration    geometry.Vector3D
	BrightnessDelta float64
	// HasBrighter is false when no observed neighbour is strictly brighter:
	// the agent then wanders with a fresh random velocity.
	HasBrighter bool
}

// Rule computes the Influence on snapshot[self] from the other observable agents.
// Implementations must only read the snapshot.
type Rule interface {
	Name() string
	Influence(self int, snapshot []Agent, p Params) Influence
}

// NewRule returns the rule registered under name.
func NewRule(name string) (Rule, error) {
	switch name {
	case RulePairwise, "":
		return PairwiseRule{}, nil
	case RuleCentroid:
		return CentroidRule{}, nil
	}
	return nil, fmt.Errorf("unknown influence rule %q", name)
}

// PairwiseRule sums an inverse-square force per neighbour.
// Brighter neighbours attract, the others repel; brightness only picks the sign,
// never the magnitude.
type PairwiseRule struct{}

func (PairwiseRule) Name() string { return RulePairwise }

func (PairwiseRule) Influence(self int, snapshot []Agent, p Params) Influence {
	me := snapshot[self]
	var inf Influence

	for j := range snapshot {
		other := &snapshot[j]
		if j == self || !other.Role.Observable() {
			continue
		}
		brighter := other.Brightness() > me.Brightness()
		if brighter {
			inf.HasBrighter = true
		}

		d := me.Position.Sub(other.Position)
		r2 := d.LenSqr()
		// coincident agents: no direction, and 1/r² would blow up
		if r2 < p.Epsilon {
			continue
		}
		force := d.Normalize().Mul(p.ForceConstant / r2)
		adjustment := 1 / r2
		if brighter {
			inf.Acceleration = inf.Acceleration.Sub(force)
			inf.BrightnessDelta += adjustment
		} else {
			inf.Acceleration = inf.Acceleration.Add(force)
			inf.BrightnessDelta -= adjustment
		}
	}
	return inf.sanitized()
}

// CentroidRule pulls each agent toward the centroid of the others and moves its
// brightness by 1/(meanBrightness − brightness).
type CentroidRule struct{}

func (CentroidRule) Name() string { return RuleCentroid }

func (CentroidRule) Influence(self int, snapshot []Agent, p Params) Influence {
	me := snapshot[self]
	var (
		inf      Influence
		centroid geometry.Vector3D
		sumLum   float64
		count    float64
	)

	for j := range snapshot {
		other := &snapshot[j]
		if j == self || !other.Role.Observable() {
			continue
		}
		if other.Brightness() > me.Brightness() {
			inf.HasBrighter = true
		}
		centroid = centroid.Add(other.Position)
		sumLum += other.Brightness()
		count++
	}
	if count == 0 {
		return inf
	}

	centroid = centroid.Mul(1 / count)
	toward := centroid.Sub(me.Position)
	if r2 := toward.LenSqr(); r2 >= p.Epsilon {
		inf.Acceleration = toward.Normalize().Mul(p.ForceConstant / r2)
	}

	// a tie in brightness has no preferred direction
	if gap := sumLum/count - me.Brightness(); math.Abs(gap) >= p.Epsilon {
		inf.BrightnessDelta = 1 / gap
	}
	return inf.sanitized()
}

// sanitized drops any non-finite component so it cannot reach positions.
func (inf Influence) sanitized() Influence {
	if !inf.Acceleration.IsFinite() {
		inf.Acceleration = geometry.Vector3D{}
	}
	if math.IsNaN(inf.BrightnessDelta) || math.IsInf(inf.BrightnessDelta, 0) {
		inf.BrightnessDelta = 0
	}
	return inf
}
