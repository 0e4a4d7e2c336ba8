package physics

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RadiusScale derives a display radius from a body's mass via a monotonic
// power-law mapping, clamped to [Min, Max].
type RadiusScale struct {
	BaseMass float64 // mass that maps to the top of the radius range
	Power    float64 // scaling exponent
	Min      float64
	Max      float64
}

// Radius maps mass to a radius in [Min, Max].
func (s RadiusScale) Radius(mass float64) float64 {
	r := math.Pow(mass/s.BaseMass, s.Power)*(s.Max-s.Min) + s.Min
	return math.Min(s.Max, math.Max(s.Min, r))
}

// Body is the mutable physical state of one point mass. Position, Velocity,
// Force and ForcePrev are updated only by the Integrator; everything else is
// fixed at construction.
type Body struct {
	ID    int // stable identity token, used for self-exclusion in pairwise loops
	Name  string
	Color colorful.Color

	Mass      float64
	Position  Vec2
	Velocity  Vec2
	Force     Vec2 // net force computed from current positions
	ForcePrev Vec2 // net force from one tick earlier, needed by the Verlet velocity update
	Radius    float64

	trail     []Vec2
	trailCap  int
	predicted []Vec2
}

// NewBody constructs a body. A zero mass is allowed and makes the body
// immovable; the radius is always derived from mass, never supplied.
func NewBody(id int, name string, color colorful.Color, mass float64, pos, vel Vec2, scale RadiusScale, trailCap int) *Body {
	if name == "" {
		name = fmt.Sprintf("Body %d", id)
	}
	return &Body{
		ID:       id,
		Name:     name,
		Color:    color,
		Mass:     mass,
		Position: pos,
		Velocity: vel,
		Radius:   scale.Radius(mass),
		trailCap: trailCap,
	}
}

// Trail returns a copy of the body's past positions, oldest first. Its
// length never exceeds the trail capacity.
func (b *Body) Trail() []Vec2 {
	out := make([]Vec2, len(b.trail))
	copy(out, b.trail)
	return out
}

// PredictedPath returns a copy of the most recent trajectory forecast.
func (b *Body) PredictedPath() []Vec2 {
	out := make([]Vec2, len(b.predicted))
	copy(out, b.predicted)
	return out
}

// SetPredictedPath replaces the forecast wholesale. It is not persisted
// across ticks.
func (b *Body) SetPredictedPath(path []Vec2) {
	b.predicted = path
}

// recordTrail appends the current position, evicting the oldest entry once
// the capacity is reached.
func (b *Body) recordTrail(p Vec2) {
	if b.trailCap <= 0 {
		return
	}
	if len(b.trail) < b.trailCap {
		b.trail = append(b.trail, p)
		return
	}
	copy(b.trail, b.trail[1:])
	b.trail[len(b.trail)-1] = p
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return b.Velocity.Magnitude()
}

// KineticEnergy returns 0.5*m*v².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.MagnitudeSquared()
}

// SpeedColor maps the body's current speed onto a blue-to-red ramp,
// saturating at maxSpeed. Used by display consumers.
func (b *Body) SpeedColor(maxSpeed float64) colorful.Color {
	ratio := 0.0
	if maxSpeed > 0 {
		ratio = math.Min(b.Speed()/maxSpeed, 1.0)
	}
	slow := colorful.Color{R: 0, G: 0, B: 1}
	fast := colorful.Color{R: 1, G: 0, B: 0}
	return slow.BlendRgb(fast, ratio)
}
