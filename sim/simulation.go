package sim

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"gravity-sim/physics"
)

// BodySpec is the construction interface for one body. The radius is always
// derived from mass, never supplied.
type BodySpec struct {
	Name     string
	Mass     float64
	Position physics.Vec2
	Velocity physics.Vec2
	Color    colorful.Color
}

// Simulation owns the body collection, the shared constants, and the tick
// orchestration. It is single-threaded: callers invoke Step at their own
// cadence and read state between steps.
type Simulation struct {
	cfg        Config
	integrator physics.Integrator
	predictor  physics.Predictor
	bodies     []*physics.Body
	predict    bool
	tick       uint64
}

// New validates cfg and the body specs and builds a simulation. Bodies keep
// the order they were supplied in; no body is ever added or destroyed after
// construction.
func New(cfg Config, specs []BodySpec) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	field := physics.ForceField{G: cfg.G, Softening: cfg.Softening}
	scale := physics.RadiusScale{
		BaseMass: cfg.BaseMass,
		Power:    cfg.MassPower,
		Min:      cfg.MinRadius,
		Max:      cfg.MaxRadius,
	}

	s := &Simulation{
		cfg:        cfg,
		integrator: physics.Integrator{Field: field, DT: cfg.DT},
		predictor:  physics.Predictor{Field: field, DT: cfg.DT, Steps: cfg.PredictionSteps},
		bodies:     make([]*physics.Body, 0, len(specs)),
		predict:    cfg.PredictionSteps > 0,
	}

	for i, spec := range specs {
		if spec.Mass < 0 {
			return nil, fmt.Errorf("body %d (%q): mass must not be negative, got %g", i, spec.Name, spec.Mass)
		}
		id := i + 1
		s.bodies = append(s.bodies, physics.NewBody(
			id, spec.Name, spec.Color, spec.Mass,
			spec.Position, spec.Velocity,
			scale, cfg.TrailLength,
		))
	}
	return s, nil
}

// Step advances every body by one fixed time step and, when prediction is
// enabled, regenerates every body's forecast against the post-tick positions
// of the others.
func (s *Simulation) Step() {
	s.integrator.Step(s.bodies)

	if s.predict {
		for _, b := range s.bodies {
			b.SetPredictedPath(s.predictor.Predict(b, s.bodies))
		}
	}
	s.tick++
}

// Bodies returns the ordered body collection. Callers must treat the bodies
// as read-only; all mutation goes through Step.
func (s *Simulation) Bodies() []*physics.Body {
	return s.bodies
}

// Body returns the body at the given index, for indexed selection.
func (s *Simulation) Body(i int) (*physics.Body, bool) {
	if i < 0 || i >= len(s.bodies) {
		return nil, false
	}
	return s.bodies[i], true
}

// Tick reports how many steps have run.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Config returns the immutable configuration the simulation runs with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// SetPredictionEnabled toggles the per-tick forecast pass.
func (s *Simulation) SetPredictionEnabled(on bool) {
	s.predict = on
}

// PredictionEnabled reports whether forecasts are being regenerated.
func (s *Simulation) PredictionEnabled() bool {
	return s.predict
}

// CenterOfMass returns the mass-weighted average position of all bodies.
// When the total mass is zero there is no center of mass; the midpoint of
// the world surface is returned instead of dividing by zero.
func (s *Simulation) CenterOfMass() physics.Vec2 {
	totalMass := 0.0
	var weighted physics.Vec2
	for _, b := range s.bodies {
		totalMass += b.Mass
		weighted = weighted.Add(b.Position.Scale(b.Mass))
	}
	if totalMass == 0 {
		return physics.Vec2{X: s.cfg.WorldWidth / 2, Y: s.cfg.WorldHeight / 2}
	}
	return weighted.Scale(1 / totalMass)
}

// TotalKineticEnergy sums 0.5*m*v² over all bodies.
func (s *Simulation) TotalKineticEnergy() float64 {
	total := 0.0
	for _, b := range s.bodies {
		total += b.KineticEnergy()
	}
	return total
}

// TotalMomentum sums m*v over all bodies.
func (s *Simulation) TotalMomentum() physics.Vec2 {
	var total physics.Vec2
	for _, b := range s.bodies {
		total = total.Add(b.Velocity.Scale(b.Mass))
	}
	return total
}
