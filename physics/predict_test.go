package physics

import (
	"math"
	"testing"
)

func TestPredictDoesNotMutate(t *testing.T) {
	field := ForceField{G: 6.674e-2, Softening: 50}
	in := Integrator{Field: field, DT: 0.005}
	p := Predictor{Field: field, DT: 0.005, Steps: 50}

	bodies := []*Body{
		testBody(1, 5e8, Vec2{960, 540}, Vec2{}),
		testBody(2, 1e7, Vec2{1110, 540}, Vec2{0, 149}),
		testBody(3, 1.5e7, Vec2{960, 740}, Vec2{-130, 0}),
	}
	// Populate Force/ForcePrev so the prediction starts from realistic state.
	in.Step(bodies)

	type snapshot struct {
		pos, vel, force, forcePrev Vec2
	}
	before := make([]snapshot, len(bodies))
	for i, b := range bodies {
		before[i] = snapshot{b.Position, b.Velocity, b.Force, b.ForcePrev}
	}

	for _, b := range bodies {
		p.Predict(b, bodies)
	}

	for i, b := range bodies {
		after := snapshot{b.Position, b.Velocity, b.Force, b.ForcePrev}
		if after != before[i] {
			t.Errorf("body %d mutated by Predict: %+v -> %+v", b.ID, before[i], after)
		}
	}
}

func TestPredictPathLength(t *testing.T) {
	field := ForceField{G: 6.674e-2, Softening: 50}
	p := Predictor{Field: field, DT: 0.005, Steps: 50}

	a := testBody(1, 1e6, Vec2{0, 0}, Vec2{})
	b := testBody(2, 1, Vec2{100, 0}, Vec2{0, 8})
	path := p.Predict(b, []*Body{a, b})

	if len(path) != 50 {
		t.Errorf("path length = %d, want 50", len(path))
	}
}

func TestPredictZeroMass(t *testing.T) {
	field := ForceField{G: 6.674e-2, Softening: 50}
	p := Predictor{Field: field, DT: 0.005, Steps: 50}

	heavy := testBody(1, 1e6, Vec2{0, 0}, Vec2{})
	massless := testBody(2, 0, Vec2{100, 0}, Vec2{})

	// Dividing by a zero mass is undefined; the predictor returns an empty
	// path instead of faulting.
	if path := p.Predict(massless, []*Body{heavy, massless}); len(path) != 0 {
		t.Errorf("zero-mass forecast has %d entries, want 0", len(path))
	}
}

func TestPredictFreeBodyCoasts(t *testing.T) {
	// With no other bodies there is no force, so the forecast is a straight
	// line sampled at dt intervals.
	const dt = 0.25
	p := Predictor{Field: ForceField{G: 1, Softening: 1}, DT: dt, Steps: 8}
	b := testBody(1, 2, Vec2{1, 1}, Vec2{X: 4, Y: -2})

	path := p.Predict(b, []*Body{b})
	for i, got := range path {
		want := b.Position.Add(b.Velocity.Scale(dt * float64(i+1)))
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("path[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestPredictCurvesTowardAttractor(t *testing.T) {
	field := ForceField{G: 6.674e-2, Softening: 50}
	in := Integrator{Field: field, DT: 0.005}
	p := Predictor{Field: field, DT: 0.005, Steps: 20}

	heavy := testBody(1, 1e6, Vec2{0, 0}, Vec2{})
	light := testBody(2, 1, Vec2{100, 0}, Vec2{})
	bodies := []*Body{heavy, light}
	// A single force pass, no integration: the forecast of a body at rest
	// must start falling on its very first step.
	in.CaptureForces(bodies)

	path := p.Predict(light, bodies)
	prevX := light.Position.X
	for i, pos := range path {
		if pos.X >= prevX {
			t.Fatalf("path[%d].X = %v, want < %v (falling toward origin)", i, pos.X, prevX)
		}
		prevX = pos.X
	}
}
