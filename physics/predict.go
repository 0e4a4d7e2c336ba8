package physics

// Predictor produces a short-horizon trajectory forecast for one body by
// replaying the Verlet loop on cloned kinematic state. Every other body is
// held frozen at its call-time position for the whole forecast; this is a
// deliberate approximation acceptable for a visual lookahead, not an attempt
// to co-evolve the full system.
type Predictor struct {
	Field ForceField
	DT    float64
	Steps int
}

// Predict returns the forecast positions for target, one per step. It never
// mutates target or any member of bodies. A zero-mass body has no defined
// acceleration and yields an empty forecast.
func (p Predictor) Predict(target *Body, bodies []*Body) []Vec2 {
	if target.Mass == 0 || p.Steps <= 0 {
		return nil
	}

	pos := target.Position
	vel := target.Velocity
	force := target.Force
	invMass := 1 / target.Mass
	var forcePrev Vec2

	path := make([]Vec2, 0, p.Steps)
	for i := 0; i < p.Steps; i++ {
		// As in the live integrator, the position extrapolates from the
		// force at the current scratch position.
		pos = pos.
			Add(vel.Scale(p.DT)).
			Add(force.Scale(invMass).Scale(0.5 * p.DT * p.DT))

		forcePrev = force
		force = p.Field.ForceAt(pos, target.Mass, target.ID, bodies)

		accAvg := forcePrev.Scale(invMass).Add(force.Scale(invMass))
		vel = vel.Add(accAvg.Scale(0.5 * p.DT))

		path = append(path, pos)
	}
	return path
}
