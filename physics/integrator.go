package physics

// Integrator advances bodies with the velocity Verlet scheme: positions are
// extrapolated from the acceleration at the pre-move positions, then
// velocities are corrected with the average of that and the acceleration
// recomputed after the move.
// The pass ordering in Step is what makes the scheme symplectic; fusing or
// reordering the passes degrades it to explicit Euler.
type Integrator struct {
	Field ForceField
	DT    float64
}

// CaptureForces saves each body's current force as ForcePrev and recomputes
// Force from current positions as a fresh accumulator sum. It runs twice per
// tick: once before positions move and once after.
func (in Integrator) CaptureForces(bodies []*Body) {
	for _, b := range bodies {
		b.ForcePrev = b.Force
		b.Force = in.Field.Force(b, bodies)
	}
}

// UpdatePositions advances every body's position from its velocity and the
// acceleration at the current, pre-move positions — the force the preceding
// capture pass just computed. On every tick after the first that value is
// identical to ForcePrev (both are evaluated at the same positions); using
// Force also seeds the very first tick, where no prior force exists yet.
// Zero-mass bodies never move.
func (in Integrator) UpdatePositions(bodies []*Body) {
	for _, b := range bodies {
		if b.Mass == 0 {
			continue
		}
		acc := b.Force.Scale(1 / b.Mass)
		b.Position = b.Position.
			Add(b.Velocity.Scale(in.DT)).
			Add(acc.Scale(0.5 * in.DT * in.DT))
	}
}

// UpdateVelocities applies the Verlet velocity correction using the average
// of the old and new accelerations, then records the new position on the
// body's trail. Zero-mass bodies are skipped entirely.
func (in Integrator) UpdateVelocities(bodies []*Body) {
	for _, b := range bodies {
		if b.Mass == 0 {
			continue
		}
		accPrev := b.ForcePrev.Scale(1 / b.Mass)
		accNow := b.Force.Scale(1 / b.Mass)
		b.Velocity = b.Velocity.Add(accPrev.Add(accNow).Scale(0.5 * in.DT))
		b.recordTrail(b.Position)
	}
}

// Step runs one full tick over the collection. Each pass reads all positions
// before any body writes its own, so processing order within a pass does not
// affect the result.
func (in Integrator) Step(bodies []*Body) {
	in.CaptureForces(bodies)
	in.UpdatePositions(bodies)
	in.CaptureForces(bodies)
	in.UpdateVelocities(bodies)
}
