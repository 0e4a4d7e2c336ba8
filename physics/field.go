package physics

// ForceField computes net gravitational force from a softened inverse-square
// law. Softening is added to the squared separation, so the denominator is
// finite even for coincident bodies.
type ForceField struct {
	G         float64
	Softening float64
}

// Force returns the net gravitational force on target from every other body,
// excluding target itself (compared by ID, not by value). It has no side
// effects; the caller decides which field to assign the result into.
func (f ForceField) Force(target *Body, bodies []*Body) Vec2 {
	return f.ForceAt(target.Position, target.Mass, target.ID, bodies)
}

// ForceAt computes the net force on a probe of the given mass placed at pos,
// ignoring the body identified by excludeID. The trajectory predictor uses
// this to evaluate the field at scratch positions without touching any body.
func (f ForceField) ForceAt(pos Vec2, mass float64, excludeID int, bodies []*Body) Vec2 {
	var total Vec2
	for _, other := range bodies {
		if other.ID == excludeID {
			continue
		}
		r := other.Position.Sub(pos)
		d2 := r.MagnitudeSquared() + f.Softening
		// With zero softening a coincident pair would divide by zero; that
		// pair contributes nothing instead.
		if d2 == 0 {
			continue
		}
		mag := f.G * mass * other.Mass / d2
		// A zero separation normalizes to the zero vector, so a coincident
		// pair contributes nothing rather than an undefined direction.
		total = total.Add(r.Normalize().Scale(mag))
	}
	return total
}
