package server

import (
	"gravity-sim/physics"
	"gravity-sim/sim"
)

// Vec mirrors physics.Vec2 for the wire.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BodyState is one body's full observable state.
type BodyState struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Color         string  `json:"color"` // hex, e.g. "#ff5050"
	SpeedColor    string  `json:"speedColor"`
	Mass          float64 `json:"mass"`
	Radius        float64 `json:"radius"`
	Position      Vec     `json:"position"`
	Velocity      Vec     `json:"velocity"`
	Force         Vec     `json:"force"`
	Speed         float64 `json:"speed"`
	KineticEnergy float64 `json:"kineticEnergy"`
	Trail         []Vec   `json:"trail"`
	PredictedPath []Vec   `json:"predictedPath,omitempty"`
}

// Snapshot is the complete simulation state at one tick, built between steps
// so consumers never observe a half-updated pass.
type Snapshot struct {
	Tick               uint64      `json:"tick"`
	CenterOfMass       Vec         `json:"centerOfMass"`
	TotalKineticEnergy float64     `json:"totalKineticEnergy"`
	TotalMomentum      Vec         `json:"totalMomentum"`
	Bodies             []BodyState `json:"bodies"`
}

func toVec(v physics.Vec2) Vec {
	return Vec{X: v.X, Y: v.Y}
}

func toVecs(vs []physics.Vec2) []Vec {
	out := make([]Vec, len(vs))
	for i, v := range vs {
		out[i] = toVec(v)
	}
	return out
}

// buildSnapshot copies everything a display consumer needs out of the
// simulation. The copies mean the snapshot stays valid after further steps.
func buildSnapshot(s *sim.Simulation) *Snapshot {
	cfg := s.Config()
	bodies := s.Bodies()

	snap := &Snapshot{
		Tick:               s.Tick(),
		CenterOfMass:       toVec(s.CenterOfMass()),
		TotalKineticEnergy: s.TotalKineticEnergy(),
		TotalMomentum:      toVec(s.TotalMomentum()),
		Bodies:             make([]BodyState, 0, len(bodies)),
	}

	for _, b := range bodies {
		snap.Bodies = append(snap.Bodies, BodyState{
			ID:            b.ID,
			Name:          b.Name,
			Color:         b.Color.Hex(),
			SpeedColor:    b.SpeedColor(cfg.MaxRenderSpeed).Hex(),
			Mass:          b.Mass,
			Radius:        b.Radius,
			Position:      toVec(b.Position),
			Velocity:      toVec(b.Velocity),
			Force:         toVec(b.Force),
			Speed:         b.Speed(),
			KineticEnergy: b.KineticEnergy(),
			Trail:         toVecs(b.Trail()),
			PredictedPath: toVecs(b.PredictedPath()),
		})
	}
	return snap
}
