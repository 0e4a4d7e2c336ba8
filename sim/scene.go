package sim

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"gravity-sim/physics"
)

// DefaultScene builds the stock system: a central star of 500x the base
// mass with four planets spread evenly around it at increasing distances,
// each given a near-circular tangential speed sqrt(G*M/r) with a small
// per-planet variation so the orbits precess visibly.
func DefaultScene(cfg Config) []BodySpec {
	center := physics.Vec2{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2}
	starMass := 500 * cfg.BaseMass

	specs := []BodySpec{{
		Name:     "Star",
		Mass:     starMass,
		Position: center,
		Color:    colorful.Color{R: 1, G: 1, B: 0.31},
	}}

	const planets = 4
	for i := 0; i < planets; i++ {
		angle := 2 * math.Pi * float64(i) / planets
		distance := 150 + float64(i)*50
		speed := math.Sqrt(cfg.G*starMass/distance) * (0.9 + 0.1*float64(i))

		specs = append(specs, BodySpec{
			Name: fmt.Sprintf("Planet %c", 'A'+i),
			Mass: (10 + float64(i)*5) * cfg.BaseMass,
			Position: physics.Vec2{
				X: center.X + distance*math.Cos(angle),
				Y: center.Y + distance*math.Sin(angle),
			},
			Velocity: physics.Vec2{
				X: -speed * math.Sin(angle),
				Y: speed * math.Cos(angle),
			},
			Color: colorful.Hcl(float64(i)*360/planets, 0.7, 0.6).Clamped(),
		})
	}
	return specs
}
