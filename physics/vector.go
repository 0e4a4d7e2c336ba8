package physics

import "math"

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns the vector multiplied by a scalar
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Magnitude returns the magnitude (length) of the vector
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagnitudeSquared returns the squared magnitude, avoiding the square root
func (v Vec2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the normalized vector (unit length). A zero-length
// vector has no direction and normalizes to the zero vector.
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag < 1e-12 {
		return Vec2{}
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}
