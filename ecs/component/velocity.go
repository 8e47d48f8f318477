package component

// Velocity mirrors the physics body's linear velocity in units per second.
// Movement systems write it before the physics step, the physics system
// writes the stepped value back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
