package component

// Health tracks remaining hits. Invulnerable counts down in seconds after a
// hit; damage is ignored while it is positive.
type Health struct {
	Current          int
	Max              int
	Invulnerable     float64
	InvulnerableTime float64
}

var HealthComponent = NewComponent[Health]()
