package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
}

var PlayerComponent = NewComponent[Player]()

// PlayerCollision is written by the physics system after each step.
type PlayerCollision struct {
	Grounded bool
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
