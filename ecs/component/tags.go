package component

// Role tags. An entity carries at most one gameplay role plus optional sensor
// sub-tags; roles never change after spawn.

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type Ball struct{}

var BallComponent = NewComponent[Ball]()

type Rock struct {
	Variant int
}

var RockComponent = NewComponent[Rock]()

// RockSensor is a non-colliding proxy around a rock. A ball touching it
// destroys Target (ecs.Entity is uint64).
type RockSensor struct {
	Target uint64
}

var RockSensorComponent = NewComponent[RockSensor]()

type Wall struct {
	Lethal bool
}

var WallComponent = NewComponent[Wall]()

type Paddle struct {
	FacingLeft bool
}

var PaddleComponent = NewComponent[Paddle]()
