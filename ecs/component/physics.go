package component

import "github.com/jakecoffman/cp"

// BodyKind selects how the physics system simulates a body.
type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
	BodyKinematic
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width/Height describe a box, Radius a circle; a capsule uses Width as the
// distance between the end caps and Radius as the cap radius.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind         BodyKind
	Width        float64
	Height       float64
	Radius       float64
	Capsule      bool
	Mass         float64
	Friction     float64
	Elasticity   float64
	Sensor       bool
	// GravityScale multiplies space gravity. Zero leaves the body floating.
	GravityScale float64
	// FixedRotation locks angular motion (infinite moment).
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can selectively enable/disable collisions between
// groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system will treat it as category 1.
	Category uint32
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system will treat it as all-bits set (collide with all).
	Mask uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()

// Collision categories.
const (
	LayerPlayer uint32 = 1 << iota
	LayerBall
	LayerRock
	LayerWall
	LayerPaddle
)
