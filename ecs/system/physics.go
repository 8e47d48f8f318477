package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBall
	collisionTypeRock
	collisionTypeRockSensor
	collisionTypeWall
	collisionTypePlayer
	collisionTypePlayerGround
	collisionTypePaddle
)

// PhysicsSystem owns the Chipmunk space. Before stepping it creates bodies
// for new PhysicsBody components, removes bodies of dead entities and pushes
// Velocity into dynamic and kinematic bodies. After stepping it writes
// positions and velocities back and publishes the contacts seen during the
// step as ecs.ContactEvent values.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	shapes       map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	groundCount  map[ecs.Entity]int
	contacts     []ecs.ContactEvent
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	kind        component.BodyKind
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:        space,
		entities:     make(map[ecs.Entity]*bodyInfo),
		shapes:       make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		groundCount:  make(map[ecs.Entity]int),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetGravity changes the space gravity, e.g. after a tuning reload.
func (ps *PhysicsSystem) SetGravity(gravity float64) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.space.SetGravity(cp.Vector{X: 0, Y: gravity})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.pushVelocities(w)

	if dt := w.Delta(); dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
	ps.publishContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	for _, other := range []cp.CollisionType{
		collisionTypeBall,
		collisionTypeRock,
		collisionTypeRockSensor,
		collisionTypeWall,
		collisionTypePlayer,
		collisionTypePaddle,
		collisionTypeSolid,
	} {
		handler := ps.space.NewCollisionHandler(collisionTypeBall, other)
		handler.UserData = ps
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
				sys.recordContact(ecs.ContactBegin, arb)
			}
			return true
		}
		handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
				sys.recordContact(ecs.ContactEnd, arb)
			}
		}
	}

	for _, ground := range []cp.CollisionType{collisionTypeRock, collisionTypeWall, collisionTypePaddle, collisionTypeSolid} {
		handler := ps.space.NewCollisionHandler(collisionTypePlayerGround, ground)
		handler.UserData = ps
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			if e, ok := sys.groundOwner(arb); ok {
				sys.groundCount[e]++
			}
			return true
		}
		handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return
			}
			if e, ok := sys.groundOwner(arb); ok && sys.groundCount[e] > 0 {
				sys.groundCount[e]--
			}
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) recordContact(phase ecs.ContactPhase, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB {
		return
	}
	ps.contacts = append(ps.contacts, ecs.ContactEvent{Phase: phase, A: a, B: b})
}

func (ps *PhysicsSystem) groundOwner(arb *cp.Arbiter) (ecs.Entity, bool) {
	shapeA, shapeB := arb.Shapes()
	if e, ok := ps.groundShapes[shapeA]; ok {
		return e, true
	}
	e, ok := ps.groundShapes[shapeB]
	return e, ok
}

func (ps *PhysicsSystem) publishContacts(w *ecs.World) {
	for _, c := range ps.contacts {
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: c})
	}
	ps.contacts = ps.contacts[:0]
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind().ID(), component.TransformComponent.Kind().ID())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(w, e, transform, bodyComp)
		if info == nil || info.mainShape == nil {
			log.Printf("physics: entity %s has an unusable body, skipping", e)
			continue
		}

		ps.entities[e] = info
		for _, shape := range info.shapes {
			if shape == info.groundShape {
				ps.groundShapes[shape] = e
				continue
			}
			ps.shapes[shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	}
}

func collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.BallComponent.Kind()):
		return collisionTypeBall
	case ecs.Has(w, e, component.RockSensorComponent.Kind()):
		return collisionTypeRockSensor
	case ecs.Has(w, e, component.RockComponent.Kind()):
		return collisionTypeRock
	case ecs.Has(w, e, component.WallComponent.Kind()):
		return collisionTypeWall
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.PaddleComponent.Kind()):
		return collisionTypePaddle
	default:
		return collisionTypeSolid
	}
}

func shapeFilterFor(w *ecs.World, e ecs.Entity) cp.ShapeFilter {
	category := uint32(1)
	mask := ^uint32(0)
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = layer.Mask
		}
	}
	return cp.NewShapeFilter(cp.NO_GROUP, uint(category), uint(mask))
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		return nil
	}

	info := &bodyInfo{kind: bodyComp.Kind}
	center := cp.Vector{X: transform.X, Y: transform.Y}

	var body *cp.Body
	switch bodyComp.Kind {
	case component.BodyStatic:
		body = ps.space.StaticBody
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
		body.SetPosition(center)
		ps.space.AddBody(body)
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		switch {
		case bodyComp.FixedRotation:
			moment = math.Inf(1)
		case radius > 0 && !bodyComp.Capsule:
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		default:
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
		body.SetPosition(center)
		body.SetAngle(transform.Rotation)
		scale := bodyComp.GravityScale
		if scale != 1 {
			body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
				cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
			})
		}
		ps.space.AddBody(body)
	}

	// Static shapes hang off the shared static body, so their geometry is
	// offset to the entity position; every other body is centred on it.
	offset := cp.Vector{}
	if bodyComp.Kind == component.BodyStatic {
		offset = center
	}

	var shape *cp.Shape
	switch {
	case bodyComp.Capsule:
		half := width / 2
		shape = cp.NewSegment(body, cp.Vector{X: offset.X - half, Y: offset.Y}, cp.Vector{X: offset.X + half, Y: offset.Y}, radius)
	case radius > 0:
		shape = cp.NewCircle(body, radius, offset)
	default:
		bb := cp.BB{L: offset.X - width/2, B: offset.Y - height/2, R: offset.X + width/2, T: offset.Y + height/2}
		shape = cp.NewBox2(body, bb, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeFor(w, e))
	shape.SetFilter(shapeFilterFor(w, e))
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if ecs.Has(w, e, component.PlayerCollisionComponent.Kind()) && bodyComp.Kind == component.BodyDynamic {
		if ground := ps.createGroundSensor(bodyComp, body); ground != nil {
			ps.space.AddShape(ground)
			info.groundShape = ground
			info.shapes = append(info.shapes, ground)
		}
	}

	return info
}

// createGroundSensor adds a thin sensor under the body's feet.
func (ps *PhysicsSystem) createGroundSensor(bodyComp *component.PhysicsBody, body *cp.Body) *cp.Shape {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	groundShape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.LayerPlayer), uint(component.LayerRock|component.LayerWall|component.LayerPaddle)))
	return groundShape
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind == component.BodyStatic || info.body == nil {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		info.body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
		if info.kind == component.BodyDynamic {
			if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && bodyComp.FixedRotation {
				info.body.SetAngle(0)
				info.body.SetAngularVelocity(0)
			}
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind == component.BodyStatic || info.body == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		pc.Grounded = ps.groundCount[e] > 0
	})
}

// cleanupEntities removes shapes and bodies whose entity died or lost its
// PhysicsBody. Removing a shape fires separate callbacks, so contact ends for
// destroyed entities still reach the collision router.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && info.kind != component.BodyStatic {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.groundCount, e)
	}
}
