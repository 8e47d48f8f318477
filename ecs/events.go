package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventAnimationLoopCompleted carries an AnimationLoopCompleted.
	EventAnimationLoopCompleted = "animation_loop_completed"
	// EventContact carries a ContactEvent produced by the physics step.
	EventContact = "contact"
)

// AnimationLoopCompleted is emitted once per wrap of a looping clip.
type AnimationLoopCompleted struct {
	Entity Entity
}

// ContactPhase identifies the edge of a contact.
type ContactPhase int

const (
	ContactBegin ContactPhase = iota + 1
	ContactEnd
)

func (p ContactPhase) String() string {
	switch p {
	case ContactBegin:
		return "begin"
	case ContactEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ContactEvent is emitted by the physics system when two entities start or
// stop touching.
type ContactEvent struct {
	Phase ContactPhase
	A     Entity
	B     Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events of one type, keeping the rest in
// order.
func (q *EventQueue) DrainType(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Event{}
	}
	q.items = kept
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
