package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order once per tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := make([]System, 0, len(systems))
	for _, s := range systems {
		if s != nil {
			copied = append(copied, s)
		}
	}
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update simulates one tick of dt seconds. Entities still marked for
// destruction are freed and unconsumed events dropped once every system ran.
func (s *Scheduler) Update(w *World, dt float64) {
	if s == nil || w == nil {
		return
	}
	w.SetDelta(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	w.FlushDestroyed()
	w.events.flush()
	w.ticks++
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
