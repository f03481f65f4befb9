package scene

// Frame is what every registered update receives on a tick.
type Frame struct {
	DT float64
	// SceneTime is the scene clock after this tick.
	SceneTime float64
	// LocalTime is the time elapsed since the update was registered.
	LocalTime float64
}

type UpdateFunc func(f Frame)

type UpdateID int

type entry struct {
	id    UpdateID
	name  string
	start float64
	fn    UpdateFunc
}

// FrameScheduler owns the scene clock and calls registered updates once per
// tick, in registration order. It is not safe for concurrent use.
type FrameScheduler struct {
	now     float64
	nextID  UpdateID
	entries []entry
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) Time() float64 { return s.now }

func (s *FrameScheduler) Register(name string, fn UpdateFunc) UpdateID {
	s.nextID++
	s.entries = append(s.entries, entry{id: s.nextID, name: name, start: s.now, fn: fn})
	return s.nextID
}

// Unregister removes an update. Unknown ids are ignored.
func (s *FrameScheduler) Unregister(id UpdateID) bool {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *FrameScheduler) Registered() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

// Tick advances the clock by dt and runs every update. dt <= 0 is a no-op.
func (s *FrameScheduler) Tick(dt float64) {
	if !(dt > 0) {
		return
	}
	s.now += dt
	// updates may unregister themselves
	entries := append([]entry(nil), s.entries...)
	for _, e := range entries {
		e.fn(Frame{DT: dt, SceneTime: s.now, LocalTime: s.now - e.start})
	}
}
