package component

// Arena stores the playable bounds in world space.
type Arena struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (a Arena) Width() float64  { return a.Right - a.Left }
func (a Arena) Height() float64 { return a.Bottom - a.Top }

// Contains reports whether (x, y) lies inside the arena grown by margin.
func (a Arena) Contains(x, y, margin float64) bool {
	return x >= a.Left-margin && x <= a.Right+margin && y >= a.Top-margin && y <= a.Bottom+margin
}

var ArenaComponent = NewComponent[Arena]()
