package component

// SurvivalClock is the score: seconds survived while Running.
type SurvivalClock struct {
	Elapsed  float64
	Running  bool
	GameOver bool
}

var SurvivalClockComponent = NewComponent[SurvivalClock]()

// AnimationStats counts loop completions reported by the animation system.
type AnimationStats struct {
	Loops map[uint64]int
	Total int
}

var AnimationStatsComponent = NewComponent[AnimationStats]()
