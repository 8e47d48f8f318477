package component

// BallSpawnTimer accumulates elapsed seconds until Interval, then a ball is
// launched from the paddle. Speed and Cone (radians, full width around
// straight down) shape the launch velocity.
type BallSpawnTimer struct {
	Interval    float64
	Accumulated float64
	Speed       float64
	Cone        float64
	OffsetY     float64
	Suspended   bool
}

var BallSpawnTimerComponent = NewComponent[BallSpawnTimer]()
