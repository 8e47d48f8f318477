package component

// PaddleController tunes the predictive paddle. RestingY is the paddle's
// resting line: balls below it are ignored.
type PaddleController struct {
	Speed    float64
	Width    float64
	RestingY float64
}

var PaddleControllerComponent = NewComponent[PaddleController]()
