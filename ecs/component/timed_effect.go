package component

// TimedEffect destroys its entity once Remaining (seconds) reaches zero.
// It pairs with a resource such as a Sound that is released on expiry.
type TimedEffect struct {
	Remaining float64
}

var TimedEffectComponent = NewComponent[TimedEffect]()
