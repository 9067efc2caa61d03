package gesture

// Capabilities describes the viewing device.
type Capabilities struct {
	Touch bool // swipe-first device
	Mouse bool
}

// Affordances lists the navigation controls worth rendering.
type Affordances struct {
	Buttons   bool
	SwipeHint bool
	KeyHint   bool
	Dots      bool
}

// Select picks the affordances for a device. It only changes what is drawn;
// advance and retreat behave the same whichever control triggers them.
func Select(c Capabilities) Affordances {
	if c.Touch {
		return Affordances{SwipeHint: true, Dots: true}
	}
	return Affordances{Buttons: true, KeyHint: true, Dots: c.Mouse}
}
