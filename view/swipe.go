package view

type Gesture int

const (
	G_NONE Gesture = iota
	G_STEP_FORWARD
	G_STEP_BACKWARD
	G_PLAY
	G_STOP
)

func (g Gesture) Name() string {
	switch g {
	case G_STEP_FORWARD:
		return "STEP_FORWARD"
	case G_STEP_BACKWARD:
		return "STEP_BACKWARD"
	case G_PLAY:
		return "PLAY"
	case G_STOP:
		return "STOP"
	default:
		return "NONE"
	}
}

// Classify turns a finished stroke into a gesture. Strokes shorter than
// threshold on both axes are taps and mean nothing.
func Classify(dx, dy, threshold int) Gesture {
	ax, ay := abs(dx), abs(dy)
	if ax < threshold && ay < threshold {
		return G_NONE
	}
	if ax >= ay {
		if dx > 0 {
			return G_STEP_FORWARD
		}
		return G_STEP_BACKWARD
	}
	if dy < 0 {
		return G_PLAY
	}
	return G_STOP
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
