package metric

import "math"

const (
	neutralColor     = "#"
	notReviewedColor = "#9e9e9e"
)

var scoreColors = map[int]string{
	-3: "#b71c1c",
	-2: "#e53935",
	-1: "#ef9a9a",
	1:  "#a5d6a7",
	2:  "#43a047",
	3:  "#1b5e20",
}

// scoreColor shades negative scores red and positive scores green.
// Any other value gets the neutral marker.
func scoreColor(value float64) string {
	if value != math.Trunc(value) {
		return neutralColor
	}
	if color, found := scoreColors[int(value)]; found {
		return color
	}
	return neutralColor
}
