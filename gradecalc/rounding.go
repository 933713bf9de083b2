package gradecalc

import (
	"math"
	"strconv"
	"strings"
)

// floorSlack absorbs binary representation error before flooring, e.g.
// 86.9*10 evaluating to 868.9999999999999.
const floorSlack = 1e-9

// Match records whether a recomputed percentage agrees with the portal's
// displayed one.
type Match struct {
	Rounded bool `json:"rounded"`
	Floored bool `json:"floored"`
}

func (m Match) Any() bool {
	return m.Rounded || m.Floored
}

// CompareDisplayed rounds, and separately floors, both values to the
// smaller of their decimal precisions and compares the results.
func CompareDisplayed(raw, displayed float64) Match {
	scale := math.Pow10(min(decimalPlaces(raw), decimalPlaces(displayed)))
	return Match{
		Rounded: math.Round(raw*scale) == math.Round(displayed*scale),
		Floored: math.Floor(raw*scale+floorSlack) == math.Floor(displayed*scale+floorSlack),
	}
}

func decimalPlaces(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
