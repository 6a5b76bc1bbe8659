package risk

import "math"

// PositionUnits sizes a position so that hitting stop loses at most maxRisk.
// Units are floored. A zero-distance stop sizes nothing.
func PositionUnits(maxRisk, entry, stop float64) float64 {
	dist := math.Abs(entry - stop)
	if dist == 0 || maxRisk <= 0 {
		return 0
	}
	return math.Floor(maxRisk / dist)
}

// PlannedRisk is the loss in quote currency if stop is hit on units.
func PlannedRisk(units, entry, stop float64) float64 {
	return math.Abs(units) * math.Abs(entry-stop)
}
