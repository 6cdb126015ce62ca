package domain

import "math"

const (
	ScaleHeightM      = 7000.0
	SummitAltitudeM   = 8848.0
	DeadZoneAltitudeM = 8000.0
)

// EquivalentAltitude returns the height at which fresh air, thinned by the
// barometric approximation P(h) = P0·exp(-h/7000), carries as much oxygen as
// a room at fraction. Result is within [0, SummitAltitudeM].
func EquivalentAltitude(fraction float64) float64 {
	if math.IsNaN(fraction) || fraction <= 0 {
		return SummitAltitudeM
	}
	h := -ScaleHeightM * math.Log(fraction/AtmosphericO2Fraction)
	return math.Min(SummitAltitudeM, math.Max(0, h))
}

func IsDeadZone(altitudeM float64) bool {
	return altitudeM >= DeadZoneAltitudeM
}
