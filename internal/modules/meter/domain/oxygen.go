package domain

import "math"

const (
	// AtmosphericO2Fraction is the oxygen share of fresh air the room starts with.
	AtmosphericO2Fraction = 0.209
	// MinO2Fraction keeps the model from ever reporting an empty room.
	MinO2Fraction = 0.01

	MinRoomVolumeM3     = 1.0
	litersPerCubicMeter = 1000.0
)

type OxygenReading struct {
	Fraction         float64
	Percent          float64
	ConsumedLiters   float64
	RoomVolumeLiters float64
}

func (r OxygenReading) RoomVolumeM3() float64 {
	return r.RoomVolumeLiters / litersPerCubicMeter
}

// ComputeOxygen depletes a sealed room's oxygen by what onsite people breathe
// over elapsedSeconds. The fraction stays within [MinO2Fraction, AtmosphericO2Fraction].
func ComputeOxygen(elapsedSeconds float64, onsitePeople int, roomAreaM2, ceilingHeightM, o2ConsumptionLpm float64) OxygenReading {
	volumeM3 := math.Max(MinRoomVolumeM3, roomAreaM2*ceilingHeightM)
	volumeL := volumeM3 * litersPerCubicMeter
	initialO2L := volumeL * AtmosphericO2Fraction

	consumed := math.Max(0, float64(onsitePeople)*o2ConsumptionLpm*(elapsedSeconds/60))
	remaining := math.Max(0, initialO2L-consumed)

	fraction := math.Max(MinO2Fraction, remaining/volumeL)
	fraction = math.Min(fraction, AtmosphericO2Fraction)

	return OxygenReading{
		Fraction:         fraction,
		Percent:          math.Min(AtmosphericO2Fraction*100, fraction*100),
		ConsumedLiters:   consumed,
		RoomVolumeLiters: volumeL,
	}
}
