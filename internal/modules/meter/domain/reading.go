package domain

// Reading is the full derived view of a meeting at one instant.
type Reading struct {
	Clock     ClockState
	Params    Parameters
	Oxygen    OxygenReading
	AltitudeM float64
	DeadZone  bool
	LiveCost  float64
}

// Evaluate recomputes every derived value from the clock and parameters.
// Nothing is cached between calls.
func Evaluate(clock ClockState, params Parameters) Reading {
	elapsed := clock.ElapsedSeconds()
	oxygen := ComputeOxygen(elapsed, params.OnsitePeople, params.RoomAreaM2, params.CeilingHeightM, params.O2ConsumptionLpm)
	altitude := EquivalentAltitude(oxygen.Fraction)
	return Reading{
		Clock:     clock,
		Params:    params,
		Oxygen:    oxygen,
		AltitudeM: altitude,
		DeadZone:  IsDeadZone(altitude),
		LiveCost:  LiveCost(elapsed, params.TotalParticipants(), params.HourlyCostPerPerson),
	}
}
