package domain

const secondsPerHour = 3600.0

// LiveCost is the money spent so far by everyone invited, onsite or remote.
func LiveCost(elapsedSeconds float64, totalParticipants int, hourlyCostPerPerson float64) float64 {
	return float64(totalParticipants) * (hourlyCostPerPerson / secondsPerHour) * elapsedSeconds
}
