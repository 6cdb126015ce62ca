package domain

import (
	"math"

	"airtime/internal/platform/money"
)

const (
	DefaultOnsitePeople        = 4
	DefaultRemotePeople        = 2
	DefaultRoomAreaM2          = 30.0
	DefaultCeilingHeightM      = 3.0
	DefaultHourlyCostPerPerson = 80.0
	DefaultO2ConsumptionLpm    = 0.6

	MinRoomAreaM2       = 5.0
	MinO2ConsumptionLpm = 0.01
	// MaxPeople keeps float-to-int conversion of headcounts well defined.
	MaxPeople = math.MaxInt32
)

// Parameters are the user-edited inputs of a meeting. Setters coerce raw
// numbers instead of rejecting them so every model stays a total function.
type Parameters struct {
	OnsitePeople        int
	RemotePeople        int
	RoomAreaM2          float64
	CeilingHeightM      float64
	HourlyCostPerPerson float64
	CurrencyCode        string
	O2ConsumptionLpm    float64
}

func DefaultParameters() Parameters {
	return Parameters{
		OnsitePeople:        DefaultOnsitePeople,
		RemotePeople:        DefaultRemotePeople,
		RoomAreaM2:          DefaultRoomAreaM2,
		CeilingHeightM:      DefaultCeilingHeightM,
		HourlyCostPerPerson: DefaultHourlyCostPerPerson,
		CurrencyCode:        money.FallbackCurrency,
		O2ConsumptionLpm:    DefaultO2ConsumptionLpm,
	}
}

// NewParameters builds a parameter set from raw values, applying the same
// coercion as the individual setters.
func NewParameters(onsite, remote, areaM2, ceilingM, hourly float64, currency string, o2Lpm float64) Parameters {
	p := DefaultParameters()
	p.SetOnsitePeople(onsite)
	p.SetRemotePeople(remote)
	p.SetRoomArea(areaM2)
	p.SetCeilingHeight(ceilingM)
	p.SetHourlyCostPerPerson(hourly)
	p.SetCurrency(currency)
	p.SetO2ConsumptionRate(o2Lpm)
	return p
}

func (p Parameters) TotalParticipants() int {
	return p.OnsitePeople + p.RemotePeople
}

func (p *Parameters) SetOnsitePeople(v float64) {
	p.OnsitePeople = coercePeople(v, DefaultOnsitePeople)
}

func (p *Parameters) SetRemotePeople(v float64) {
	p.RemotePeople = coercePeople(v, DefaultRemotePeople)
}

func (p *Parameters) SetRoomArea(v float64) {
	p.RoomAreaM2 = math.Max(MinRoomAreaM2, finiteOr(v, DefaultRoomAreaM2))
}

// SetCeilingHeight is not exposed as a user intent; it only seeds the height
// from configuration. Non-positive heights fall back to the default.
func (p *Parameters) SetCeilingHeight(v float64) {
	v = finiteOr(v, DefaultCeilingHeightM)
	if v <= 0 {
		v = DefaultCeilingHeightM
	}
	p.CeilingHeightM = v
}

func (p *Parameters) SetHourlyCostPerPerson(v float64) {
	p.HourlyCostPerPerson = math.Max(0, finiteOr(v, DefaultHourlyCostPerPerson))
}

func (p *Parameters) SetO2ConsumptionRate(v float64) {
	p.O2ConsumptionLpm = math.Max(MinO2ConsumptionLpm, finiteOr(v, DefaultO2ConsumptionLpm))
}

func (p *Parameters) SetCurrency(code string) {
	p.CurrencyCode = money.NormalizeCode(code)
}

func coercePeople(v float64, fallback int) int {
	if math.IsNaN(v) {
		return fallback
	}
	v = math.Floor(v)
	if v < 0 {
		return 0
	}
	if v > MaxPeople {
		return MaxPeople
	}
	return int(v)
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
