package dto

import "time"

type NoteOutput struct {
	ID               string  `json:"id"`
	TimestampSeconds float64 `json:"timestamp_seconds"`
	Clock            string  `json:"clock"`
	Topic            string  `json:"topic"`
	Text             string  `json:"text"`
}

// Snapshot is the derived view state handed to presentation layers. It owns
// its Notes slice and is safe to share once built.
type Snapshot struct {
	ElapsedSeconds      float64      `json:"elapsed_seconds"`
	ElapsedClock        string       `json:"elapsed_clock"`
	Running             bool         `json:"running"`
	OnsitePeople        int          `json:"onsite_people"`
	RemotePeople        int          `json:"remote_people"`
	TotalParticipants   int          `json:"total_participants"`
	RoomAreaM2          float64      `json:"room_area_m2"`
	CeilingHeightM      float64      `json:"ceiling_height_m"`
	O2ConsumptionLpm    float64      `json:"o2_consumption_lpm"`
	HourlyCostPerPerson float64      `json:"hourly_cost_per_person"`
	OxygenFraction      float64      `json:"oxygen_fraction"`
	OxygenPercent       float64      `json:"oxygen_percent"`
	ConsumedLiters      float64      `json:"consumed_liters"`
	RoomVolumeM3        float64      `json:"room_volume_m3"`
	RoomVolumeLiters    float64      `json:"room_volume_liters"`
	AltitudeMeters      float64      `json:"altitude_meters"`
	DeadZone            bool         `json:"dead_zone"`
	LiveCost            float64      `json:"live_cost"`
	CurrencyCode        string       `json:"currency_code"`
	FormattedCost       string       `json:"formatted_cost"`
	Notes               []NoteOutput `json:"notes"`
	TakenAt             time.Time    `json:"taken_at"`
}

type CalculateInput struct {
	OnsitePeople        float64
	RemotePeople        float64
	RoomAreaM2          float64
	CeilingHeightM      float64
	HourlyCostPerPerson float64
	Currency            string
	O2ConsumptionLpm    float64
	Elapsed             time.Duration
}

// ExportInput describes a report. NoteLines are extra "topic | text" notes
// stamped at the end of the snapshot.
type ExportInput struct {
	Title     string
	Snapshot  Snapshot
	NoteLines []string
}

type ExportOutput struct {
	ReportID string
	Path     string
}

type ArchiveOutput struct {
	ID             string
	ArchivedAt     time.Time
	ElapsedSeconds float64
	ElapsedClock   string
	OnsitePeople   int
	RemotePeople   int
	LiveCost       float64
	CurrencyCode   string
	FormattedCost  string
	OxygenPercent  float64
	AltitudeMeters float64
	NoteCount      int
}
