package service

import (
	"github.com/hashicorp/go-hclog"

	meter "airtime/internal/modules/meter/domain"
	"airtime/internal/modules/session/domain"
	"airtime/internal/platform/clock"
	"airtime/internal/platform/id"
	"airtime/internal/platform/money"
)

// MeetingService owns the live state of one widget: parameters, stopwatch
// and notes. Every method must be called from the same goroutine; derived
// values are recomputed on each Reading call.
type MeetingService struct {
	clock  clock.Clock
	log    hclog.Logger
	params meter.Parameters
	watch  meter.Stopwatch
	notes  *domain.NoteLog
}

func NewMeetingService(clk clock.Clock, ids id.Generator, log hclog.Logger, params meter.Parameters) *MeetingService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &MeetingService{
		clock:  clk,
		log:    log.Named("meeting"),
		params: params,
		notes:  domain.NewNoteLog(ids),
	}
}

// Start begins accumulating time and takes the baseline sample right away so
// the first tick already counts.
func (s *MeetingService) Start() bool {
	if !s.watch.Start() {
		return false
	}
	s.watch.Sample(s.clock.Now())
	s.log.Info("clock started", "elapsed", s.watch.Elapsed())
	return true
}

func (s *MeetingService) Pause() bool {
	if !s.watch.Running() {
		return false
	}
	// fold in the time since the last tick before freezing
	s.watch.Flush(s.clock.Now())
	s.watch.Pause()
	s.log.Info("clock paused", "elapsed", s.watch.Elapsed())
	return true
}

// ToggleRunning flips between running and paused and returns the new state.
func (s *MeetingService) ToggleRunning() bool {
	if s.watch.Running() {
		s.Pause()
		return false
	}
	s.Start()
	return true
}

func (s *MeetingService) Reset() {
	s.watch.Reset()
	s.log.Info("clock reset")
}

// Tick samples the clock; it reports whether elapsed time was updated.
func (s *MeetingService) Tick() bool {
	return s.watch.Sample(s.clock.Now())
}

func (s *MeetingService) SetOnsitePeople(n float64) {
	s.params.SetOnsitePeople(n)
	s.log.Debug("onsite people set", "raw", n, "value", s.params.OnsitePeople)
}

func (s *MeetingService) SetRemotePeople(n float64) {
	s.params.SetRemotePeople(n)
	s.log.Debug("remote people set", "raw", n, "value", s.params.RemotePeople)
}

func (s *MeetingService) SetRoomArea(m2 float64) {
	s.params.SetRoomArea(m2)
	s.log.Debug("room area set", "raw", m2, "value", s.params.RoomAreaM2)
}

func (s *MeetingService) SetO2ConsumptionRate(lpm float64) {
	s.params.SetO2ConsumptionRate(lpm)
	s.log.Debug("o2 consumption set", "raw", lpm, "value", s.params.O2ConsumptionLpm)
}

func (s *MeetingService) SetHourlyCostPerPerson(amount float64) {
	s.params.SetHourlyCostPerPerson(amount)
	s.log.Debug("hourly cost set", "raw", amount, "value", s.params.HourlyCostPerPerson)
}

func (s *MeetingService) SetCurrency(code string) {
	s.params.SetCurrency(code)
	if !money.IsISO(s.params.CurrencyCode) {
		s.log.Warn("currency is not an ISO 4217 code; amounts use two decimals", "code", s.params.CurrencyCode)
	}
	s.log.Debug("currency set", "raw", code, "value", s.params.CurrencyCode)
}

// AddNote stamps the note with the current elapsed time.
func (s *MeetingService) AddNote(topic, text string) (domain.Note, bool) {
	note, ok := s.notes.Add(topic, text, s.watch.Elapsed().Seconds())
	if ok {
		s.log.Debug("note added", "id", note.ID, "topic", note.Topic, "at", note.TimestampSeconds)
	}
	return note, ok
}

func (s *MeetingService) ClearNotes() {
	n := s.notes.Len()
	s.notes.ClearAll()
	s.log.Info("notes cleared", "count", n)
}

func (s *MeetingService) Notes() []domain.Note {
	return s.notes.List()
}

func (s *MeetingService) Parameters() meter.Parameters {
	return s.params
}

func (s *MeetingService) Reading() meter.Reading {
	return meter.Evaluate(s.watch.State(), s.params)
}
