package usecase

import (
	"fmt"
	"time"

	meter "airtime/internal/modules/meter/domain"
	"airtime/internal/modules/session/domain"
	sessiondto "airtime/internal/modules/session/dto"
	"airtime/internal/platform/money"
)

func snapshotFromReading(r meter.Reading, notes []domain.Note, takenAt time.Time) sessiondto.Snapshot {
	p := r.Params
	out := sessiondto.Snapshot{
		ElapsedSeconds:      r.Clock.ElapsedSeconds(),
		ElapsedClock:        domain.FormatClock(r.Clock.ElapsedSeconds()),
		Running:             r.Clock.Running,
		OnsitePeople:        p.OnsitePeople,
		RemotePeople:        p.RemotePeople,
		TotalParticipants:   p.TotalParticipants(),
		RoomAreaM2:          p.RoomAreaM2,
		CeilingHeightM:      p.CeilingHeightM,
		O2ConsumptionLpm:    p.O2ConsumptionLpm,
		HourlyCostPerPerson: p.HourlyCostPerPerson,
		OxygenFraction:      r.Oxygen.Fraction,
		OxygenPercent:       r.Oxygen.Percent,
		ConsumedLiters:      r.Oxygen.ConsumedLiters,
		RoomVolumeM3:        r.Oxygen.RoomVolumeM3(),
		RoomVolumeLiters:    r.Oxygen.RoomVolumeLiters,
		AltitudeMeters:      r.AltitudeM,
		DeadZone:            r.DeadZone,
		LiveCost:            r.LiveCost,
		CurrencyCode:        p.CurrencyCode,
		FormattedCost:       money.Format(r.LiveCost, p.CurrencyCode),
		Notes:               make([]sessiondto.NoteOutput, 0, len(notes)),
		TakenAt:             takenAt,
	}
	for _, n := range notes {
		out.Notes = append(out.Notes, noteOutput(n))
	}
	return out
}

func noteOutput(n domain.Note) sessiondto.NoteOutput {
	return sessiondto.NoteOutput{
		ID:               n.ID,
		TimestampSeconds: n.TimestampSeconds,
		Clock:            domain.FormatClock(n.TimestampSeconds),
		Topic:            n.Topic,
		Text:             n.Text,
	}
}

func recordFromSnapshot(s sessiondto.Snapshot) domain.MeetingRecord {
	rec := domain.MeetingRecord{
		ElapsedSeconds:      s.ElapsedSeconds,
		OnsitePeople:        s.OnsitePeople,
		RemotePeople:        s.RemotePeople,
		RoomAreaM2:          s.RoomAreaM2,
		CeilingHeightM:      s.CeilingHeightM,
		RoomVolumeM3:        s.RoomVolumeM3,
		O2ConsumptionLpm:    s.O2ConsumptionLpm,
		HourlyCostPerPerson: s.HourlyCostPerPerson,
		CurrencyCode:        s.CurrencyCode,
		OxygenPercent:       s.OxygenPercent,
		ConsumedLiters:      s.ConsumedLiters,
		AltitudeMeters:      s.AltitudeMeters,
		DeadZone:            s.DeadZone,
		LiveCost:            s.LiveCost,
		FormattedCost:       s.FormattedCost,
		Notes:               make([]domain.Note, 0, len(s.Notes)),
	}
	if rec.FormattedCost == "" {
		rec.FormattedCost = money.Format(s.LiveCost, s.CurrencyCode)
	}
	for _, n := range s.Notes {
		rec.Notes = append(rec.Notes, domain.Note{ID: n.ID, TimestampSeconds: n.TimestampSeconds, Topic: n.Topic, Text: n.Text})
	}
	return rec
}

// recordFromExport appends the export's note lines as the newest notes, in the
// order given.
func recordFromExport(input sessiondto.ExportInput) domain.MeetingRecord {
	rec := recordFromSnapshot(input.Snapshot)
	extra := make([]domain.Note, 0, len(input.NoteLines))
	for idx, raw := range input.NoteLines {
		topic, text := domain.SplitNote(raw)
		if topic == "" && text == "" {
			continue
		}
		if topic == "" {
			topic = domain.DefaultTopic
		}
		extra = append([]domain.Note{{
			ID:               fmt.Sprintf("line-%d", idx+1),
			TimestampSeconds: input.Snapshot.ElapsedSeconds,
			Topic:            topic,
			Text:             text,
		}}, extra...)
	}
	rec.Notes = append(extra, rec.Notes...)
	return rec
}

func archiveOutput(e domain.ArchiveEntry) sessiondto.ArchiveOutput {
	return sessiondto.ArchiveOutput{
		ID:             e.ID,
		ArchivedAt:     e.ArchivedAt,
		ElapsedSeconds: e.ElapsedSeconds,
		ElapsedClock:   domain.FormatClock(e.ElapsedSeconds),
		OnsitePeople:   e.OnsitePeople,
		RemotePeople:   e.RemotePeople,
		LiveCost:       e.LiveCost,
		CurrencyCode:   e.CurrencyCode,
		FormattedCost:  money.Format(e.LiveCost, e.CurrencyCode),
		OxygenPercent:  e.OxygenPercent,
		AltitudeMeters: e.AltitudeMeters,
		NoteCount:      e.NoteCount,
	}
}
