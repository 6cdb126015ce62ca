package domain

import (
	"strings"

	"airtime/internal/platform/id"
)

// DefaultTopic labels notes entered without a topic.
const DefaultTopic = "General"

type Note struct {
	ID               string
	TimestampSeconds float64
	Topic            string
	Text             string
}

// NoteLog is an append-only list of notes kept newest-first. Only ClearAll
// removes entries. Not safe for concurrent use.
type NoteLog struct {
	ids   id.Generator
	notes []Note
}

func NewNoteLog(ids id.Generator) *NoteLog {
	return &NoteLog{ids: ids}
}

// Add trims topic and text and prepends a note stamped at the given clock
// value. It returns false without creating anything when both are blank.
func (l *NoteLog) Add(topic, text string, atSeconds float64) (Note, bool) {
	topic = strings.TrimSpace(topic)
	text = strings.TrimSpace(text)
	if topic == "" && text == "" {
		return Note{}, false
	}
	if topic == "" {
		topic = DefaultTopic
	}
	note := Note{
		ID:               l.ids.New(),
		TimestampSeconds: atSeconds,
		Topic:            topic,
		Text:             text,
	}
	l.notes = append([]Note{note}, l.notes...)
	return note, true
}

func (l *NoteLog) ClearAll() {
	l.notes = nil
}

// List returns a copy of the notes, newest first.
func (l *NoteLog) List() []Note {
	out := make([]Note, len(l.notes))
	copy(out, l.notes)
	return out
}

func (l *NoteLog) Len() int { return len(l.notes) }

// SplitNote parses "topic | text". Input without a separator is all text.
func SplitNote(raw string) (topic, text string) {
	before, after, found := strings.Cut(raw, "|")
	if !found {
		return "", strings.TrimSpace(raw)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
