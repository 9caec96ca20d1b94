package model

import (
	"errors"
	"testing"
	"time"
)

func TestEventEqual(t *testing.T) {
	a := &Event{ID: 1, EventCreate: EventCreate{Title: "Standup"}}
	b := &Event{ID: 1, EventCreate: EventCreate{Title: "Renamed"}}
	c := &Event{ID: 2, EventCreate: EventCreate{Title: "Standup"}}

	if !a.Equal(b) {
		t.Error("events with the same id must be equal regardless of fields")
	}
	if a.Equal(c) {
		t.Error("events with different ids must not be equal")
	}
	if a.Equal(nil) {
		t.Error("event must not equal nil")
	}
}

func TestEventParticipants(t *testing.T) {
	ev := &Event{ID: 1, Participants: []int64{10}, EventCreate: EventCreate{OrganizerID: 10}}

	if err := ev.AddParticipant(20); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	if err := ev.AddParticipant(20); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("adding twice: got %v, want ErrAlreadyExists", err)
	}
	if !ev.HasParticipant(20) || !ev.HasParticipant(10) {
		t.Fatal("roster must contain both organizer and added participant")
	}

	if err := ev.RemoveParticipant(20); err != nil {
		t.Fatalf("RemoveParticipant: %v", err)
	}
	if err := ev.RemoveParticipant(20); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("removing twice: got %v, want ErrNoRecord", err)
	}
	if ev.HasParticipant(20) {
		t.Fatal("removed participant still on roster")
	}
}

func TestApplyUpdate(t *testing.T) {
	from := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	ev := &Event{
		ID:           1,
		Participants: []int64{10, 20},
		EventCreate: EventCreate{
			Title:       "Standup",
			From:        from,
			To:          from.Add(time.Hour),
			Recurrence:  RecurrenceDaily,
			OrganizerID: 10,
		},
	}

	title := "Planning"
	newTo := from.Add(2 * time.Hour)
	rec := RecurrenceWeekly

	ev.ApplyUpdate(&EventUpdate{
		Title:        &title,
		To:           &newTo,
		Recurrence:   &rec,
		Participants: []int64{20, 30},
	})

	if ev.Title != "Planning" {
		t.Errorf("title = %q, want Planning", ev.Title)
	}
	if !ev.From.Equal(from) {
		t.Errorf("unset from changed to %v", ev.From)
	}
	if !ev.To.Equal(newTo) {
		t.Errorf("to = %v, want %v", ev.To, newTo)
	}
	if ev.Recurrence != RecurrenceWeekly {
		t.Errorf("recurrence = %v, want weekly", ev.Recurrence)
	}

	// Participants are unioned, never replaced, keeping existing order.
	want := []int64{10, 20, 30}
	if len(ev.Participants) != len(want) {
		t.Fatalf("participants = %v, want %v", ev.Participants, want)
	}
	for i, id := range want {
		if ev.Participants[i] != id {
			t.Fatalf("participants = %v, want %v", ev.Participants, want)
		}
	}
}

func TestInstance(t *testing.T) {
	from := time.Date(2026, time.January, 1, 9, 30, 0, 0, time.UTC)
	ev := &Event{
		ID: 7,
		EventCreate: EventCreate{
			From: from,
			To:   from.Add(15 * time.Minute),
		},
	}

	occurrence := from.AddDate(0, 0, 3)
	inst := ev.Instance(occurrence)

	if !inst.From.Equal(occurrence) {
		t.Errorf("instance from = %v, want %v", inst.From, occurrence)
	}
	if !inst.To.Equal(occurrence.Add(15 * time.Minute)) {
		t.Errorf("instance to = %v, want template duration preserved", inst.To)
	}
	if inst.Event != ev {
		t.Error("instance must reference its template")
	}
	if other := ev.Instance(occurrence); other.InstanceKey != inst.InstanceKey {
		t.Error("instance key must be stable for the same occurrence")
	}
	if other := ev.Instance(from); other.InstanceKey == inst.InstanceKey {
		t.Error("different occurrences must have different keys")
	}
}

func TestRecurrenceValid(t *testing.T) {
	for r := RecurrenceNone; r <= RecurrenceYearly; r++ {
		if !r.Valid() {
			t.Errorf("recurrence %d must be valid", r)
		}
	}
	if Recurrence(-1).Valid() || Recurrence(5).Valid() {
		t.Error("out-of-range recurrence must be invalid")
	}
}
