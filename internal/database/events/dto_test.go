package events

import (
	"testing"
	"time"
)

func TestEventDTORoundTrip(t *testing.T) {
	dto := &eventDTO{
		ID:           7,
		Title:        "Standup",
		Description:  "daily sync",
		StartTime:    time.Date(2026, time.January, 1, 9, 30, 0, 0, time.UTC),
		EndTime:      time.Date(2026, time.January, 1, 9, 45, 0, 0, time.UTC),
		Recurrence:   1,
		OrganizerID:  10,
		Participants: []int64{10, 20},
	}

	got := mapFromEvent(mapToEvent(dto))

	if got.ID != dto.ID || got.Title != dto.Title || got.Description != dto.Description {
		t.Errorf("got %+v, want %+v", got, dto)
	}
	if !got.StartTime.Equal(dto.StartTime) || !got.EndTime.Equal(dto.EndTime) {
		t.Errorf("times %v–%v, want %v–%v", got.StartTime, got.EndTime, dto.StartTime, dto.EndTime)
	}
	if got.Recurrence != dto.Recurrence || got.OrganizerID != dto.OrganizerID {
		t.Errorf("got %+v, want %+v", got, dto)
	}
	if len(got.Participants) != 2 || got.Participants[0] != 10 || got.Participants[1] != 20 {
		t.Errorf("participants = %v, want %v", got.Participants, dto.Participants)
	}
}

func TestMapFromEventNormalizesTimes(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ev := mapToEvent(&eventDTO{
		StartTime: time.Date(2026, time.January, 1, 12, 30, 0, 500, loc),
		EndTime:   time.Date(2026, time.January, 1, 13, 30, 0, 500, loc),
	})

	dto := mapFromEvent(ev)

	if dto.StartTime.Location() != time.UTC {
		t.Errorf("stored location = %v, want UTC", dto.StartTime.Location())
	}
	if dto.StartTime.Nanosecond() != 0 {
		t.Errorf("stored time keeps sub-second precision: %v", dto.StartTime)
	}
	if want := time.Date(2026, time.January, 1, 9, 30, 0, 0, time.UTC); !dto.StartTime.Equal(want) {
		t.Errorf("stored start = %v, want %v", dto.StartTime, want)
	}
}
