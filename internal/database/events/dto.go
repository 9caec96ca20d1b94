package events

import (
	"time"

	"github.com/dsmelov/calendar-backend/internal/model"
)

type eventDTO struct {
	ID           int64
	Title        string
	Description  string
	StartTime    time.Time
	EndTime      time.Time
	Recurrence   int
	OrganizerID  int64
	Participants []int64
}

// Timestamps are stored in UTC; recurrence is stored as its enum tag,
// participants as user id references. Displayable forms are a
// presentation concern.
func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		ID:           dto.ID,
		Participants: dto.Participants,
		EventCreate: model.EventCreate{
			Title:       dto.Title,
			Description: dto.Description,
			From:        dto.StartTime.UTC(),
			To:          dto.EndTime.UTC(),
			Recurrence:  model.Recurrence(dto.Recurrence),
			OrganizerID: dto.OrganizerID,
		},
	}
}

func mapFromEvent(ev *model.Event) *eventDTO {
	return &eventDTO{
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		StartTime:    ev.From.Truncate(time.Second).UTC(),
		EndTime:      ev.To.Truncate(time.Second).UTC(),
		Recurrence:   int(ev.Recurrence),
		OrganizerID:  ev.OrganizerID,
		Participants: ev.Participants,
	}
}
