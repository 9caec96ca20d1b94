package api

import (
	"fmt"
	"time"

	"github.com/dsmelov/calendar-backend/internal/model"
)

const (
	dateTimeFormat = time.RFC3339
	dateFormat     = "2006-01-02"
)

// dateTime wires RFC 3339 timestamps through request and response
// bodies.
type dateTime time.Time

func (d *dateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a %q string", dateTimeFormat)
	}

	t, err := time.Parse(dateTimeFormat, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid timestamp: %v", err)
	}

	*d = dateTime(t)
	return nil
}

func (d dateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateTimeFormat) + `"`), nil
}

type eventResp struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	From         dateTime `json:"from"`
	To           dateTime `json:"to"`
	Recurrence   int      `json:"recurrence"`
	OrganizerID  int64    `json:"organizer_id"`
	Participants []int64  `json:"participants"`
}

func mapToEventResp(ev *model.Event) (*eventResp, error) {
	return &eventResp{
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		From:         dateTime(ev.From),
		To:           dateTime(ev.To),
		Recurrence:   int(ev.Recurrence),
		OrganizerID:  ev.OrganizerID,
		Participants: ev.Participants,
	}, nil
}

type instanceResp struct {
	InstanceKey string   `json:"instance_key"`
	EventID     int64    `json:"event_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	From        dateTime `json:"from"`
	To          dateTime `json:"to"`
	Recurrence  int      `json:"recurrence"`
	OrganizerID int64    `json:"organizer_id"`
}

func mapToInstanceResp(inst *model.EventInstance) (*instanceResp, error) {
	return &instanceResp{
		InstanceKey: inst.InstanceKey,
		EventID:     inst.Event.ID,
		Title:       inst.Event.Title,
		Description: inst.Event.Description,
		From:        dateTime(inst.From),
		To:          dateTime(inst.To),
		Recurrence:  int(inst.Event.Recurrence),
		OrganizerID: inst.Event.OrganizerID,
	}, nil
}

type dayScheduleResp struct {
	Date   string          `json:"date"`
	Events []*instanceResp `json:"events"`
}

func mapToDayScheduleResp(day model.DaySchedule) (*dayScheduleResp, error) {
	events, err := mapSlice(day.Events, mapToInstanceResp)
	if err != nil {
		return nil, err
	}

	return &dayScheduleResp{
		Date:   day.Day.Format(dateFormat),
		Events: events,
	}, nil
}
