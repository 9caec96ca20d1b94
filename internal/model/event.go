package model

import (
	"fmt"
	"time"
)

type Recurrence int

const (
	RecurrenceNone Recurrence = iota
	RecurrenceDaily
	RecurrenceWeekly
	RecurrenceMonthly
	RecurrenceYearly
)

func (r Recurrence) Valid() bool {
	return r >= RecurrenceNone && r <= RecurrenceYearly
}

type EventCreate struct {
	Title       string
	Description string
	From        time.Time
	To          time.Time
	Recurrence  Recurrence
	OrganizerID int64
}

// Event is a schedulable template. Participants always contain the
// organizer, in first position. Two events are the same event iff their
// IDs match; titles and times carry no identity.
type Event struct {
	ID           int64
	Participants []int64
	EventCreate
}

type EventUpdate struct {
	Title       *string
	Description *string
	From        *time.Time
	To          *time.Time
	Recurrence  *Recurrence
	// Participants are unioned with the existing roster, never replaced,
	// so an update cannot silently drop already-invited users.
	Participants []int64
}

type EventsFilter struct {
	OwnerID int64
	From    time.Time
	To      time.Time
}

func (e *Event) Equal(other *Event) bool {
	return other != nil && e.ID == other.ID
}

func (e *Event) Duration() time.Duration {
	return e.To.Sub(e.From)
}

func (e *Event) HasParticipant(userID int64) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

func (e *Event) AddParticipant(userID int64) error {
	if e.HasParticipant(userID) {
		return ErrAlreadyExists
	}
	e.Participants = append(e.Participants, userID)
	return nil
}

func (e *Event) RemoveParticipant(userID int64) error {
	for i, id := range e.Participants {
		if id == userID {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return nil
		}
	}
	return ErrNoRecord
}

// ApplyUpdate overwrites scalar fields that are set and unions the
// participant lists, keeping existing order and appending new ids in
// the order given.
func (e *Event) ApplyUpdate(u *EventUpdate) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.From != nil {
		e.From = *u.From
	}
	if u.To != nil {
		e.To = *u.To
	}
	if u.Recurrence != nil {
		e.Recurrence = *u.Recurrence
	}
	for _, id := range u.Participants {
		if !e.HasParticipant(id) {
			e.Participants = append(e.Participants, id)
		}
	}
}

// EventInstance is one concrete occurrence of a template inside a
// queried window. Instances are derived during the query and discarded
// after use; they are never persisted and never re-enter a calendar.
type EventInstance struct {
	InstanceKey string
	From        time.Time
	To          time.Time
	Event       *Event
}

// Instance materializes the occurrence of e starting at from, keeping
// the template's duration.
func (e *Event) Instance(from time.Time) *EventInstance {
	return &EventInstance{
		InstanceKey: fmt.Sprintf("%v_%v", e.ID, from.Unix()),
		From:        from,
		To:          from.Add(e.Duration()),
		Event:       e,
	}
}

// DaySchedule groups the instances starting on one calendar day,
// ordered by start time, ties broken by event id.
type DaySchedule struct {
	Day    time.Time
	Events []*EventInstance
}
