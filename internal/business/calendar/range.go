package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/dsmelov/calendar-backend/internal/recurrence"
)

// EventsInRange answers the range query: every event or occurrence of
// the owner's calendar starting inside [from, to], both boundaries
// inclusive, grouped by calendar day. Days come back in chronological
// order; within a day instances are sorted by start time, ties broken
// by event id. Querying twice on an unmutated calendar yields identical
// output.
func (s *Service) EventsInRange(ctx context.Context, ownerID int64, from, to time.Time) ([]model.DaySchedule, error) {
	if to.Before(from) {
		return nil, nil
	}

	if s.maxQueryWindowDays > 0 {
		max := time.Duration(s.maxQueryWindowDays) * 24 * time.Hour
		if to.Sub(from) > max {
			return nil, fmt.Errorf("%w: query window exceeds %d days", model.ErrValidation, s.maxQueryWindowDays)
		}
	}

	baseEvents, err := s.eventsRepository.GetEvents(ctx, s.db, model.EventsFilter{
		OwnerID: ownerID,
		From:    from,
		To:      to,
	})
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	var instances []*model.EventInstance
	for _, e := range baseEvents {
		instances = append(instances, recurrence.Expand(e, from, to, s.maxOccurrences)...)
	}

	return groupByDay(instances), nil
}

func groupByDay(instances []*model.EventInstance) []model.DaySchedule {
	byDay := make(map[time.Time][]*model.EventInstance)
	for _, inst := range instances {
		day := dayOf(inst.From)
		byDay[day] = append(byDay[day], inst)
	}

	res := make([]model.DaySchedule, 0, len(byDay))
	for day, events := range byDay {
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].From.Equal(events[j].From) {
				return events[i].Event.ID < events[j].Event.ID
			}
			return events[i].From.Before(events[j].From)
		})
		res = append(res, model.DaySchedule{Day: day, Events: events})
	}

	// A map carries no iteration order; the chronological day order is
	// part of the contract.
	sort.Slice(res, func(i, j int) bool {
		return res[i].Day.Before(res[j].Day)
	})

	return res
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
