package recurrence

import (
	"time"

	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/teambition/rrule-go"
)

const defaultLimit = 5000

// Expand generates the occurrences of ev that start inside [from, to],
// both boundaries inclusive. The anchor is the template's own start
// time: no occurrence is generated before it, and every occurrence
// keeps the template's duration. The result is ordered by start time.
//
// Monthly and yearly recurrences use calendar arithmetic with day
// overflow clamped to the last valid day of the month (an event
// anchored on the 31st lands on Apr 30, Feb 28/29; a Feb 29 yearly
// anchor lands on Feb 28 off leap years).
//
// Expand never mutates ev. An inverted window yields an empty result.
// limit caps the number of generated occurrences per call (<= 0 means
// the default cap).
func Expand(ev *model.Event, from, to time.Time, limit int) []*model.EventInstance {
	if to.Before(from) {
		return nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	var starts []time.Time
	switch ev.Recurrence {
	case model.RecurrenceNone:
		if !ev.From.Before(from) && !ev.From.After(to) {
			starts = []time.Time{ev.From}
		}
	case model.RecurrenceDaily:
		starts = ruleStarts(rrule.DAILY, ev.From, from, to)
	case model.RecurrenceWeekly:
		starts = ruleStarts(rrule.WEEKLY, ev.From, from, to)
	case model.RecurrenceMonthly:
		starts = monthlyStarts(ev.From, from, to, limit)
	case model.RecurrenceYearly:
		starts = yearlyStarts(ev.From, from, to, limit)
	}

	if len(starts) > limit {
		starts = starts[:limit]
	}

	instances := make([]*model.EventInstance, len(starts))
	for i, s := range starts {
		instances[i] = ev.Instance(s)
	}
	return instances
}

// ruleStarts handles the fixed-step frequencies via rrule. Between with
// inc=true is inclusive on both ends, and occurrences before the
// anchor do not exist by construction (DTSTART is the anchor).
func ruleStarts(freq rrule.Frequency, anchor, from, to time.Time) []time.Time {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: 1,
		Dtstart:  anchor,
	})
	if err != nil {
		return nil
	}

	return rule.Between(from, to, true)
}

// monthlyStarts steps month by month from the anchor, clamping the day
// of month. rrule's RFC 5545 semantics skip months without the anchor
// day, which is not the behavior wanted here.
func monthlyStarts(anchor, from, to time.Time, limit int) []time.Time {
	k := 0
	if months := monthsBetween(anchor, from) - 1; months > 0 {
		k = months
	}

	var starts []time.Time
	for ; len(starts) < limit; k++ {
		t := monthOccurrence(anchor, 0, k)
		if t.After(to) {
			break
		}
		if !t.Before(from) && !t.Before(anchor) {
			starts = append(starts, t)
		}
	}
	return starts
}

func yearlyStarts(anchor, from, to time.Time, limit int) []time.Time {
	k := 0
	if years := from.Year() - anchor.Year() - 1; years > 0 {
		k = years
	}

	var starts []time.Time
	for ; len(starts) < limit; k++ {
		t := monthOccurrence(anchor, k, 0)
		if t.After(to) {
			break
		}
		if !t.Before(from) && !t.Before(anchor) {
			starts = append(starts, t)
		}
	}
	return starts
}

// monthOccurrence places the anchor's day-of-month and wall clock into
// the month addYears/addMonths away, clamped to the month's last day.
func monthOccurrence(anchor time.Time, addYears, addMonths int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	first = first.AddDate(addYears, addMonths, 0)

	day := anchor.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}

	return time.Date(
		first.Year(), first.Month(), day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), 0,
		anchor.Location(),
	)
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
