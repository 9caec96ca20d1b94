package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/database/databasetest"
	"github.com/dsmelov/calendar-backend/internal/model"
)

type fakeEventsRepository struct {
	nextID int64
	events map[int64]*model.Event

	deletedInvites []int64
}

func newFakeEventsRepository() *fakeEventsRepository {
	return &fakeEventsRepository{nextID: 1, events: map[int64]*model.Event{}}
}

func (r *fakeEventsRepository) CreateEvent(_ context.Context, _ database.Queryable, event *model.Event) (int64, error) {
	id := r.nextID
	r.nextID++

	stored := *event
	stored.ID = id
	r.events[id] = &stored
	return id, nil
}

func (r *fakeEventsRepository) UpsertEvent(_ context.Context, _ database.Queryable, event *model.Event) error {
	resident, ok := r.events[event.ID]
	if !ok {
		stored := *event
		stored.Participants = append([]int64(nil), event.Participants...)
		r.events[event.ID] = &stored
		if event.ID >= r.nextID {
			r.nextID = event.ID + 1
		}
		return nil
	}

	merged := *event
	merged.Participants = append([]int64(nil), resident.Participants...)
	for _, id := range event.Participants {
		if !merged.HasParticipant(id) {
			merged.Participants = append(merged.Participants, id)
		}
	}
	r.events[event.ID] = &merged
	return nil
}

func (r *fakeEventsRepository) GetEventByID(_ context.Context, _ database.Queryable, id int64) (*model.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, model.ErrNoRecord
	}

	copied := *event
	copied.Participants = append([]int64(nil), event.Participants...)
	return &copied, nil
}

func (r *fakeEventsRepository) GetEvents(_ context.Context, _ database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	var res []*model.Event
	for _, event := range r.events {
		if !event.HasParticipant(filter.OwnerID) {
			continue
		}
		if event.Recurrence == model.RecurrenceNone &&
			(event.From.Before(filter.From) || event.From.After(filter.To)) {
			continue
		}
		if event.From.After(filter.To) {
			continue
		}
		res = append(res, event)
	}
	return res, nil
}

func (r *fakeEventsRepository) UpdateEvent(_ context.Context, _ database.Queryable, event *model.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return model.ErrNoRecord
	}

	stored := *event
	r.events[event.ID] = &stored
	return nil
}

func (r *fakeEventsRepository) DeleteEvent(_ context.Context, _ database.Queryable, id int64) error {
	delete(r.events, id)
	return nil
}

func (r *fakeEventsRepository) DeleteInvitesByEvent(_ context.Context, _ database.Queryable, eventID int64) error {
	r.deletedInvites = append(r.deletedInvites, eventID)
	return nil
}

type fakeNotificationsRepository struct {
	created []*model.NotificationCreate
}

func (r *fakeNotificationsRepository) CreateNotification(_ context.Context, _ database.Queryable, n *model.NotificationCreate) (int64, error) {
	r.created = append(r.created, n)
	return int64(len(r.created)), nil
}

func newTestService() (*Service, *fakeEventsRepository, *fakeNotificationsRepository) {
	events := newFakeEventsRepository()
	notifications := &fakeNotificationsRepository{}
	return NewService(databasetest.New(), events, notifications, 3660, 5000), events, notifications
}

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestCreateEvent(t *testing.T) {
	s, _, _ := newTestService()

	event, err := s.CreateEvent(context.Background(), &model.EventCreate{
		Title:       "Standup",
		From:        date(2026, time.January, 1, 9, 30),
		To:          date(2026, time.January, 1, 9, 45),
		Recurrence:  model.RecurrenceDaily,
		OrganizerID: 10,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if event.ID == 0 {
		t.Error("created event must have an id")
	}
	if len(event.Participants) != 1 || event.Participants[0] != 10 {
		t.Errorf("participants = %v, want organizer only", event.Participants)
	}
}

func TestCreateEventInvertedTimes(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.CreateEvent(context.Background(), &model.EventCreate{
		Title:       "Backwards",
		From:        date(2026, time.January, 2, 9, 0),
		To:          date(2026, time.January, 1, 9, 0),
		OrganizerID: 10,
	})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestImportEvent(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	snapshot := &model.Event{
		ID:           42,
		Participants: []int64{10, 20},
		EventCreate: model.EventCreate{
			Title:       "Offsite",
			From:        date(2026, time.April, 1, 9, 0),
			To:          date(2026, time.April, 1, 17, 0),
			OrganizerID: 10,
		},
	}

	imported, err := s.ImportEvent(ctx, 10, snapshot)
	if err != nil {
		t.Fatalf("ImportEvent: %v", err)
	}
	if imported.ID != 42 || imported.Title != "Offsite" {
		t.Fatalf("imported = %+v, want snapshot under id 42", imported)
	}

	// Re-importing the same id merges: scalars follow the new snapshot,
	// rosters are unioned.
	again := &model.Event{
		ID:           42,
		Participants: []int64{10, 30},
		EventCreate: model.EventCreate{
			Title:       "Offsite (moved)",
			From:        date(2026, time.April, 2, 9, 0),
			To:          date(2026, time.April, 2, 17, 0),
			OrganizerID: 10,
		},
	}

	merged, err := s.ImportEvent(ctx, 10, again)
	if err != nil {
		t.Fatalf("ImportEvent: %v", err)
	}
	if merged.Title != "Offsite (moved)" {
		t.Errorf("title = %q, want the re-imported title", merged.Title)
	}
	for _, id := range []int64{10, 20, 30} {
		if !merged.HasParticipant(id) {
			t.Errorf("roster %v missing %d after merge", merged.Participants, id)
		}
	}
}

func TestImportEventErrors(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	base := model.EventCreate{
		Title:       "Offsite",
		From:        date(2026, time.April, 1, 9, 0),
		To:          date(2026, time.April, 1, 17, 0),
		OrganizerID: 10,
	}

	if _, err := s.ImportEvent(ctx, 10, &model.Event{EventCreate: base}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("missing id: got %v, want ErrValidation", err)
	}
	if _, err := s.ImportEvent(ctx, 20, &model.Event{ID: 1, EventCreate: base}); !errors.Is(err, model.ErrPermission) {
		t.Errorf("foreign organizer: got %v, want ErrPermission", err)
	}
}

func TestUpdateEvent(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	event, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Standup",
		From:        date(2026, time.January, 1, 9, 30),
		To:          date(2026, time.January, 1, 9, 45),
		OrganizerID: 10,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	title := "Planning"
	updated, err := s.UpdateEvent(ctx, 10, event.ID, &model.EventUpdate{
		Title:        &title,
		Participants: []int64{20},
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != "Planning" {
		t.Errorf("title = %q, want Planning", updated.Title)
	}
	if !updated.HasParticipant(20) || !updated.HasParticipant(10) {
		t.Errorf("participants = %v, want union with roster", updated.Participants)
	}

	if _, err := s.UpdateEvent(ctx, 99, event.ID, &model.EventUpdate{Title: &title}); !errors.Is(err, model.ErrPermission) {
		t.Errorf("non-organizer update: got %v, want ErrPermission", err)
	}

	badTo := date(2025, time.January, 1, 0, 0)
	if _, err := s.UpdateEvent(ctx, 10, event.ID, &model.EventUpdate{To: &badTo}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("inverted times update: got %v, want ErrValidation", err)
	}

	if _, err := s.UpdateEvent(ctx, 10, 12345, &model.EventUpdate{}); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("unknown event update: got %v, want ErrNoRecord", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	s, events, notifications := newTestService()
	ctx := context.Background()

	event, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Party",
		From:        date(2026, time.January, 1, 19, 0),
		To:          date(2026, time.January, 1, 23, 0),
		OrganizerID: 10,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := s.UpdateEvent(ctx, 10, event.ID, &model.EventUpdate{Participants: []int64{20, 30}}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	if err := s.DeleteEvent(ctx, 20, event.ID); !errors.Is(err, model.ErrPermission) {
		t.Fatalf("non-organizer delete: got %v, want ErrPermission", err)
	}

	if err := s.DeleteEvent(ctx, 10, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	if _, err := s.EventByID(ctx, event.ID); !errors.Is(err, model.ErrNoRecord) {
		t.Errorf("deleted event still readable: %v", err)
	}
	if len(events.deletedInvites) != 1 || events.deletedInvites[0] != event.ID {
		t.Errorf("pending invites not purged: %v", events.deletedInvites)
	}

	// Everyone but the organizer hears about the cancellation.
	if len(notifications.created) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifications.created))
	}
	notified := map[int64]bool{}
	for _, n := range notifications.created {
		notified[n.UserID] = true
		if n.EventID != event.ID {
			t.Errorf("notification for event %d, want %d", n.EventID, event.ID)
		}
	}
	if notified[10] || !notified[20] || !notified[30] {
		t.Errorf("notified users = %v, want 20 and 30 only", notified)
	}
}

func TestDeleteEventMissing(t *testing.T) {
	s, _, _ := newTestService()

	if err := s.DeleteEvent(context.Background(), 10, 999); !errors.Is(err, model.ErrNoRecord) {
		t.Fatalf("got %v, want ErrNoRecord", err)
	}
}

func TestEventsInRangeGrouping(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	// Daily standup anchored Jan 1.
	if _, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Standup",
		From:        date(2026, time.January, 1, 9, 30),
		To:          date(2026, time.January, 1, 9, 45),
		Recurrence:  model.RecurrenceDaily,
		OrganizerID: 10,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// One-off on Jan 4 after the standup.
	if _, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Dentist",
		From:        date(2026, time.January, 4, 11, 0),
		To:          date(2026, time.January, 4, 12, 0),
		OrganizerID: 10,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	days, err := s.EventsInRange(ctx, 10, date(2026, time.January, 3, 0, 0), date(2026, time.January, 5, 23, 59))
	if err != nil {
		t.Fatalf("EventsInRange: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	for i, wantDay := range []time.Time{
		date(2026, time.January, 3, 0, 0),
		date(2026, time.January, 4, 0, 0),
		date(2026, time.January, 5, 0, 0),
	} {
		if !days[i].Day.Equal(wantDay) {
			t.Errorf("day %d = %v, want %v", i, days[i].Day, wantDay)
		}
	}

	if len(days[1].Events) != 2 {
		t.Fatalf("Jan 4 has %d events, want 2", len(days[1].Events))
	}
	if days[1].Events[0].Event.Title != "Standup" || days[1].Events[1].Event.Title != "Dentist" {
		t.Errorf("Jan 4 order: %q then %q, want Standup then Dentist",
			days[1].Events[0].Event.Title, days[1].Events[1].Event.Title)
	}
}

func TestEventsInRangeTieBreakByID(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	start := date(2026, time.February, 1, 10, 0)
	for _, title := range []string{"First", "Second"} {
		if _, err := s.CreateEvent(ctx, &model.EventCreate{
			Title:       title,
			From:        start,
			To:          start.Add(time.Hour),
			OrganizerID: 10,
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	days, err := s.EventsInRange(ctx, 10, date(2026, time.February, 1, 0, 0), date(2026, time.February, 1, 23, 59))
	if err != nil {
		t.Fatalf("EventsInRange: %v", err)
	}
	if len(days) != 1 || len(days[0].Events) != 2 {
		t.Fatalf("got %+v, want one day with two events", days)
	}
	if days[0].Events[0].Event.ID > days[0].Events[1].Event.ID {
		t.Error("simultaneous events must be ordered by id")
	}
}

func TestEventsInRangeWindow(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	days, err := s.EventsInRange(ctx, 10, date(2026, time.March, 10, 0, 0), date(2026, time.March, 1, 0, 0))
	if err != nil {
		t.Fatalf("inverted window: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("inverted window yields %d days, want 0", len(days))
	}

	_, err = s.EventsInRange(ctx, 10, date(2000, time.January, 1, 0, 0), date(2026, time.January, 1, 0, 0))
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("oversized window: got %v, want ErrValidation", err)
	}
}

func TestDayEvents(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	if _, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Standup",
		From:        date(2026, time.January, 1, 9, 30),
		To:          date(2026, time.January, 1, 9, 45),
		Recurrence:  model.RecurrenceDaily,
		OrganizerID: 10,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	days, err := s.DayEvents(ctx, 10, date(2026, time.January, 15, 16, 45))
	if err != nil {
		t.Fatalf("DayEvents: %v", err)
	}
	if len(days) != 1 || len(days[0].Events) != 1 {
		t.Fatalf("got %+v, want the single standup of the day", days)
	}
	if !days[0].Events[0].From.Equal(date(2026, time.January, 15, 9, 30)) {
		t.Errorf("occurrence at %v, want Jan 15 09:30", days[0].Events[0].From)
	}
}

func TestComingEvents(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	if _, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Checkup",
		From:        date(2026, time.January, 10, 11, 0),
		To:          date(2026, time.January, 10, 12, 0),
		OrganizerID: 10,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := s.CreateEvent(ctx, &model.EventCreate{
		Title:       "Too far",
		From:        date(2026, time.January, 20, 11, 0),
		To:          date(2026, time.January, 20, 12, 0),
		OrganizerID: 10,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	days, err := s.ComingEvents(ctx, 10, date(2026, time.January, 8, 8, 0))
	if err != nil {
		t.Fatalf("ComingEvents: %v", err)
	}
	if len(days) != 1 || len(days[0].Events) != 1 || days[0].Events[0].Event.Title != "Checkup" {
		t.Fatalf("got %+v, want only the checkup inside the week", days)
	}
}
