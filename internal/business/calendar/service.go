package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

type Service struct {
	db                 database.PGX
	eventsRepository   eventsRepository
	notifications      notificationsRepository
	maxQueryWindowDays int
	maxOccurrences     int
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error)
	UpsertEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	GetEventByID(ctx context.Context, q database.Queryable, id int64) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	DeleteEvent(ctx context.Context, q database.Queryable, id int64) error
	DeleteInvitesByEvent(ctx context.Context, q database.Queryable, eventID int64) error
}

type notificationsRepository interface {
	CreateNotification(ctx context.Context, q database.Queryable, n *model.NotificationCreate) (int64, error)
}

func NewService(
	db database.PGX,
	repo eventsRepository,
	notifications notificationsRepository,
	maxQueryWindowDays int,
	maxOccurrences int,
) *Service {
	return &Service{
		db:                 db,
		eventsRepository:   repo,
		notifications:      notifications,
		maxQueryWindowDays: maxQueryWindowDays,
		maxOccurrences:     maxOccurrences,
	}
}

func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	if info.To.Before(info.From) {
		return nil, fmt.Errorf("%w: end time before start time", model.ErrValidation)
	}

	event := &model.Event{
		Participants: []int64{info.OrganizerID},
		EventCreate:  *info,
	}

	id, err := s.eventsRepository.CreateEvent(ctx, s.db, event)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.CreateEvent: %w", err)
	}

	event.ID = id
	return event, nil
}

// ImportEvent re-registers an event snapshot under its existing id. A
// new id creates the event; a resident id is merged: scalars are
// overwritten by the snapshot, participant rosters are unioned. The
// merged state is returned.
func (s *Service) ImportEvent(ctx context.Context, actorID int64, event *model.Event) (*model.Event, error) {
	if event.ID == 0 {
		return nil, fmt.Errorf("%w: imported event must carry an id", model.ErrValidation)
	}
	if event.To.Before(event.From) {
		return nil, fmt.Errorf("%w: end time before start time", model.ErrValidation)
	}
	if event.OrganizerID != actorID {
		return nil, model.ErrPermission
	}

	if !event.HasParticipant(event.OrganizerID) {
		event.Participants = append([]int64{event.OrganizerID}, event.Participants...)
	}

	if err := s.eventsRepository.UpsertEvent(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("eventsRepository.UpsertEvent: %w", err)
	}

	merged, err := s.eventsRepository.GetEventByID(ctx, s.db, event.ID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	return merged, nil
}

func (s *Service) EventByID(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	return event, nil
}

// UpdateEvent applies a partial update on behalf of actorID. Only the
// organizer may update; participants in the update are unioned with the
// existing roster.
func (s *Service) UpdateEvent(ctx context.Context, actorID, id int64, update *model.EventUpdate) (*model.Event, error) {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.OrganizerID != actorID {
		return nil, model.ErrPermission
	}

	event.ApplyUpdate(update)

	if event.To.Before(event.From) {
		return nil, fmt.Errorf("%w: end time before start time", model.ErrValidation)
	}

	if err := s.eventsRepository.UpdateEvent(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	return event, nil
}

// DeleteEvent removes the event and its pending invites. Every other
// participant is notified before the purge; no tombstones remain.
func (s *Service) DeleteEvent(ctx context.Context, actorID, id int64) error {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.OrganizerID != actorID {
		return model.ErrPermission
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, participant := range event.Participants {
		if participant == event.OrganizerID {
			continue
		}
		if _, err := s.notifications.CreateNotification(ctx, tx, &model.NotificationCreate{
			UserID:  participant,
			EventID: event.ID,
			Message: fmt.Sprintf("Event %q was cancelled by the organizer.", event.Title),
		}); err != nil {
			return fmt.Errorf("notifications.CreateNotification: %w", err)
		}
	}

	if err := s.eventsRepository.DeleteInvitesByEvent(ctx, tx, event.ID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteInvitesByEvent: %w", err)
	}

	if err := s.eventsRepository.DeleteEvent(ctx, tx, event.ID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (s *Service) DayEvents(ctx context.Context, ownerID int64, day time.Time) ([]model.DaySchedule, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24*time.Hour - time.Second)
	return s.EventsInRange(ctx, ownerID, from, to)
}

func (s *Service) ComingEvents(ctx context.Context, ownerID int64, now time.Time) ([]model.DaySchedule, error) {
	return s.EventsInRange(ctx, ownerID, now, now.AddDate(0, 0, 7))
}
