package invites

import (
	"context"
	"fmt"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

// Service runs the invite workflow: invite, accept/decline, removal and
// leaving. Read-modify-write of participant rosters and pending lists
// happens inside transactions so concurrent mutations cannot lose
// updates.
type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
	usersRepository  usersRepository
	notifications    notificationsRepository
}

type eventsRepository interface {
	GetEventByID(ctx context.Context, q database.Queryable, id int64) (*model.Event, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	AddInvite(ctx context.Context, q database.Queryable, eventID, userID int64) error
	DeleteInvite(ctx context.Context, q database.Queryable, eventID, userID int64) error
	GetInvitedEvents(ctx context.Context, q database.Queryable, userID int64) ([]*model.Event, error)
}

type usersRepository interface {
	GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.User, error)
}

type notificationsRepository interface {
	CreateNotification(ctx context.Context, q database.Queryable, n *model.NotificationCreate) (int64, error)
}

func NewService(
	db database.PGX,
	events eventsRepository,
	users usersRepository,
	notifications notificationsRepository,
) *Service {
	return &Service{
		db:               db,
		eventsRepository: events,
		usersRepository:  users,
		notifications:    notifications,
	}
}

// Invite puts the event on each user's pending list and notifies them.
// Only the organizer may invite. A user already pending or already
// confirmed yields ErrAlreadyExists; an unknown user yields
// ErrNoRecord. The whole invite is transactional: either every listed
// user is invited or none.
func (s *Service) Invite(ctx context.Context, actorID, eventID int64, userIDs []int64) error {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, eventID)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.OrganizerID != actorID {
		return model.ErrPermission
	}

	users, err := s.usersRepository.GetUsersByIDs(ctx, s.db, userIDs)
	if err != nil {
		return fmt.Errorf("usersRepository.GetUsersByIDs: %w", err)
	}
	if len(users) != len(userIDs) {
		return fmt.Errorf("%w: unknown user in participant list", model.ErrNoRecord)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, u := range users {
		if event.HasParticipant(u.ID) {
			return fmt.Errorf("%w: user %q is already a participant", model.ErrAlreadyExists, u.Username)
		}

		if err := s.eventsRepository.AddInvite(ctx, tx, event.ID, u.ID); err != nil {
			return fmt.Errorf("eventsRepository.AddInvite: %w", err)
		}

		if _, err := s.notifications.CreateNotification(ctx, tx, &model.NotificationCreate{
			UserID:  u.ID,
			EventID: event.ID,
			Message: fmt.Sprintf("You were invited to %q.", event.Title),
		}); err != nil {
			return fmt.Errorf("notifications.CreateNotification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Pending lists the events waiting in the user's pending list.
func (s *Service) Pending(ctx context.Context, userID int64) ([]*model.Event, error) {
	events, err := s.eventsRepository.GetInvitedEvents(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetInvitedEvents: %w", err)
	}

	return events, nil
}

// Accept moves the event from the user's pending list to their
// confirmed calendar and notifies the organizer.
func (s *Service) Accept(ctx context.Context, userID, eventID int64) error {
	user, err := s.usersRepository.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.DeleteInvite(ctx, tx, eventID, userID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteInvite: %w", err)
	}

	event, err := s.eventsRepository.GetEventByID(ctx, tx, eventID)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if err := event.AddParticipant(userID); err != nil {
		return err
	}

	if err := s.eventsRepository.UpdateEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	if _, err := s.notifications.CreateNotification(ctx, tx, &model.NotificationCreate{
		UserID:  event.OrganizerID,
		EventID: event.ID,
		Message: fmt.Sprintf("%s accepted the invitation to %q.", user.Username, event.Title),
	}); err != nil {
		return fmt.Errorf("notifications.CreateNotification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Decline drops the event from the user's pending list, leaves the
// participant roster untouched and notifies the organizer.
func (s *Service) Decline(ctx context.Context, userID, eventID int64) error {
	user, err := s.usersRepository.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	event, err := s.eventsRepository.GetEventByID(ctx, s.db, eventID)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.DeleteInvite(ctx, tx, eventID, userID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteInvite: %w", err)
	}

	if _, err := s.notifications.CreateNotification(ctx, tx, &model.NotificationCreate{
		UserID:  event.OrganizerID,
		EventID: event.ID,
		Message: fmt.Sprintf("%s declined the invitation to %q.", user.Username, event.Title),
	}); err != nil {
		return fmt.Errorf("notifications.CreateNotification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// RemoveParticipants takes users off the event's roster. Only the
// organizer may remove, and may not remove themselves. A user not on
// the roster yields ErrNoRecord. Removed users are notified.
func (s *Service) RemoveParticipants(ctx context.Context, actorID, eventID int64, userIDs []int64) error {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, eventID)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.OrganizerID != actorID {
		return model.ErrPermission
	}

	for _, id := range userIDs {
		if id == event.OrganizerID {
			return fmt.Errorf("%w: the organizer cannot be removed", model.ErrPermission)
		}
		if err := event.RemoveParticipant(id); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.UpdateEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	for _, id := range userIDs {
		if _, err := s.notifications.CreateNotification(ctx, tx, &model.NotificationCreate{
			UserID:  id,
			EventID: event.ID,
			Message: fmt.Sprintf("You were removed from %q.", event.Title),
		}); err != nil {
			return fmt.Errorf("notifications.CreateNotification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Leave removes the caller from the event. The organizer cannot leave
// their own event; they delete it instead.
func (s *Service) Leave(ctx context.Context, userID, eventID int64) error {
	user, err := s.usersRepository.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	event, err := s.eventsRepository.GetEventByID(ctx, s.db, eventID)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.OrganizerID == userID {
		return fmt.Errorf("%w: the organizer cannot leave their own event", model.ErrPermission)
	}

	if err := event.RemoveParticipant(userID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.UpdateEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	if _, err := s.notifications.CreateNotification(ctx, tx, &model.NotificationCreate{
		UserID:  event.OrganizerID,
		EventID: event.ID,
		Message: fmt.Sprintf("%s left %q.", user.Username, event.Title),
	}); err != nil {
		return fmt.Errorf("notifications.CreateNotification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
