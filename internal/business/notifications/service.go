package notifications

import (
	"context"
	"fmt"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

type Service struct {
	db                      database.PGX
	notificationsRepository notificationsRepository
}

type notificationsRepository interface {
	GetUnreadNotifications(ctx context.Context, q database.Queryable, userID int64) ([]*model.Notification, error)
	MarkNotificationsRead(ctx context.Context, q database.Queryable, ids []int64) error
}

func NewService(db database.PGX, repo notificationsRepository) *Service {
	return &Service{
		db:                      db,
		notificationsRepository: repo,
	}
}

// DrainUnread returns the user's unread notifications in id order and
// marks them read in the same transaction. Fetching is what marks them
// read: an immediate second drain returns nothing.
func (s *Service) DrainUnread(ctx context.Context, userID int64) ([]*model.Notification, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	unread, err := s.notificationsRepository.GetUnreadNotifications(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("notificationsRepository.GetUnreadNotifications: %w", err)
	}

	ids := make([]int64, len(unread))
	for i, n := range unread {
		ids[i] = n.ID
	}

	if err := s.notificationsRepository.MarkNotificationsRead(ctx, tx, ids); err != nil {
		return nil, fmt.Errorf("notificationsRepository.MarkNotificationsRead: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	for _, n := range unread {
		n.Read = true
	}

	return unread, nil
}
