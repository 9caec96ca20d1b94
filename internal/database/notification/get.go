package notification

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

func (*Repository) GetUnreadNotifications(ctx context.Context, q database.Queryable, userID int64) ([]*model.Notification, error) {
	qb := baseQuery.
		Where(sq.Eq{"user_id": userID, "read": false}).
		OrderBy("id")

	var dtos []*notificationDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Notification, len(dtos))
	for i, d := range dtos {
		res[i] = mapToNotification(d)
	}

	return res, nil
}

func (*Repository) MarkNotificationsRead(ctx context.Context, q database.Queryable, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	qb := database.PSQL.
		Update(database.NotificationsTable).
		Set("read", true).
		Where(sq.Eq{"id": ids})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
