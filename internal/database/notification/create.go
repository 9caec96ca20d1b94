package notification

import (
	"context"
	"fmt"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

func (*Repository) CreateNotification(ctx context.Context, q database.Queryable, n *model.NotificationCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.NotificationsTable).
		Columns("user_id", "event_id", "message", "read").
		Values(n.UserID, n.EventID, n.Message, false).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
