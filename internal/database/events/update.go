package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

func (*Repository) UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	dto := mapFromEvent(event)

	qb := database.PSQL.
		Update(database.EventsTable).
		Set("title", dto.Title).
		Set("description", dto.Description).
		Set("start_time", dto.StartTime).
		Set("end_time", dto.EndTime).
		Set("recurrence", dto.Recurrence).
		Set("organizer_id", dto.OrganizerID).
		Set("participants", dto.Participants).
		Where(sq.Eq{"id": dto.ID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
