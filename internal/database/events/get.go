package events

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id int64) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(dto), nil
}

// GetEvents returns the owner's confirmed templates that can contribute
// to [filter.From, filter.To], sorted by start time. A non-recurring
// event must start inside the window; a recurring template only has to
// be anchored no later than the window's end, its anchor may be far in
// the past.
func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Expr("participants @> array[?]::bigint[]", filter.OwnerID)).
		Where(sq.LtOrEq{"start_time": filter.To}).
		Where(sq.Or{
			sq.NotEq{"recurrence": int(model.RecurrenceNone)},
			sq.GtOrEq{"start_time": filter.From},
		}).
		OrderBy("start_time", "id")

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}
