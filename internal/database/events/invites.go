package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

// The invites table holds the pending list: events a user was invited
// to but has not yet accepted or declined. An event is never in both a
// user's pending list and their confirmed participants; acceptance
// deletes the invite row and appends to the event's participant array
// in one transaction.

func (*Repository) AddInvite(ctx context.Context, q database.Queryable, eventID, userID int64) error {
	qb := database.PSQL.
		Insert(database.EventInvitesTable).
		Columns("event_id", "user_id").
		Values(eventID, userID).
		Suffix("on conflict (event_id, user_id) do nothing")

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyExists
	}

	return nil
}

func (*Repository) DeleteInvite(ctx context.Context, q database.Queryable, eventID, userID int64) error {
	qb := database.PSQL.
		Delete(database.EventInvitesTable).
		Where(sq.Eq{"event_id": eventID, "user_id": userID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) DeleteInvitesByEvent(ctx context.Context, q database.Queryable, eventID int64) error {
	qb := database.PSQL.
		Delete(database.EventInvitesTable).
		Where(sq.Eq{"event_id": eventID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// GetInvitedEvents returns the events pending in userID's invite list,
// oldest invite first.
func (*Repository) GetInvitedEvents(ctx context.Context, q database.Queryable, userID int64) ([]*model.Event, error) {
	qb := database.PSQL.
		Select("e.id",
			"e.title",
			"e.description",
			"e.start_time",
			"e.end_time",
			"e.recurrence",
			"e.organizer_id",
			"e.participants",
		).
		From(database.EventsTable + " e").
		Join(database.EventInvitesTable + " i on i.event_id = e.id").
		Where(sq.Eq{"i.user_id": userID}).
		OrderBy("e.id")

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
