package events

import (
	"context"
	"fmt"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error) {
	dto := mapFromEvent(event)

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"title",
			"description",
			"start_time",
			"end_time",
			"recurrence",
			"organizer_id",
			"participants",
		).
		Values(
			dto.Title,
			dto.Description,
			dto.StartTime,
			dto.EndTime,
			dto.Recurrence,
			dto.OrganizerID,
			dto.Participants,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

// UpsertEvent inserts the event under its existing id or merges it into
// the resident row: scalar fields are overwritten by the new data,
// participant lists are unioned (resident order first, new ids
// appended). Used when loading serialized calendars, so a re-load never
// forks an event's identity.
func (*Repository) UpsertEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	dto := mapFromEvent(event)

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"id",
			"title",
			"description",
			"start_time",
			"end_time",
			"recurrence",
			"organizer_id",
			"participants",
		).
		Values(
			dto.ID,
			dto.Title,
			dto.Description,
			dto.StartTime,
			dto.EndTime,
			dto.Recurrence,
			dto.OrganizerID,
			dto.Participants,
		).
		Suffix(`on conflict (id) do update set
			title = excluded.title,
			description = excluded.description,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			recurrence = excluded.recurrence,
			organizer_id = excluded.organizer_id,
			participants = (
				select array_agg(p order by ord)
				from (
					select p, min(ord) as ord
					from unnest(events.participants || excluded.participants)
						with ordinality as t(p, ord)
					group by p
				) merged
			)`)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
