package events

import "github.com/dsmelov/calendar-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"title",
		"description",
		"start_time",
		"end_time",
		"recurrence",
		"organizer_id",
		"participants",
	).
	From(database.EventsTable)
