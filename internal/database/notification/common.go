package notification

import "github.com/dsmelov/calendar-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"user_id",
		"event_id",
		"message",
		"read",
	).
	From(database.NotificationsTable)
