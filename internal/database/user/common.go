package user

import "github.com/dsmelov/calendar-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"username",
		"password_hash",
	).
	From(database.UsersTable)
