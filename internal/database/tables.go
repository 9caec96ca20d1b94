package database

import sq "github.com/Masterminds/squirrel"

// PSQL is the shared statement builder with Postgres placeholders.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	UsersTable         = "users"
	EventsTable        = "events"
	EventInvitesTable  = "event_invites"
	NotificationsTable = "notifications"
)
