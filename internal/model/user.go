package model

type UserCreate struct {
	Username     string
	PasswordHash string
}

// User identity is the numeric ID; the username is unique but may be
// displayed and compared case-insensitively (stored lower-cased).
type User struct {
	ID int64
	UserCreate
}
