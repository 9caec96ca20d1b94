package model

type NotificationCreate struct {
	UserID  int64
	EventID int64
	Message string
}

type Notification struct {
	ID   int64
	Read bool
	NotificationCreate
}
