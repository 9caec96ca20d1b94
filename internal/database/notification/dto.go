package notification

import "github.com/dsmelov/calendar-backend/internal/model"

type notificationDTO struct {
	ID      int64
	UserID  int64
	EventID int64
	Message string
	Read    bool
}

func mapToNotification(dto *notificationDTO) *model.Notification {
	return &model.Notification{
		ID:   dto.ID,
		Read: dto.Read,
		NotificationCreate: model.NotificationCreate{
			UserID:  dto.UserID,
			EventID: dto.EventID,
			Message: dto.Message,
		},
	}
}
