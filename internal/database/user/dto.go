package user

import "github.com/dsmelov/calendar-backend/internal/model"

type userDTO struct {
	ID           int64
	Username     string
	PasswordHash string
}

func mapToUser(dto *userDTO) *model.User {
	return &model.User{
		ID: dto.ID,
		UserCreate: model.UserCreate{
			Username:     dto.Username,
			PasswordHash: dto.PasswordHash,
		},
	}
}
