package dto

import (
	"time"

	"thinkabout/internal/domain/user"
)

type UserProfileResponse struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Gender      string       `json:"gender"`
	DateOfBirth time.Time    `json:"dateOfBirth"`
	Package     user.Package `json:"package"`
}

func NewUserProfileResponse(u user.User) UserProfileResponse {
	return UserProfileResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Gender:      u.Gender,
		DateOfBirth: u.DateOfBirth,
		Package:     u.Package,
	}
}

type TokenResponse struct {
	Token string `json:"token"`
}
