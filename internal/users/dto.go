package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockyard-hq/stockyard-backend/pkg/db/models"
)

// EditUserRequest toggles the active flag. The flag arrives as a string and
// only the exact value "true" activates the account.
type EditUserRequest struct {
	IsActive string `json:"is_active" validate:"required"`
}

type DeleteUserRequest struct {
	Confirm bool `json:"confirm"`
}

type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func toDTOs(list []models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, *ToDTO(&list[i]))
	}
	return dtos
}
