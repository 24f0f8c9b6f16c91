package api

import "worktrack/internal/model"

// swagger:model api.UserResponse
type UserResponse struct {
	ID         int        `json:"id" example:"1"`
	Email      string     `json:"email" example:"alice@example.com"`
	Name       string     `json:"name" example:"Alice"`
	Role       model.Role `json:"role" example:"employee"`
	Department string     `json:"department" example:"General"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
	}
}
