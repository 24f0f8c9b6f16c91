package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email,max=254" example:"alice@example.com"`
	Password   string `json:"password" form:"password" validate:"required,max=72" example:"Secret123!"`
	Name       string `json:"name" form:"name" validate:"required,max=100" example:"Alice"`
	Department string `json:"department" form:"department" validate:"max=100" example:"Engineering"`
}
