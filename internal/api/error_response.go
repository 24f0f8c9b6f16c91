package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// 錯誤描述，不含內部細節
	Error string `json:"error" example:"invalid email or password"`
}
