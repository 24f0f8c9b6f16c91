package api

import "time"

// swagger:model api.SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// swagger:model api.CountResponse
type CountResponse struct {
	Count int `json:"count" example:"2"`
}

// StatusResponse 目前出勤狀態；沒有任何紀錄時 last_type 與 since 省略
// swagger:model api.StatusResponse
type StatusResponse struct {
	State    string     `json:"state" example:"CHECKED_IN"`
	LastType string     `json:"last_type,omitempty" example:"check-in"`
	Since    *time.Time `json:"since,omitempty"`
}
