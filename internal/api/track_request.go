package api

// swagger:model api.TrackRequest
type TrackRequest struct {
	Type string `json:"type" form:"type" validate:"required,oneof=check-in check-out" example:"check-in"`
	Note string `json:"note" form:"note" validate:"max=500" example:"on site"`
}
