package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddFavoriteRequest struct {
	EventID uint `json:"event_id"`
}

func (req *AddFavoriteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
	)
}
