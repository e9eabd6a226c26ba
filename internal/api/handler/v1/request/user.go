package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

var errEmptyUpdate = errors.New("at least one of current_swipes, points is required")

type CreateUserRequest struct {
	Uni           string `json:"uni"`
	CurrentSwipes int    `json:"current_swipes"`
	CurrentPoints int    `json:"current_points"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Uni, validation.Required, isUni),
		validation.Field(&req.CurrentSwipes, validation.Min(0), validation.Max(domain.MaxBalance)),
		validation.Field(&req.CurrentPoints, validation.Min(0), validation.Max(domain.MaxBalance)),
	)
}

// UpdateBalanceRequest carries absolute values, or deltas when the is_relative query flag is set.
type UpdateBalanceRequest struct {
	CurrentSwipes *int `json:"current_swipes,omitempty"`
	Points        *int `json:"points,omitempty"`
}

func (req *UpdateBalanceRequest) Validate() error {
	if req.CurrentSwipes == nil && req.Points == nil {
		return errEmptyUpdate
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentSwipes, validation.Min(-domain.MaxBalance), validation.Max(domain.MaxBalance)),
		validation.Field(&req.Points, validation.Min(-domain.MaxBalance), validation.Max(domain.MaxBalance)),
	)
}

type AdminUpdateUserRequest struct {
	Uni   string `json:"uni"`
	Field string `json:"field"`
	Value *int   `json:"value"`
}

func (req *AdminUpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Uni, validation.Required, isUni),
		validation.Field(&req.Field, validation.Required, validation.In("current_points", "current_swipes")),
		validation.Field(&req.Value, validation.NotNil, validation.Min(0), validation.Max(domain.MaxBalance)),
	)
}
