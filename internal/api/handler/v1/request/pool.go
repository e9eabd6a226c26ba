package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

type DonateSwipesRequest struct {
	DonorID       string `json:"donor_id"`
	CurrentSwipes int    `json:"current_swipes"`
}

func (req *DonateSwipesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DonorID, validation.Required, isUni),
		validation.Field(&req.CurrentSwipes, validation.Required, validation.Min(1), validation.Max(domain.MaxBalance)),
	)
}

type ClaimSwipesRequest struct {
	RecipientID   string `json:"recipient_id"`
	SwipesToClaim int    `json:"swipes_to_claim"`
}

func (req *ClaimSwipesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RecipientID, validation.Required, isUni),
		validation.Field(&req.SwipesToClaim, validation.Required, validation.Min(1), validation.Max(domain.MaxBalance)),
	)
}

type DonatePointsRequest struct {
	DonorID string `json:"donor_id"`
	Points  int    `json:"points"`
}

func (req *DonatePointsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DonorID, validation.Required, isUni),
		validation.Field(&req.Points, validation.Required, validation.Min(1), validation.Max(domain.MaxBalance)),
	)
}

type ClaimPointsRequest struct {
	RecipientID string `json:"recipient_id"`
	Points      int    `json:"points"`
}

func (req *ClaimPointsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RecipientID, validation.Required, isUni),
		validation.Field(&req.Points, validation.Required, validation.Min(1), validation.Max(domain.MaxBalance)),
	)
}
