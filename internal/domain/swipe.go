package domain

import "time"

// Swipe is one meal-swipe entitlement. While IsDonated is true it sits in the donation pool.
type Swipe struct {
	ID        uint       `json:"swipe_id"`
	Uni       string     `json:"uni"`
	DonorID   *string    `json:"donor_id,omitempty"`
	IsDonated bool       `json:"is_donated"`
	DonatedAt *time.Time `json:"donated_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type SwipeDonation struct {
	DonorID  string `json:"donor_id"`
	Count    int    `json:"count"`
	SwipeIDs []uint `json:"swipe_ids"`
}

type SwipeClaim struct {
	RecipientID  string        `json:"recipient_id"`
	Count        int           `json:"count"`
	Transactions []Transaction `json:"transactions"`
}
