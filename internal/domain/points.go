package domain

import "time"

type PointsPool struct {
	Balance   int       `json:"balance"`
	Version   uint      `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PointsDonation struct {
	DonorID     string `json:"donor_id"`
	Points      int    `json:"points"`
	PoolBalance int    `json:"pool_balance"`
}

type PointsClaim struct {
	RecipientID string      `json:"recipient_id"`
	Points      int         `json:"points"`
	PoolBalance int         `json:"pool_balance"`
	Transaction Transaction `json:"transaction"`
}
