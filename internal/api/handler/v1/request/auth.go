package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// LoginRequest logs a user in, registering them on first login.
// Balances are never taken from the client.
type LoginRequest struct {
	Uni string `json:"uni"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Uni, validation.Required, isUni),
	)
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *AdminLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
