package auth

import "github.com/bazaarlabs/bazaar-backend/internal/accounts"

// LoginRequest carries the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the account's opaque bearer token.
type LoginResponse struct {
	Token   string                   `json:"token"`
	Account accounts.AccountResponse `json:"account"`
}
