package auth

import (
	"github.com/alnoorestates/saleledger-backend/internal/buyers"
	"github.com/alnoorestates/saleledger-backend/internal/users"
)

// LoginRequest carries credentials for either identity population.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse is returned to builders and admins on successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// BuyerLoginResponse is returned to buyers on successful login.
type BuyerLoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Buyer        *buyers.BuyerDTO `json:"buyer"`
}

// RefreshRequest carries the expired access token and its refresh token.
type RefreshRequest struct {
	AccessToken  string
	RefreshToken string
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
