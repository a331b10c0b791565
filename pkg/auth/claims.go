package auth

import (
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT. ActorID
// points at a users row for builders/admins and a buyers row for buyers.
type AccessTokenPayload struct {
	ActorID uuid.UUID
	Role    enums.Role
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	ActorID uuid.UUID  `json:"actor_id"`
	Role    enums.Role `json:"role"`
	jwt.RegisteredClaims
}
