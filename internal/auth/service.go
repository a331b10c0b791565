package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnoorestates/saleledger-backend/internal/buyers"
	"github.com/alnoorestates/saleledger-backend/internal/users"
	pkgauth "github.com/alnoorestates/saleledger-backend/pkg/auth"
	"github.com/alnoorestates/saleledger-backend/pkg/auth/session"
	"github.com/alnoorestates/saleledger-backend/pkg/config"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service authenticates accounts and manages token pairs.
type Service interface {
	LoginUser(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	LoginBuyer(ctx context.Context, req LoginRequest) (*BuyerLoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type buyerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Buyer, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users   userRepository
	buyers  buyerRepository
	session sessionManager
	jwtCfg  config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	BuyerRepo      buyerRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.BuyerRepo == nil {
		return nil, fmt.Errorf("buyer repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:   params.UserRepo,
		buyers:  params.BuyerRepo,
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
	}, nil
}

// LoginUser authenticates a builder or admin account.
func (s *service) LoginUser(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if err := verifyPassword(req.Password, user.PasswordHash); err != nil {
		return nil, err
	}

	access, refresh, err := s.issueTokens(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         users.FromModel(user),
	}, nil
}

// LoginBuyer authenticates a buyer account.
func (s *service) LoginBuyer(ctx context.Context, req LoginRequest) (*BuyerLoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	buyer, err := s.buyers.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup buyer")
	}
	if err := verifyPassword(req.Password, buyer.PasswordHash); err != nil {
		return nil, err
	}

	access, refresh, err := s.issueTokens(ctx, buyer.ID, enums.RoleBuyer)
	if err != nil {
		return nil, err
	}

	return &BuyerLoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Buyer:        buyers.FromModel(buyer),
	}, nil
}

// Refresh rotates the refresh session and issues a fresh token pair. The old
// access token may be expired; only its signature has to hold.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	if strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.RefreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh request")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh request")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if isSessionRejection(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh request")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		ActorID: claims.ActorID,
		Role:    claims.Role,
		JTI:     newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{AccessToken: access, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh session behind the access identifier.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, actorID uuid.UUID, role enums.Role) (string, string, error) {
	accessID := session.NewAccessID()
	access, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		ActorID: actorID,
		Role:    role,
		JTI:     accessID,
	})
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refresh, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}
	return access, refresh, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return trimmed, nil
}

func verifyPassword(password, hash string) error {
	valid, err := security.VerifyPassword(password, hash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return nil
}

func isSessionRejection(err error) bool {
	return errors.Is(err, session.ErrInvalidRefreshToken)
}
