package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/alnoorestates/saleledger-backend/pkg/auth"
	"github.com/alnoorestates/saleledger-backend/pkg/auth/session"
	"github.com/alnoorestates/saleledger-backend/pkg/config"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:                 "test-secret",
	Issuer:                 "saleledger",
	ExpirationMinutes:      30,
	RefreshTokenTTLMinutes: 43200,
}

type fakeUserRepo struct {
	findByEmail func(ctx context.Context, email string) (*models.User, error)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findByEmail(ctx, email)
}

type fakeBuyerRepo struct {
	findByEmail func(ctx context.Context, email string) (*models.Buyer, error)
}

func (f *fakeBuyerRepo) FindByEmail(ctx context.Context, email string) (*models.Buyer, error) {
	return f.findByEmail(ctx, email)
}

type fakeSessionManager struct {
	sessions map[string]string
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: map[string]string{}}
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh_" + uuid.NewString()
	f.sessions[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.sessions, oldAccessID)
	newAccessID := session.NewAccessID()
	newToken := "refresh_" + uuid.NewString()
	f.sessions[newAccessID] = newToken
	return newAccessID, newToken, nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(f.sessions, accessID)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	return hash
}

func newTestService(t *testing.T, userRepo userRepository, buyerRepo buyerRepository, sessions sessionManager) Service {
	t.Helper()
	if userRepo == nil {
		userRepo = &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		}}
	}
	if buyerRepo == nil {
		buyerRepo = &fakeBuyerRepo{findByEmail: func(ctx context.Context, email string) (*models.Buyer, error) {
			return nil, gorm.ErrRecordNotFound
		}}
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       userRepo,
		BuyerRepo:      buyerRepo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})
	require.NoError(t, err)
	return svc
}

func TestLoginUserSuccess(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test Builder",
		Email:        "builder@example.com",
		PasswordHash: mustHash(t, "correct horse"),
		Role:         enums.RoleBuilder,
	}
	repo := &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*models.User, error) {
		if email != user.Email {
			return nil, gorm.ErrRecordNotFound
		}
		return user, nil
	}}
	sessions := newFakeSessionManager()

	svc := newTestService(t, repo, nil, sessions)

	resp, err := svc.LoginUser(context.Background(), LoginRequest{
		Email:    " Builder@Example.com ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ActorID)
	assert.Equal(t, enums.RoleBuilder, claims.Role)
	assert.Contains(t, sessions.sessions, claims.ID)
}

func TestLoginUserWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "builder@example.com",
		PasswordHash: mustHash(t, "correct horse"),
		Role:         enums.RoleBuilder,
	}
	repo := &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*models.User, error) {
		return user, nil
	}}

	svc := newTestService(t, repo, nil, newFakeSessionManager())

	_, err := svc.LoginUser(context.Background(), LoginRequest{
		Email:    "builder@example.com",
		Password: "wrong",
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
}

func TestLoginUserUnknownEmail(t *testing.T) {
	svc := newTestService(t, nil, nil, newFakeSessionManager())

	_, err := svc.LoginUser(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
}

func TestLoginBuyerSuccess(t *testing.T) {
	buyer := &models.Buyer{
		ID:           uuid.New(),
		Name:         "Amina",
		Email:        "amina@example.com",
		PasswordHash: mustHash(t, "correct horse"),
	}
	repo := &fakeBuyerRepo{findByEmail: func(ctx context.Context, email string) (*models.Buyer, error) {
		if email != buyer.Email {
			return nil, gorm.ErrRecordNotFound
		}
		return buyer, nil
	}}

	svc := newTestService(t, nil, repo, newFakeSessionManager())

	resp, err := svc.LoginBuyer(context.Background(), LoginRequest{
		Email:    "amina@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, claims.ActorID)
	assert.Equal(t, enums.RoleBuyer, claims.Role)
}

func TestRefreshRotatesSession(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "builder@example.com",
		PasswordHash: mustHash(t, "correct horse"),
		Role:         enums.RoleBuilder,
	}
	repo := &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*models.User, error) {
		return user, nil
	}}
	sessions := newFakeSessionManager()

	svc := newTestService(t, repo, nil, sessions)

	login, err := svc.LoginUser(context.Background(), LoginRequest{
		Email:    "builder@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)

	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ActorID)

	// The consumed refresh token cannot be replayed.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	svc := newTestService(t, nil, nil, newFakeSessionManager())

	forged, err := pkgauth.MintAccessToken(config.JWTConfig{
		Secret:            "other-secret",
		Issuer:            "saleledger",
		ExpirationMinutes: 30,
	}, time.Now().UTC(), pkgauth.AccessTokenPayload{
		ActorID: uuid.New(),
		Role:    enums.RoleBuilder,
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  forged,
		RefreshToken: "refresh",
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
}

func TestLogoutRevokesSession(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "builder@example.com",
		PasswordHash: mustHash(t, "correct horse"),
		Role:         enums.RoleBuilder,
	}
	repo := &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*models.User, error) {
		return user, nil
	}}
	sessions := newFakeSessionManager()

	svc := newTestService(t, repo, nil, sessions)

	login, err := svc.LoginUser(context.Background(), LoginRequest{
		Email:    "builder@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.ID))
	assert.NotContains(t, sessions.sessions, claims.ID)
}
