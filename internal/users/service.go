package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnoorestates/saleledger-backend/pkg/config"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/security"
)

// RegisterInput holds the validated payload to create a platform account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     enums.Role
}

// Service manages platform accounts (builders and admins).
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	ListBuilders(ctx context.Context) ([]UserDTO, error)
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService constructs a user service instance.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// Register creates a builder or admin account.
func (s *service) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if !input.Role.IsUserRole() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be builder or admin")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return FromModel(user), nil
}

// FindByID loads the account behind the identifier.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user")
	}
	return FromModel(user), nil
}

// ListBuilders returns every builder account for the admin view.
func (s *service) ListBuilders(ctx context.Context) ([]UserDTO, error) {
	builders, err := s.repo.ListByRole(ctx, enums.RoleBuilder)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list builders")
	}
	dtos := make([]UserDTO, 0, len(builders))
	for i := range builders {
		dtos = append(dtos, *FromModel(&builders[i]))
	}
	return dtos, nil
}
