package buyers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/repo"
	"github.com/alnoorestates/saleledger-backend/pkg/config"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/security"
)

// BuyerDTO is the outward-facing shape of a buyer account.
type BuyerDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	EmiratesID  string    `json:"emirates_id"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModel maps the persisted buyer onto the DTO.
func FromModel(buyer *models.Buyer) *BuyerDTO {
	if buyer == nil {
		return nil
	}
	return &BuyerDTO{
		ID:          buyer.ID,
		Name:        buyer.Name,
		EmiratesID:  buyer.EmiratesID,
		PhoneNumber: buyer.PhoneNumber,
		Email:       buyer.Email,
		CreatedAt:   buyer.CreatedAt,
	}
}

// Repository exposes buyer persistence operations.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a buyers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// Create inserts a new buyer row.
func (r *Repository) Create(ctx context.Context, buyer *models.Buyer) error {
	return r.base.DB(ctx).Create(buyer).Error
}

// FindByEmail retrieves the buyer matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.base.DB(ctx).Where("email = ?", email).First(&buyer).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

// FindByID loads a buyer by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.base.DB(ctx).First(&buyer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

// RegisterInput holds the validated payload to create a buyer account.
type RegisterInput struct {
	Name        string
	EmiratesID  string
	PhoneNumber string
	Email       string
	Password    string
}

// Service manages buyer accounts.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*BuyerDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BuyerDTO, error)
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService constructs a buyer service instance.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("buyer repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// Register creates a buyer account.
func (s *service) Register(ctx context.Context, input RegisterInput) (*BuyerDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	emiratesID := strings.TrimSpace(input.EmiratesID)
	phone := strings.TrimSpace(input.PhoneNumber)

	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if emiratesID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "emirates id is required")
	}
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	buyer := &models.Buyer{
		ID:           uuid.New(),
		Name:         name,
		EmiratesID:   emiratesID,
		PhoneNumber:  phone,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, buyer); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert buyer")
	}
	return FromModel(buyer), nil
}

// FindByID loads the buyer behind the identifier.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*BuyerDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer id is required")
	}
	buyer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find buyer")
	}
	return FromModel(buyer), nil
}
