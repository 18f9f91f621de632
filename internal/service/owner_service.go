package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ecommerce-api/internal/domain"
	"ecommerce-api/internal/repository"
)

var (
	ErrOwnerExists        = errors.New("owner already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing fields")
	ErrRateLimited        = errors.New("rate limited")
)

// OwnerService coordina reglas de negocio para la cuenta owner.
type OwnerService struct {
	logger  *zap.Logger
	owners  repository.OwnerRepository
	limiter LoginRateLimiter
}

func NewOwnerService(logger *zap.Logger, owners repository.OwnerRepository, limiter LoginRateLimiter) *OwnerService {
	return &OwnerService{
		logger:  logger,
		owners:  owners,
		limiter: limiter,
	}
}

type RegisterOwnerInput struct {
	Firstname string
	Lastname  string
	Email     string
	Contact   string
	Password  string
}

// Register crea la cuenta owner. El sistema admite exactamente una:
// si ya existe alguna fila devuelve ErrOwnerExists.
func (s *OwnerService) Register(ctx context.Context, input RegisterOwnerInput) (domain.Owner, error) {
	if s.owners == nil {
		return domain.Owner{}, errors.New("owner service not configured")
	}

	firstname := strings.TrimSpace(input.Firstname)
	lastname := strings.TrimSpace(input.Lastname)
	emailAddr := normalizeEmail(input.Email)
	contact := strings.TrimSpace(input.Contact)
	password := strings.TrimSpace(input.Password)

	if firstname == "" || lastname == "" || emailAddr == "" || contact == "" || password == "" {
		return domain.Owner{}, ErrMissingFields
	}

	count, err := s.owners.Count(ctx)
	if err != nil {
		return domain.Owner{}, err
	}
	if count > 0 {
		return domain.Owner{}, ErrOwnerExists
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Owner{}, err
	}

	owner := domain.Owner{
		ID:           uuid.NewString(),
		Firstname:    firstname,
		Lastname:     lastname,
		Email:        emailAddr,
		Contact:      contact,
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.owners.Create(ctx, owner); err != nil {
		return domain.Owner{}, err
	}

	return owner, nil
}

// Authenticate valida credenciales. Email desconocido y password incorrecto
// devuelven el mismo ErrInvalidCredentials para no filtrar existencia.
func (s *OwnerService) Authenticate(ctx context.Context, emailAddr, password string) (domain.Owner, error) {
	if s.owners == nil {
		return domain.Owner{}, errors.New("owner service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.Owner{}, ErrMissingFields
	}
	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return domain.Owner{}, ErrRateLimited
	}
	owner, err := s.owners.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Owner{}, ErrInvalidCredentials
		}
		return domain.Owner{}, err
	}
	if owner.PasswordHash == "" {
		return domain.Owner{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return domain.Owner{}, ErrInvalidCredentials
	}
	return owner, nil
}

// Profile busca la cuenta referida por un token ya verificado.
func (s *OwnerService) Profile(ctx context.Context, emailAddr string) (domain.Owner, error) {
	if s.owners == nil {
		return domain.Owner{}, errors.New("owner service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return domain.Owner{}, ErrAccountNotFound
	}
	owner, err := s.owners.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Owner{}, ErrAccountNotFound
		}
		return domain.Owner{}, err
	}
	return owner, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
