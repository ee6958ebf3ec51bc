package usecase

import (
	"context"
	"errors"

	"voucher-campaign/internal/pkg/jwt"
	"voucher-campaign/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCustomerInactive   = errors.New("customer account is inactive")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

// CustomerRecord is the authenticated-caller read model.
type CustomerRecord struct {
	ID       uuid.UUID
	Email    string
	IsActive bool
}

type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*CustomerRecord, string, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, *CustomerRecord, error)
}

type authUseCaseImpl struct {
	customerRepo CustomerRepository
	jwtService   *jwt.Service
}

func NewAuthUseCase(customerRepo CustomerRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		customerRepo: customerRepo,
		jwtService:   jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *CustomerRecord, error) {
	record, hashedPassword, err := a.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrCustomerNotFound
	}

	if !record.IsActive {
		return "", nil, ErrCustomerInactive
	}

	if err := password.ComparePassword(hashedPassword, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(record.ID)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, record, nil
}
