package response

import (
	"voucher-campaign/internal/usecase"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

type CustomerResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func FromLoginResult(token string, record *usecase.CustomerRecord) *LoginResponse {
	return &LoginResponse{
		Token: token,
		Customer: CustomerResponse{
			ID:    record.ID,
			Email: record.Email,
		},
	}
}
