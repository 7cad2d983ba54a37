package usecase

import (
	"barberbook/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator authenticates customers from bearer tokens issued by the
// identity service.
type TokenValidator interface {
	ValidateToken(token string) (customerID uuid.UUID, role string, err error)
}

type jwtTokenValidator struct {
	svc *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return &jwtTokenValidator{svc: svc}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, string, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.CustomerID, claims.Role, nil
}
