package jwttoken

import (
	authmw "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/auth"
)

// MiddlewareValidator exposes a JWTService as the auth middleware's
// JWTValidator, so the middleware never sees jwt.RegisteredClaims.
type MiddlewareValidator struct {
	service *JWTService
}

func NewMiddlewareValidator(service *JWTService) *MiddlewareValidator {
	return &MiddlewareValidator{service: service}
}

func (a *MiddlewareValidator) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{
		VolunteerID: claims.VolunteerID,
		Admin:       claims.Admin,
		JTI:         claims.ID,
	}, nil
}
