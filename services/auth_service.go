package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/sinuca-cup/utils"
)

type LoginInput struct {
	Password string `json:"password" validate:"required"`
}

// AuthService checks the single organizer credential.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type authService struct {
	adminPasswordHash string
	logger            *slog.Logger
}

func NewAuthService(adminPasswordHash string, logger *slog.Logger) AuthService {
	return &authService{adminPasswordHash: adminPasswordHash, logger: logger}
}

func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	if s.adminPasswordHash == "" || !utils.CheckPasswordHash(input.Password, s.adminPasswordHash) {
		s.logger.WarnContext(ctx, "failed admin login attempt")
		return ErrInvalidCredentials
	}
	return nil
}
