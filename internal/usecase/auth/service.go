package auth

import (
	"context"
	"fmt"

	"datacenter-inventory/internal/config"
	"datacenter-inventory/internal/logger"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"go.uber.org/zap"
)

// Service issues access tokens. Credentials are not checked against a user
// store: any non-empty username and password is accepted and the requested
// role is carried into the token.
type Service struct {
	config *config.Config
}

// NewService creates a new auth service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		appErr := appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
		appErr.Details = utils.ValidationDetails(err)
		return nil, appErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username := utils.SanitizeIdentifier(req.Username)
	if username == "" {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Username is required", appErrors.ErrInvalidInput).
			WithDetail("username", "required")
	}
	role := req.Role
	if role == "" {
		role = utils.RoleUser
	}

	token, expiresAt, err := utils.GenerateToken(username, role, s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("username", username),
		zap.String("role", role),
		logger.Event("login_success"),
	)

	return &AuthResponse{
		User:        UserResponse{Username: username, Role: role},
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
