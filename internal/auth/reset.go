package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ubhospitality/inventory-backend/internal/mailer"
	pkgAuth "github.com/ubhospitality/inventory-backend/pkg/auth"
	"github.com/ubhospitality/inventory-backend/pkg/config"
	"github.com/ubhospitality/inventory-backend/pkg/db/models"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
	"github.com/ubhospitality/inventory-backend/pkg/security"
)

// PasswordResetService drives the forgot-password flow.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type passwordUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// PasswordResetParams packages the dependencies for the reset flow.
type PasswordResetParams struct {
	UserRepo       passwordUserRepository
	Tokens         tokenStore
	Mailer         mailer.Sender
	PasswordConfig config.PasswordConfig
	JWTConfig      config.JWTConfig
	AppConfig      config.AppConfig
}

type passwordResetService struct {
	users       passwordUserRepository
	tokens      tokenStore
	mail        mailer.Sender
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
	appCfg      config.AppConfig
}

// NewPasswordResetService builds the reset service with the provided dependencies.
func NewPasswordResetService(params PasswordResetParams) (PasswordResetService, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token store required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &passwordResetService{
		users:       params.UserRepo,
		tokens:      params.Tokens,
		mail:        params.Mailer,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
		appCfg:      params.AppConfig,
	}, nil
}

// RequestReset emails a reset link when the address matches an account.
// Unknown addresses return success so the endpoint cannot be used to probe
// which emails are registered.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil
	}

	token, err := pkgAuth.MintActionToken(s.jwtCfg, time.Now().UTC(), user.ID, pkgAuth.PurposePasswordReset, s.jwtCfg.ResetTokenTTL())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint reset token")
	}
	s.mail.SendPasswordResetEmail(ctx, user.Email, actionURL(s.appCfg.BaseURL, "/api/v1/auth/reset-password", token))
	return nil
}

// ResetPassword consumes a single-use reset token and replaces the credential.
func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := pkgAuth.ParseActionToken(s.jwtCfg, token, pkgAuth.PurposePasswordReset)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
	}
	if err := security.ValidateStrength(newPassword); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "weak password")
	}

	if err := claimActionToken(ctx, s.tokens, pkgAuth.PurposePasswordReset, claims); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, claims.UserID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}
