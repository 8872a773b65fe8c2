package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ubhospitality/inventory-backend/internal/mailer"
	"github.com/ubhospitality/inventory-backend/internal/users"
	pkgAuth "github.com/ubhospitality/inventory-backend/pkg/auth"
	"github.com/ubhospitality/inventory-backend/pkg/config"
	"github.com/ubhospitality/inventory-backend/pkg/db"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
	"github.com/ubhospitality/inventory-backend/pkg/security"
)

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role,omitempty"`
}

// RegisterService handles account creation and email verification.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
	VerifyEmail(ctx context.Context, token string) error
}

// tokenStore tracks single-use email tokens in Redis.
type tokenStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	ActionTokenKey(purpose, jti string) string
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	Tokens         tokenStore
	Mailer         mailer.Sender
	PasswordConfig config.PasswordConfig
	JWTConfig      config.JWTConfig
	AppConfig      config.AppConfig
}

type registerService struct {
	db          *db.Client
	tokens      tokenStore
	mail        mailer.Sender
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
	appCfg      config.AppConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token store required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &registerService{
		db:          params.DB,
		tokens:      params.Tokens,
		mail:        params.Mailer,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
		appCfg:      params.AppConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if err := security.ValidateStrength(req.Password); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "weak password")
	}

	role := enums.UserRoleEmployee
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := enums.ParseUserRole(req.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		role = parsed
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}
		if _, err := userRepo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			Username:     username,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Role:         role,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email or username already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = users.FromModel(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.sendVerificationMail(ctx, created)
	return created, nil
}

// sendVerificationMail issues the verify token and queues the email. Failures
// are logged by the mailer; registration has already committed.
func (s *registerService) sendVerificationMail(ctx context.Context, user *users.UserDTO) {
	token, err := pkgAuth.MintActionToken(s.jwtCfg, time.Now().UTC(), user.ID, pkgAuth.PurposeEmailVerify, s.jwtCfg.VerifyTokenTTL())
	if err != nil {
		return
	}
	s.mail.SendVerificationEmail(ctx, user.Email, actionURL(s.appCfg.BaseURL, "/api/v1/auth/verify-email", token))
}

// VerifyEmail consumes a verification token. Tokens are single use; the jti
// is claimed in Redis before the user row is touched.
func (s *registerService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := pkgAuth.ParseActionToken(s.jwtCfg, token, pkgAuth.PurposeEmailVerify)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired verification token")
	}

	if err := claimActionToken(ctx, s.tokens, pkgAuth.PurposeEmailVerify, claims); err != nil {
		return err
	}

	userRepo := users.NewRepository(s.db.DB())
	if _, err := userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired verification token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if err := userRepo.MarkEmailVerified(ctx, claims.UserID, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark email verified")
	}
	return nil
}

// claimActionToken marks the token's jti as used for the remainder of its lifetime.
func claimActionToken(ctx context.Context, tokens tokenStore, purpose pkgAuth.TokenPurpose, claims *pkgAuth.ActionTokenClaims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
			ttl = remaining
		}
	}
	ok, err := tokens.SetNX(ctx, tokens.ActionTokenKey(string(purpose), claims.ID), "used", ttl)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim token")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "token already used")
	}
	return nil
}

func actionURL(baseURL, path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", strings.TrimRight(baseURL, "/"), path, url.QueryEscape(token))
}
