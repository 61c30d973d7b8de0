package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
)

const (
	adminRole          = "admin"
	maxLoginAttempts   = 5
	loginAttemptWindow = 15 * time.Minute
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// AdminAccount is the single console operator configured through the environment
type AdminAccount struct {
	Email        string
	PasswordHash string
}

// AuthUseCase signs the console operator in
type AuthUseCase struct {
	admin           AdminAccount
	tokenService    ports.TokenService
	passwordService ports.PasswordService
	rateLimiter     ports.RateLimitService
	accessTokenTTL  time.Duration
	logger          logger.Logger
}

func NewAuthUseCase(
	admin AdminAccount,
	tokenService ports.TokenService,
	passwordService ports.PasswordService,
	rateLimiter ports.RateLimitService,
	accessTokenTTL time.Duration,
	log logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		admin:           admin,
		tokenService:    tokenService,
		passwordService: passwordService,
		rateLimiter:     rateLimiter,
		accessTokenTTL:  accessTokenTTL,
		logger:          log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidRequest("email and password are required")
	}

	key := "login:" + email
	allowed, err := uc.rateLimiter.CheckLimit(ctx, key, maxLoginAttempts, loginAttemptWindow)
	if err != nil {
		// limiter errors fail open
		uc.logger.Warn(ctx, "Rate limiter unavailable", map[string]interface{}{"error": err.Error()})
	} else if !allowed {
		logger.LogSecurityEvent(ctx, uc.logger, "login_rate_limited", "MEDIUM", map[string]interface{}{"email": email})
		return nil, domain.ErrRateLimitExceeded(key)
	}

	if email != strings.ToLower(uc.admin.Email) ||
		uc.passwordService.ComparePassword(uc.admin.PasswordHash, req.Password) != nil {
		if err := uc.rateLimiter.Increment(ctx, key, loginAttemptWindow); err != nil {
			uc.logger.Warn(ctx, "Failed to record login attempt", map[string]interface{}{"error": err.Error()})
		}
		logger.LogSecurityEvent(ctx, uc.logger, "login_failed", "MEDIUM", map[string]interface{}{"email": email})
		return nil, domain.ErrInvalidCredentials()
	}

	token, err := uc.tokenService.GenerateAccessToken(ports.TokenClaims{
		Subject: email,
		Email:   email,
		Role:    adminRole,
	})
	if err != nil {
		return nil, domain.ErrInternal("failed to issue access token", err)
	}

	logger.LogSecurityEvent(ctx, uc.logger, "login_succeeded", "LOW", map[string]interface{}{"email": email})
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(uc.accessTokenTTL.Seconds()),
		Email:       email,
		Role:        adminRole,
	}, nil
}
