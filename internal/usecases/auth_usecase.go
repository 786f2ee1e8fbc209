package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lawithanx/jcorp/internal/config"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/pkg/crypto"
	"github.com/lawithanx/jcorp/pkg/jwt"
	"github.com/lawithanx/jcorp/pkg/logger"
	"github.com/lawithanx/jcorp/pkg/redis"
)

// AdminRole is the only role the backend issues tokens for.
const AdminRole = "admin"

// AuthUsecase handles admin authentication against the single
// configured credential.
type AuthUsecase struct {
	jwtService *jwt.JWTService
	sessions   *redis.SessionStore
	security   config.SecurityConfig
	sessionTTL time.Duration
}

// LoginResult carries the issued token pair and the session handle the
// client presents on logout.
type LoginResult struct {
	SessionID    string `json:"sessionId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func NewAuthUsecase(jwtService *jwt.JWTService, sessions *redis.SessionStore, security config.SecurityConfig, sessionTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		jwtService: jwtService,
		sessions:   sessions,
		security:   security,
		sessionTTL: sessionTTL,
	}
}

// Login checks the password against the configured bcrypt hash and, on
// success, issues a JWT pair and persists an encrypted session.
func (u *AuthUsecase) Login(ctx context.Context, password string) (*LoginResult, error) {
	if u.security.AdminPasswordHash == "" {
		logger.Warn(ctx, "admin login attempted but no password hash configured")
		return nil, domainerrors.Unauthorized("Admin access is not configured")
	}
	if !crypto.CheckPassword(password, u.security.AdminPasswordHash) {
		return nil, domainerrors.Unauthorized("Invalid credentials")
	}

	pair, err := u.jwtService.GenerateTokenPair(AdminRole)
	if err != nil {
		logger.Error(ctx, "failed to generate token pair", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	sessionID, err := crypto.GenerateURLSafeToken(24)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if u.sessions != nil {
		sess := &redis.AdminSession{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}
		if err := u.sessions.Save(ctx, sessionID, sess, u.sessionTTL); err != nil {
			logger.Error(ctx, "failed to persist session", zap.Error(err))
			return nil, domainerrors.InternalError(err)
		}
	}

	logger.Info(ctx, "admin session created", zap.String("session_id", sessionID))
	return &LoginResult{
		SessionID:    sessionID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout discards the server-side session. Unknown session IDs are not
// an error; the outcome is the same.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessions == nil || sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		logger.Error(ctx, "failed to delete session", zap.Error(err))
		return domainerrors.InternalError(err)
	}
	return nil
}

// ValidateAccessToken verifies a bearer token and confirms it carries
// the admin role.
func (u *AuthUsecase) ValidateAccessToken(tokenString string) (*jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("Invalid or expired token")
	}
	if claims.Role != AdminRole {
		return nil, domainerrors.Forbidden("Insufficient permissions")
	}
	return claims, nil
}
