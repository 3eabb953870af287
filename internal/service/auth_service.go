package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nagabalm/internal/config"
	"nagabalm/internal/model"
	"nagabalm/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the JWT claims carried by access and refresh tokens.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// authService implements AuthService with HS256-signed JWTs and bcrypt
// password hashing. Refresh tokens are persisted on the user row so a
// token can be revoked by issuing a new one.
type authService struct {
	userRepo repository.UserRepository
	cfg      config.AuthConfig
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger.With().Str("service", "auth").Logger(),
		now:      time.Now,
	}
}

// Login verifies credentials and issues an access/refresh token pair.
// The refresh token is stored on the user row, replacing any previous one.
func (s *authService) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		s.logger.Debug().Str("email", email).Msg("login for unknown email")
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("email", email).Msg("password mismatch")
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := s.signToken(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.signToken(user, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to store refresh token")
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh verifies a refresh token against its signature and the copy stored
// on the user row, then issues a new access token. The refresh token itself
// is not rotated.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	if refreshToken == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingField,
			"Refresh token is required")
	}

	claims, err := VerifyToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		s.logger.Debug().Err(err).Msg("refresh token verification failed")
		return nil, model.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.RefreshToken != refreshToken {
		s.logger.Debug().Str("user_id", claims.UserID).Msg("refresh token not current")
		return nil, model.ErrInvalidToken
	}

	accessToken, err := s.signToken(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &model.TokenPair{AccessToken: accessToken}, nil
}

// CreateUser registers a new admin user with a bcrypt-hashed password.
func (s *authService) CreateUser(ctx context.Context, email, password, name, role string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingField, "Email is required")
	}
	if len(password) < 8 {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingField,
			"Password must be at least 8 characters")
	}
	if role == "" {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", email).Msg("user created")
	return user, nil
}

// signToken issues an HS256 JWT for the user with the given secret and TTL.
func (s *authService) signToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates an HS256 token against the given signing
// secret. Used for both access tokens (bearer-auth middleware) and refresh
// tokens (with the refresh secret).
func VerifyToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
