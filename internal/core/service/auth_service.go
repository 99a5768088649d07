package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pressroom/blog-api/internal/core/domain"
	"github.com/pressroom/blog-api/internal/core/ports"
)

const defaultBcryptCost = 12

// AuthService implements signup and login.
type AuthService struct {
	repo       ports.AuthRepository
	limiter    ports.LoginLimiter
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, limiter ports.LoginLimiter, jwtSecret string, tokenTTL time.Duration, bcryptCost int, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 86400 * time.Second
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = defaultBcryptCost
	}
	return &AuthService{
		repo:       repo,
		limiter:    limiter,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		throttled, err := s.limiter.TooManyAttempts(ctx, username)
		if err != nil {
			return "", err
		}
		if throttled {
			s.logger.Warn().Str("username", username).Msg("login throttled")
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.limiter != nil {
			if lerr := s.limiter.RecordFailure(ctx, username); lerr != nil {
				s.logger.Error().Err(lerr).Str("username", username).Msg("recording failed attempt")
			}
		}
		s.logger.Warn().Str("username", username).Msg("password mismatch")
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if lerr := s.limiter.Reset(ctx, username); lerr != nil {
			s.logger.Error().Err(lerr).Str("username", username).Msg("resetting attempt counter")
		}
	}

	return s.generateToken(user)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
