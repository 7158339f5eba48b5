package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthybowl-service/internal/domain/user"
	xerrors "healthybowl-service/internal/pkg/errors"
	"healthybowl-service/internal/pkg/jwt"
	"healthybowl-service/internal/pkg/ratelimit"
	"healthybowl-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxLoginAttempts = 5
	loginWindow      = 15 * time.Minute
)

type AuthService struct {
	userRepo   *postgres.UserRepository
	jwtManager *jwt.Manager
	limiter    *ratelimit.Limiter
	logger     *zap.Logger
}

func NewAuthService(
	userRepo *postgres.UserRepository,
	jwtManager *jwt.Manager,
	limiter *ratelimit.Limiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		limiter:    limiter,
		logger:     logger,
	}
}

// Register creates a customer account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, _ := s.userRepo.FindByEmail(ctx, email); existing != nil {
		return nil, fmt.Errorf("account already exists: %w", xerrors.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:        email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         user.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return &user.AuthResponse{Token: token, User: u}, nil
}

// Login verifies credentials and returns a signed token. Attempts are rate
// limited per IP and email.
func (s *AuthService) Login(ctx context.Context, ip string, req *user.LoginRequest) (*user.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, _, err := s.limiter.Allow(ctx, "login", ip+":"+email, maxLoginAttempts, loginWindow)
	if err != nil {
		s.logger.Warn("rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}

	token, err := s.jwtManager.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, "login", ip+":"+email); err != nil {
		s.logger.Warn("failed to reset rate limit", zap.Error(err))
	}

	return &user.AuthResponse{Token: token, User: u}, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}
	return claims, nil
}

// Me loads the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID int64) (*user.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// EnsureAdminExists creates the admin account on first boot.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, _ := s.userRepo.FindByEmail(ctx, email); existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin account created", zap.String("email", email))
	return nil
}
