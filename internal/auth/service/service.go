package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"autocenter_backend/internal/auth/password"
	"autocenter_backend/internal/auth/repository"
	"autocenter_backend/internal/auth/token"
	"autocenter_backend/internal/events"
	"autocenter_backend/platform/apperr"
	"autocenter_backend/platform/config"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType = "access"
)

var validRoles = map[string]bool{
	httpkit.RoleSuperAdmin: true,
	httpkit.RoleAdmin:      true,
	httpkit.RoleViewer:     true,
	httpkit.RoleCustomer:   true,
}

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SignIn verifies credentials and issues an access/refresh token pair.
// Inactive accounts and unknown emails produce the same generic error.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	if !user.IsActive {
		s.log.AuthEvent("sign_in", email, false, "account disabled")
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", apperr.Unauthorized("token expired")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil || !user.IsActive {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", apperr.Unauthorized("invalid token")
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)
	return s.issueTokens(ctx, user)
}

func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, token.HashSHA256(refreshToken))
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, err
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}

	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		return apperr.BadRequest("current password is incorrect")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return apperr.Internal("hash password")
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	_ = s.repo.RevokeAllRefreshTokens(ctx, userID)
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]repository.User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser provisions an account with a given role. Admin only.
func (s *Service) CreateUser(ctx context.Context, actorID uuid.UUID, email, name, plainPassword, role string) (repository.User, error) {
	if !validRoles[role] {
		return repository.User{}, apperr.Validation("unknown role").WithField("role")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.User{}, apperr.Internal("hash password")
	}

	user, err := s.repo.CreateUser(ctx, strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(name), hash, role)
	if err != nil {
		return repository.User{}, apperr.Conflict("email already in use")
	}

	s.bus.Publish(ctx, events.UserCreated{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ActorID:   actorID,
	})

	return user, nil
}

func (s *Service) SetUserRole(ctx context.Context, userID uuid.UUID, role string) error {
	if !validRoles[role] {
		return apperr.Validation("unknown role").WithField("role")
	}
	err := s.repo.UpdateUserRole(ctx, userID, role)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	return err
}

func (s *Service) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	err := s.repo.SetUserActive(ctx, userID, active)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	if err == nil && !active {
		_ = s.repo.RevokeAllRefreshTokens(ctx, userID)
	}
	return err
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (string, string, error) {
	accessToken, err := s.signJWT(user.ID, []string{user.Role}, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(userID uuid.UUID, roles []string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"roles": roles,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
