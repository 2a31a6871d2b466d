package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/domain"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/dto"
	autherror "github.com/Ylandolsi/ExpenseTrackerApi/internal/errors"
)

// AuthService orchestrates the session lifecycle: login, refresh token
// rotation and revocation.
type AuthService struct {
	users                  domain.UserRepository
	refreshTokens          domain.RefreshTokenRepository
	tokenService           TokenGenerator
	maxActiveTokensPerUser int
}

func NewAuthService(users domain.UserRepository, refreshTokens domain.RefreshTokenRepository,
	tokenService TokenGenerator, maxActiveTokens int) *AuthService {
	return &AuthService{
		users:                  users,
		refreshTokens:          refreshTokens,
		tokenService:           tokenService,
		maxActiveTokensPerUser: maxActiveTokens,
	}
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	if input.Email == "" && input.PhoneNumber == "" {
		return nil, autherror.ErrEmailOrPhoneRequired
	}

	user, err := s.users.GetByEmailOrPhone(ctx, input.Email, input.PhoneNumber)
	if err != nil {
		return nil, err
	}

	// Unknown identifier and wrong password are deliberately
	// indistinguishable to the caller.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	tokenPair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// Bounded multi-session: trim the oldest tokens beyond the cap.
	// Trimming failures do not fail the login itself.
	activeCount, err := s.refreshTokens.CountActiveByUserID(ctx, user.ID)
	if err != nil {
		log.Printf("warn: failed to count active refresh tokens for user %d: %v", user.ID, err)
	} else if activeCount > s.maxActiveTokensPerUser {
		if err := s.refreshTokens.DeleteOldestByUserID(ctx, user.ID, s.maxActiveTokensPerUser); err != nil {
			log.Printf("warn: failed to delete oldest refresh tokens for user %d: %v", user.ID, err)
		}
	}

	return tokenPair, nil
}

func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	token, err := s.refreshTokens.Resolve(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	// Rotate: the presented token is deleted before its replacement is
	// issued, so each refresh token is usable at most once.
	if _, err := s.refreshTokens.Revoke(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	found, err := s.refreshTokens.Revoke(ctx, refreshToken)
	if err != nil {
		return err
	}
	if !found {
		return autherror.ErrRefreshTokenNotFound
	}
	return nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, _, err := s.tokenService.Generate(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: now.Add(s.tokenService.GetRefreshTokenExpiry()),
		CreatedAt: now,
	}
	if err := s.refreshTokens.Store(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
