package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/domain"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/dto"
	autherror "github.com/Ylandolsi/ExpenseTrackerApi/internal/errors"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existingUser, err := s.users.GetByEmailOrPhone(ctx, input.Email, "")
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}
