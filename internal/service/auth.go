package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/pkg/checks"
	"github.com/dainadb/improplan/internal/repository"
)

var (
	ErrUserEmailExists  = repository.ErrUserEmailExists
	ErrUserNotFound     = repository.ErrUserNotFound
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrUserDisabled     = errors.New("user account is disabled")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrWeakPassword     = errors.New("password must be at least 8 characters with a letter and a digit")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Login verifies the credentials and returns the account. Unknown emails and
// wrong passwords both come back as ErrWrongCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	if !checks.IsValidEmail(email) {
		return domain.User{}, ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrWrongCredentials
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongCredentials
	}

	if !user.Enabled {
		return domain.User{}, ErrUserDisabled
	}

	return user, nil
}

// Register creates an enabled account with the default user role.
func (s *AuthService) Register(ctx context.Context, user domain.User, password string) (domain.User, error) {
	if !checks.IsValidEmail(user.Email) {
		return domain.User{}, ErrInvalidEmail
	}
	if !checks.IsStrongPassword(password) {
		return domain.User{}, ErrWeakPassword
	}

	exists, err := s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.ExistsByEmail -> %w", err)
	}
	if exists {
		return domain.User{}, ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = string(hash)
	user.Enabled = true
	user.RegistrationDate = time.Now()
	if len(user.Roles) == 0 {
		user.Roles = []domain.RoleType{domain.RoleUser}
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}
