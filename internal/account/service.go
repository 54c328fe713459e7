// Package account registers and authenticates users.
package account

import (
	"context"
	"errors"
	"fmt"

	"stock_simulator/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	DB          *gorm.DB
	InitialCash decimal.Decimal // Cash granted to new users
	HashCost    int             // bcrypt cost, bcrypt.DefaultCost when zero
}

func New(db *gorm.DB, initialCash decimal.Decimal) *Service {
	return &Service{DB: db, InitialCash: initialCash}
}

// Register creates a user after validating the form fields in the order
// they are shown to the user.
func (s *Service) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	if username == "" {
		return nil, domain.Invalid("username", "must enter a username")
	}
	taken, err := s.exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}
	if password == "" {
		return nil, domain.Invalid("password", "must enter a password")
	}
	if confirmation == "" {
		return nil, domain.Invalid("confirmation", "must verify password")
	}
	if password != confirmation {
		return nil, domain.Invalid("confirmation", "passwords need to match")
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Username: username, Password: string(hash), Cash: s.InitialCash}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race with a concurrent registration of the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, &domain.PersistenceError{Op: "create user", Err: err}
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown users and wrong passwords
// produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.Invalid("username", "must provide username")
	}
	if password == "" {
		return nil, domain.Invalid("password", "must provide password")
	}
	user, err := s.find(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// find looks a user up by exact, case-sensitive username. The comparison is
// repeated in Go because some MySQL collations match case-insensitively.
func (s *Service) find(ctx context.Context, username string) (*domain.User, error) {
	var users []domain.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Service) exists(ctx context.Context, username string) (bool, error) {
	_, err := s.find(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
