// Package auth
package auth

import (
	"context"
	"fmt"
	"time"

	"keepup/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo        domain.UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
	bcryptCost  int
}

func NewService(repo domain.UserRepository, secret string, expiry time.Duration, bcryptCost int) domain.AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &service{
		repo:        repo,
		jwtSecret:   []byte(secret),
		tokenExpiry: expiry,
		bcryptCost:  bcryptCost,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	role, err := s.repo.GetRoleByName(ctx, domain.DefaultRoleName)
	if err != nil {
		return nil, err
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPwd),
		RoleID:   role.ID,
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := IssueToken(user, role.Name, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.AuthResponse{Token: token}, nil
}

// Login deliberately returns the same error for an unknown email and a wrong
// password so the response cannot be used to enumerate accounts.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	token, err := IssueToken(user, roleName, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.AuthResponse{Token: token}, nil
}
