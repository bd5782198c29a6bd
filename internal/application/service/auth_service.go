package service

import (
	"context"

	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
	"github.com/tmcosta/vendas-pos-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles cashier authentication
type AuthService struct {
	userRepo   domainRepo.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo domainRepo.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginResult carries the issued token and the authenticated cashier
type LoginResult struct {
	Token   string
	Cashier *entity.User
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &LoginResult{Token: token, Cashier: user}, nil
}
