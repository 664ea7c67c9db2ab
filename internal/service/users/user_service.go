package users

import (
	"context"
	"fmt"

	"github.com/neupane-rajan/airline-reservation/internal/auth"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/repository"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type UpdateUserInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ListPassengers(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetPassenger(ctx context.Context, subjectID int64, role domain.UserRole, id int64) (*domain.User, error)
	UpdatePassenger(ctx context.Context, subjectID int64, role domain.UserRole, id int64, input UpdateUserInput) (*domain.User, error)
}

type UserService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a passenger account. Staff and admin accounts are
// provisioned out of band.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         domain.RolePassenger,
		FullName:     input.FullName,
		Phone:        input.Phone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", nil, domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) ListPassengers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByRole(ctx, domain.RolePassenger, limit, offset)
}

func (s *UserService) GetPassenger(ctx context.Context, subjectID int64, role domain.UserRole, id int64) (*domain.User, error) {
	if !auth.CanAccess(role, subjectID, id) {
		return nil, fmt.Errorf("passenger %d: %w", id, domain.ErrForbidden)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdatePassenger(ctx context.Context, subjectID int64, role domain.UserRole, id int64, input UpdateUserInput) (*domain.User, error) {
	if !auth.CanAccess(role, subjectID, id) {
		return nil, fmt.Errorf("passenger %d: %w", id, domain.ErrForbidden)
	}
	return s.repo.Update(ctx, id, repository.UserUpdate{
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
	})
}

var _ UserUseCase = (*UserService)(nil)
