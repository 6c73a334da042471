package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"restaurant-pos/internal/domain"
)

type ServiceInterface interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, req domain.UpdateUserRequest) (domain.User, error)
	Delete(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	if req.Name == "" {
		return domain.User{}, domain.NewValidation("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.User{}, domain.NewValidation("email is required")
	}
	if len(req.Password) < 6 {
		return domain.User{}, domain.NewValidation("password must be at least 6 characters")
	}
	if _, err := s.repo.GetRole(ctx, req.RoleID); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       req.RoleID,
		IsActive:     true,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByID and GetByEmail satisfy the auth module's UserGetter.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateUserRequest) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if req.Name != nil && *req.Name != "" {
		u.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.RoleID != nil {
		if _, err := s.repo.GetRole(ctx, *req.RoleID); err != nil {
			return domain.User{}, err
		}
		u.RoleID = *req.RoleID
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return domain.User{}, domain.NewValidation("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	return s.repo.Update(ctx, u)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.repo.ListRoles(ctx)
}
