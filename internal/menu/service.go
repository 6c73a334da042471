package menu

import (
	"context"

	"restaurant-pos/internal/domain"
)

type ServiceInterface interface {
	CreateCategory(ctx context.Context, name string) (domain.MenuCategory, error)
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	UpdateCategory(ctx context.Context, id int64, req domain.UpdateCategoryRequest) (domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItem, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int64, req domain.UpdateMenuItemRequest) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) (domain.MenuItem, error)

	PublicMenu(ctx context.Context) ([]domain.MenuCategory, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, name string) (domain.MenuCategory, error) {
	if name == "" {
		return domain.MenuCategory{}, domain.NewValidation("name is required")
	}
	return s.repo.CreateCategory(ctx, domain.MenuCategory{Name: name, IsActive: true})
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	return s.repo.ListCategories(ctx, false)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req domain.UpdateCategoryRequest) (domain.MenuCategory, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return domain.MenuCategory{}, err
	}
	if req.Name != nil && *req.Name != "" {
		c.Name = *req.Name
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return s.repo.UpdateCategory(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItem, error) {
	if req.Name == "" {
		return domain.MenuItem{}, domain.NewValidation("name is required")
	}
	if req.Price < 0 {
		return domain.MenuItem{}, domain.NewValidation("price must be >= 0")
	}
	if _, err := s.repo.GetCategory(ctx, req.CategoryID); err != nil {
		return domain.MenuItem{}, err
	}
	return s.repo.CreateItem(ctx, domain.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       domain.CentsFromFloat(req.Price),
		Image:       req.Image,
		IsAvailable: true,
	})
}

func (s *Service) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, req domain.UpdateMenuItemRequest) (domain.MenuItem, error) {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if req.Name != nil && *req.Name != "" {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.MenuItem{}, domain.NewValidation("price must be >= 0")
		}
		it.Price = domain.CentsFromFloat(*req.Price)
	}
	if req.Image != nil {
		it.Image = *req.Image
	}
	if req.IsAvailable != nil {
		it.IsAvailable = *req.IsAvailable
	}
	return s.repo.UpdateItem(ctx, it)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.repo.DeleteItem(ctx, id)
}

// ToggleAvailability flips isAvailable without touching any other field.
func (s *Service) ToggleAvailability(ctx context.Context, id int64) (domain.MenuItem, error) {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	it.IsAvailable = !it.IsAvailable
	return s.repo.UpdateItem(ctx, it)
}

// PublicMenu is what guests see: active categories, available items only.
func (s *Service) PublicMenu(ctx context.Context) ([]domain.MenuCategory, error) {
	cats, err := s.repo.ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		available := cats[i].Items[:0]
		for _, it := range cats[i].Items {
			if it.IsAvailable {
				available = append(available, it)
			}
		}
		cats[i].Items = available
	}
	return cats, nil
}
