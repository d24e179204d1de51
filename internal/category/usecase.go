package category

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/category/dto"
)

type UseCase interface {
	ListCategories(ctx context.Context) ([]dto.CategoryDTO, error)
	GetCategory(ctx context.Context, id int) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, in *dto.CreateCategoryInput) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id int, in *dto.UpdateCategoryInput) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id int) error
}
