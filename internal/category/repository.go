package category

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	Insert(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int) error
	CountProducts(ctx context.Context, categoryID int) (int, error)
}
