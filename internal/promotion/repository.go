package promotion

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	FindAll(ctx context.Context) ([]model.Promotion, error)
	FindByID(ctx context.Context, id int) (*model.Promotion, error)
	Insert(ctx context.Context, p *model.Promotion) error
	Update(ctx context.Context, p *model.Promotion) error
	Delete(ctx context.Context, id int) error

	ProductIDs(ctx context.Context, promotionID int) ([]int, error)
	CategoryIDs(ctx context.Context, promotionID int) ([]int, error)
	ReplaceProducts(ctx context.Context, promotionID int, productIDs []int) error
	ReplaceCategories(ctx context.Context, promotionID int, categoryIDs []int) error
}
