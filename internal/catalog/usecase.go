package catalog

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/catalog/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type UseCase interface {
	ListProducts(ctx context.Context, q *dto.ListQuery) ([]dto.BaseProductDTO, int, error)
	GetBaseProductByID(ctx context.Context, id int) (*dto.BaseProductDTO, error)
	CreateBaseProduct(ctx context.Context, in *dto.CreateBaseProductInput) (*dto.BaseProductDTO, error)
	UpdateBaseProduct(ctx context.Context, id int, in *dto.UpdateBaseProductInput) (*dto.BaseProductDTO, error)
	DeleteBaseProduct(ctx context.Context, id int) error
	SearchByKeyword(ctx context.Context, keyword string) ([]dto.BaseProductDTO, error)

	UpdateNameAttribute(ctx context.Context, id int, in *dto.AttributeInput) error
	CreateAttribute(ctx context.Context, id int, in *dto.AttributeInput) error
	DeleteAttributeOfProduct(ctx context.Context, id int, keyAttribute string) error

	GetVariantByID(ctx context.Context, id int) (*model.Variant, error)
	ListVariantsByBaseID(ctx context.Context, baseID int) ([]model.Variant, error)
	CreateVariant(ctx context.Context, baseID int, in *dto.VariantInput) (*model.Variant, error)
	UpdateVariant(ctx context.Context, baseID int, in *dto.UpdateVariantInput) (*model.Variant, error)
	DeleteVariantByID(ctx context.Context, baseID, variantID int) error
}
