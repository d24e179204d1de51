package catalog

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/catalog/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type Repository interface {
	// InTx runs fn against a transaction-bound copy of the repository;
	// any error rolls back everything fn wrote.
	InTx(ctx context.Context, fn func(Repository) error) error

	ListProducts(ctx context.Context, f *dto.ProductFilter) ([]model.BaseProduct, error)
	CountProducts(ctx context.Context, f *dto.ProductFilter) (int, error)
	SearchProducts(ctx context.Context, keyword string) ([]model.BaseProduct, error)
	FindProductByID(ctx context.Context, id int) (*model.BaseProduct, error)
	InsertProduct(ctx context.Context, p *model.BaseProduct) error
	UpdateProductInfo(ctx context.Context, id int, name, label, description string) error
	UpdateAttributeName(ctx context.Context, id, slot int, name string) error
	DeleteProductByID(ctx context.Context, id int) error

	VariantsByBaseID(ctx context.Context, baseID int) ([]model.Variant, error)
	FindVariantByID(ctx context.Context, id int) (*model.Variant, error)
	InsertVariant(ctx context.Context, v *model.Variant) error
	UpdateVariant(ctx context.Context, v *model.Variant) error
	UpdateVariantValues(ctx context.Context, id int, values model.Slots) error
	FillVariantValue(ctx context.Context, baseID, slot int, value string) error
	SoftDeleteVariant(ctx context.Context, id int) error
	DeleteVariantsByBaseID(ctx context.Context, baseID int) error
	LastVariantID(ctx context.Context) (int, error)

	CategoriesByIDs(ctx context.Context, ids []int) ([]model.Category, error)
	CategoriesByProductID(ctx context.Context, productID int) ([]model.Category, error)
	CountProductsByCategory(ctx context.Context, categoryID int) (int, error)
	ReplaceProductCategories(ctx context.Context, productID int, categoryIDs []int) error
}
