package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/projectcnw/sales-backoffice/internal/catalog"
	"github.com/projectcnw/sales-backoffice/internal/catalog/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type PGRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db, ext: db}
}

func (r *PGRepository) InTx(ctx context.Context, fn func(catalog.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	if err := fn(&PGRepository{db: r.db, ext: tx}); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

// attributeColumn and valueColumn whitelist the dynamic column names so a
// slot index can never inject SQL.
func attributeColumn(slot int) string {
	return fmt.Sprintf("attribute%d", slot+1)
}

func valueColumn(slot int) string {
	return fmt.Sprintf("value%d", slot+1)
}

func validSlot(slot int) bool {
	return slot >= 0 && slot < model.SlotCount
}

func (r *PGRepository) buildFilter(f *dto.ProductFilter) (string, []interface{}) {
	conditions := []string{"p.is_deleted = FALSE"}
	args := []interface{}{}

	if f.Query != "" {
		conditions = append(conditions, "(p.name ILIKE ? OR p.label ILIKE ?)")
		like := "%" + f.Query + "%"
		args = append(args, like, like)
	}
	if len(f.CategoryIDs) > 0 {
		conditions = append(conditions, "p.id IN (SELECT pc.product_id FROM product_categories pc WHERE pc.category_id IN (?))")
		args = append(args, f.CategoryIDs)
	}
	if f.StartDate != nil {
		conditions = append(conditions, "p.created_at >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		conditions = append(conditions, "p.created_at <= ?")
		args = append(args, *f.EndDate)
	}
	if len(f.Channels) > 0 {
		conditions = append(conditions, "p.id IN (SELECT sc.product_id FROM product_channels sc WHERE sc.channel IN (?))")
		args = append(args, f.Channels)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PGRepository) ListProducts(ctx context.Context, f *dto.ProductFilter) ([]model.BaseProduct, error) {
	whereClause, args := r.buildFilter(f)

	query := "SELECT p.* FROM base_products p" + whereClause + " ORDER BY p.created_at DESC"
	if f.Size > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Size, f.Page*f.Size)
	}

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	query = r.ext.Rebind(query)

	products := []model.BaseProduct{}
	if err := sqlx.SelectContext(ctx, r.ext, &products, query, inArgs...); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (r *PGRepository) CountProducts(ctx context.Context, f *dto.ProductFilter) (int, error) {
	whereClause, args := r.buildFilter(f)

	query := "SELECT count(*) FROM base_products p" + whereClause
	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	query = r.ext.Rebind(query)

	var count int
	if err := sqlx.GetContext(ctx, r.ext, &count, query, inArgs...); err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

func (r *PGRepository) SearchProducts(ctx context.Context, keyword string) ([]model.BaseProduct, error) {
	query := `
        SELECT * FROM base_products
        WHERE is_deleted = FALSE
          AND (name ILIKE $1 OR label ILIKE $1 OR description ILIKE $1)
        ORDER BY created_at DESC
    `
	products := []model.BaseProduct{}
	if err := sqlx.SelectContext(ctx, r.ext, &products, query, "%"+keyword+"%"); err != nil {
		return nil, errors.Wrap(err, "search products")
	}
	return products, nil
}

func (r *PGRepository) FindProductByID(ctx context.Context, id int) (*model.BaseProduct, error) {
	var product model.BaseProduct
	query := `SELECT * FROM base_products WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (r *PGRepository) InsertProduct(ctx context.Context, p *model.BaseProduct) error {
	query := `
        INSERT INTO base_products (name, label, description, attribute1, attribute2, attribute3, is_deleted, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8)
        RETURNING id
    `
	err := sqlx.GetContext(ctx, r.ext, &p.ID, query,
		p.Name, p.Label, p.Description, p.Attribute1, p.Attribute2, p.Attribute3, p.CreatedAt, p.UpdatedAt)
	return errors.Wrap(err, "insert product")
}

func (r *PGRepository) UpdateProductInfo(ctx context.Context, id int, name, label, description string) error {
	query := `UPDATE base_products SET name = $2, label = $3, description = $4, updated_at = now() WHERE id = $1`
	_, err := r.ext.ExecContext(ctx, query, id, name, label, description)
	return errors.Wrap(err, "update product info")
}

func (r *PGRepository) UpdateAttributeName(ctx context.Context, id, slot int, name string) error {
	if !validSlot(slot) {
		return errors.Errorf("invalid attribute slot %d", slot)
	}
	query := fmt.Sprintf(`UPDATE base_products SET %s = $2, updated_at = now() WHERE id = $1`, attributeColumn(slot))
	_, err := r.ext.ExecContext(ctx, query, id, name)
	return errors.Wrap(err, "update attribute name")
}

func (r *PGRepository) DeleteProductByID(ctx context.Context, id int) error {
	_, err := r.ext.ExecContext(ctx, `DELETE FROM base_products WHERE id = $1`, id)
	return errors.Wrap(err, "delete product")
}

func (r *PGRepository) VariantsByBaseID(ctx context.Context, baseID int) ([]model.Variant, error) {
	variants := []model.Variant{}
	query := `SELECT * FROM variants WHERE base_id = $1 AND is_deleted = FALSE ORDER BY id ASC`
	if err := sqlx.SelectContext(ctx, r.ext, &variants, query, baseID); err != nil {
		return nil, errors.Wrap(err, "variants by base id")
	}
	return variants, nil
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id int) (*model.Variant, error) {
	var variant model.Variant
	query := `SELECT * FROM variants WHERE id = $1 LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &variant, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find variant")
	}
	return &variant, nil
}

func (r *PGRepository) InsertVariant(ctx context.Context, v *model.Variant) error {
	query := `
        INSERT INTO variants (base_id, sku, barcode, quantity, value1, value2, value3, is_deleted, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)
        RETURNING id
    `
	err := sqlx.GetContext(ctx, r.ext, &v.ID, query,
		v.BaseID, v.Sku, v.Barcode, v.Quantity, v.Value1, v.Value2, v.Value3, v.CreatedAt, v.UpdatedAt)
	return errors.Wrap(err, "insert variant")
}

func (r *PGRepository) UpdateVariant(ctx context.Context, v *model.Variant) error {
	query := `
        UPDATE variants
        SET barcode = $2,
            quantity = $3,
            value1 = $4,
            value2 = $5,
            value3 = $6,
            updated_at = now()
        WHERE id = $1
    `
	_, err := r.ext.ExecContext(ctx, query, v.ID, v.Barcode, v.Quantity, v.Value1, v.Value2, v.Value3)
	return errors.Wrap(err, "update variant")
}

func (r *PGRepository) UpdateVariantValues(ctx context.Context, id int, values model.Slots) error {
	query := `UPDATE variants SET value1 = $2, value2 = $3, value3 = $4, updated_at = now() WHERE id = $1`
	_, err := r.ext.ExecContext(ctx, query, id, values[0], values[1], values[2])
	return errors.Wrap(err, "update variant values")
}

// FillVariantValue back-fills one value column on every variant of a base
// product, used when a new attribute slot is created.
func (r *PGRepository) FillVariantValue(ctx context.Context, baseID, slot int, value string) error {
	if !validSlot(slot) {
		return errors.Errorf("invalid value slot %d", slot)
	}
	query := fmt.Sprintf(`UPDATE variants SET %s = $2, updated_at = now() WHERE base_id = $1`, valueColumn(slot))
	_, err := r.ext.ExecContext(ctx, query, baseID, value)
	return errors.Wrap(err, "fill variant value")
}

func (r *PGRepository) SoftDeleteVariant(ctx context.Context, id int) error {
	_, err := r.ext.ExecContext(ctx, `UPDATE variants SET is_deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	return errors.Wrap(err, "soft delete variant")
}

func (r *PGRepository) DeleteVariantsByBaseID(ctx context.Context, baseID int) error {
	_, err := r.ext.ExecContext(ctx, `DELETE FROM variants WHERE base_id = $1`, baseID)
	return errors.Wrap(err, "delete variants by base id")
}

// LastVariantID reads the global maximum variant id. SKU generation calls
// this inside the same transaction as the inserts that depend on it.
func (r *PGRepository) LastVariantID(ctx context.Context) (int, error) {
	var lastID int
	if err := sqlx.GetContext(ctx, r.ext, &lastID, `SELECT COALESCE(MAX(id), 0) FROM variants`); err != nil {
		return 0, errors.Wrap(err, "last variant id")
	}
	return lastID, nil
}

func (r *PGRepository) CategoriesByIDs(ctx context.Context, ids []int) ([]model.Category, error) {
	if len(ids) == 0 {
		return []model.Category{}, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM categories WHERE id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "categories by ids")
	}
	query = r.ext.Rebind(query)

	categories := []model.Category{}
	if err := sqlx.SelectContext(ctx, r.ext, &categories, query, args...); err != nil {
		return nil, errors.Wrap(err, "categories by ids")
	}
	return categories, nil
}

func (r *PGRepository) CategoriesByProductID(ctx context.Context, productID int) ([]model.Category, error) {
	categories := []model.Category{}
	query := `
        SELECT c.* FROM categories c
        JOIN product_categories pc ON pc.category_id = c.id
        WHERE pc.product_id = $1
        ORDER BY c.id ASC
    `
	if err := sqlx.SelectContext(ctx, r.ext, &categories, query, productID); err != nil {
		return nil, errors.Wrap(err, "categories by product id")
	}
	return categories, nil
}

func (r *PGRepository) CountProductsByCategory(ctx context.Context, categoryID int) (int, error) {
	var count int
	query := `
        SELECT count(*) FROM product_categories pc
        JOIN base_products p ON p.id = pc.product_id
        WHERE pc.category_id = $1 AND p.is_deleted = FALSE
    `
	if err := sqlx.GetContext(ctx, r.ext, &count, query, categoryID); err != nil {
		return 0, errors.Wrap(err, "count products by category")
	}
	return count, nil
}

// ReplaceProductCategories clears every existing link before attaching the
// new set, so the association always mirrors the latest request.
func (r *PGRepository) ReplaceProductCategories(ctx context.Context, productID int, categoryIDs []int) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return errors.Wrap(err, "clear product categories")
	}
	for _, categoryID := range categoryIDs {
		_, err := r.ext.ExecContext(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			productID, categoryID)
		if err != nil {
			return errors.Wrap(err, "attach product category")
		}
	}
	return nil
}
