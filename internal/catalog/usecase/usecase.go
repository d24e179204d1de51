package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/catalog"
	"github.com/projectcnw/sales-backoffice/internal/catalog/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
	"github.com/projectcnw/sales-backoffice/internal/pkg/cache"
	"github.com/projectcnw/sales-backoffice/internal/pkg/search"
)

const (
	dateLayout   = "2006-01-02"
	listCacheTTL = 5 * time.Minute
	listCacheKey = "base-products:list:"
)

type baseProductUseCase struct {
	repo    catalog.Repository
	cache   *cache.RedisClient
	es      *search.Client
	esIndex string
	logger  *zap.Logger
}

func NewBaseProductUseCase(repo catalog.Repository, redis *cache.RedisClient, es *search.Client, esIndex string, log *zap.Logger) catalog.UseCase {
	return &baseProductUseCase{
		repo:    repo,
		cache:   redis,
		es:      es,
		esIndex: esIndex,
		logger:  log,
	}
}

// parseFilter converts the raw list query into a repository filter. Malformed
// dates are logged and the corresponding filter dropped, never surfaced.
func (uc *baseProductUseCase) parseFilter(q *dto.ListQuery) *dto.ProductFilter {
	f := &dto.ProductFilter{
		Query: q.Query,
		Page:  q.Page,
		Size:  q.Size,
	}

	if q.CategoryIds != "" {
		for _, raw := range strings.Split(q.CategoryIds, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				uc.logger.Error("cannot parse category id, dropping it", zap.String("categoryId", raw), zap.Error(err))
				continue
			}
			f.CategoryIDs = append(f.CategoryIDs, id)
		}
	}
	if q.Channels != "" {
		f.Channels = strings.Split(q.Channels, ",")
	}
	if q.StartDate != "" {
		t, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			uc.logger.Error("cannot parse startDate, dropping the filter", zap.String("startDate", q.StartDate), zap.Error(err))
		} else {
			f.StartDate = &t
		}
	}
	if q.EndDate != "" {
		t, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			uc.logger.Error("cannot parse endDate, dropping the filter", zap.String("endDate", q.EndDate), zap.Error(err))
		} else {
			end := t.Add(24*time.Hour - time.Nanosecond)
			f.EndDate = &end
		}
	}
	return f
}

func (uc *baseProductUseCase) ListProducts(ctx context.Context, q *dto.ListQuery) ([]dto.BaseProductDTO, int, error) {
	f := uc.parseFilter(q)

	cacheKey := uc.listCacheKeyFor(f)
	if cached, ok := uc.readListCache(ctx, cacheKey); ok {
		return cached.Items, cached.Count, nil
	}

	products, err := uc.repo.ListProducts(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	count, err := uc.repo.CountProducts(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.BaseProductDTO, 0, len(products))
	for _, p := range products {
		item, err := uc.enrich(ctx, &p, false)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}

	uc.writeListCache(ctx, cacheKey, items, count)
	return items, count, nil
}

type cachedList struct {
	Items []dto.BaseProductDTO `json:"items"`
	Count int                  `json:"count"`
}

func (uc *baseProductUseCase) listCacheKeyFor(f *dto.ProductFilter) string {
	data, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%x", listCacheKey, md5.Sum(data))
}

func (uc *baseProductUseCase) readListCache(ctx context.Context, key string) (*cachedList, bool) {
	if uc.cache == nil || key == "" {
		return nil, false
	}
	val, err := uc.cache.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var cached cachedList
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (uc *baseProductUseCase) writeListCache(ctx context.Context, key string, items []dto.BaseProductDTO, count int) {
	if uc.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(cachedList{Items: items, Count: count})
	if err != nil {
		return
	}
	uc.cache.Client.Set(ctx, key, data, listCacheTTL)
}

func (uc *baseProductUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, listCacheKey+"*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

// enrich attaches variants, aggregates, and the category list to a product.
// withProductCounts additionally resolves live product counts per category,
// which the detail endpoint exposes.
func (uc *baseProductUseCase) enrich(ctx context.Context, p *model.BaseProduct, withProductCounts bool) (*dto.BaseProductDTO, error) {
	variants, err := uc.repo.VariantsByBaseID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.CategoriesByProductID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	quantity := 0
	for _, v := range variants {
		quantity += v.Quantity
	}

	listCategories := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp := dto.CategoryResponse{
			ID:          c.ID,
			Title:       c.Title,
			Slug:        c.Slug,
			Description: c.Description,
			MetaTitle:   c.MetaTitle,
		}
		if withProductCounts {
			count, err := uc.repo.CountProductsByCategory(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			resp.ProductCount = count
		}
		listCategories = append(listCategories, resp)
	}

	return &dto.BaseProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Label:          p.Label,
		Description:    p.Description,
		Attribute1:     p.Attribute1,
		Attribute2:     p.Attribute2,
		Attribute3:     p.Attribute3,
		CreatedAt:      p.CreatedAt,
		VariantNumber:  len(variants),
		Quantity:       quantity,
		Variants:       variants,
		ListCategories: listCategories,
	}, nil
}

func (uc *baseProductUseCase) GetBaseProductByID(ctx context.Context, id int) (*dto.BaseProductDTO, error) {
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	return uc.enrich(ctx, p, true)
}

func (uc *baseProductUseCase) CreateBaseProduct(ctx context.Context, in *dto.CreateBaseProductInput) (*dto.BaseProductDTO, error) {
	if in.Attribute1 != "" && in.Attribute2 != "" && in.Attribute1 == in.Attribute2 {
		return nil, apperr.DuplicateAttribute(in.Attribute1)
	}
	if in.Attribute2 != "" && in.Attribute3 != "" && in.Attribute2 == in.Attribute3 {
		return nil, apperr.DuplicateAttribute(in.Attribute2)
	}
	if (in.Attribute2 != "" && in.Attribute1 == "") || (in.Attribute3 != "" && in.Attribute2 == "") {
		return nil, apperr.Validation("attribute slots must be filled in order")
	}

	now := time.Now()
	p := &model.BaseProduct{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:        in.Name,
		Label:       in.Label,
		Description: in.Description,
		Attribute1:  in.Attribute1,
		Attribute2:  in.Attribute2,
		Attribute3:  in.Attribute3,
	}

	err := uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		if err := tx.InsertProduct(ctx, p); err != nil {
			return err
		}
		if len(in.CategoryIds) > 0 {
			categories, err := tx.CategoriesByIDs(ctx, in.CategoryIds)
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(categories))
			for _, c := range categories {
				ids = append(ids, c.ID)
			}
			if err := tx.ReplaceProductCategories(ctx, p.ID, ids); err != nil {
				return err
			}
		}

		isSetAttribute2 := p.Attribute2 != ""
		isSetAttribute3 := p.Attribute3 != ""

		lastID, err := tx.LastVariantID(ctx)
		if err != nil {
			return err
		}

		for i, vi := range in.Variants {
			ordinal := i + 1
			v := &model.Variant{
				BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
				BaseID:    p.ID,
				Sku:       vi.Sku,
				Barcode:   vi.Barcode,
				Quantity:  vi.Quantity,
				Value1:    vi.Value1,
				Value2:    vi.Value2,
				Value3:    vi.Value3,
			}
			if v.Sku == "" {
				v.Sku = fmt.Sprintf("%s%d%d", model.ReservedSkuPrefix, p.ID, p.ID+100000+lastID+ordinal)
			} else if strings.HasPrefix(v.Sku, model.ReservedSkuPrefix) {
				return apperr.InvalidSku(fmt.Sprintf("sku must not start with %q", model.ReservedSkuPrefix))
			}
			if v.Barcode == "" {
				v.Barcode = v.Sku
			}
			if v.Value1 == "" {
				return apperr.MissingAttributeValue()
			}
			if isSetAttribute2 && v.Value2 == "" {
				return apperr.MissingAttributeValue()
			}
			if isSetAttribute3 && v.Value3 == "" {
				return apperr.MissingAttributeValue()
			}
			if err := tx.InsertVariant(ctx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return uc.GetBaseProductByID(ctx, p.ID)
}

func (uc *baseProductUseCase) UpdateBaseProduct(ctx context.Context, id int, in *dto.UpdateBaseProductInput) (*dto.BaseProductDTO, error) {
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("product name must not be blank")
	}

	err = uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		if len(in.CategoryIds) > 0 {
			categories, err := tx.CategoriesByIDs(ctx, in.CategoryIds)
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(categories))
			for _, c := range categories {
				ids = append(ids, c.ID)
			}
			if err := tx.ReplaceProductCategories(ctx, id, ids); err != nil {
				return err
			}
		}
		return tx.UpdateProductInfo(ctx, id, in.Name, in.Label, in.Description)
	})
	if err != nil {
		return nil, err
	}

	p.Name, p.Label, p.Description = in.Name, in.Label, in.Description
	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return uc.GetBaseProductByID(ctx, id)
}

func (uc *baseProductUseCase) UpdateNameAttribute(ctx context.Context, id int, in *dto.AttributeInput) error {
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product")
	}

	slot := model.SlotIndex(in.KeyAttribute)
	if slot < 0 {
		return apperr.Validation("keyAttribute must be one of attribute1, attribute2, attribute3")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperr.Validation("attribute name must not be blank")
	}

	current := p.AttributeSlots()[slot]
	if current == "" {
		return apperr.Validation(in.KeyAttribute + " is unset")
	}
	if name == current {
		return apperr.DuplicateAttribute(name)
	}

	return uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		return tx.UpdateAttributeName(ctx, id, slot, name)
	})
}

func (uc *baseProductUseCase) CreateAttribute(ctx context.Context, id int, in *dto.AttributeInput) error {
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperr.Validation("attribute name must not be blank")
	}
	if in.Value == "" {
		return apperr.Validation("attribute value must not be blank")
	}

	slots := p.AttributeSlots()
	if slots[0] != "" && slots[1] != "" && slots[2] != "" {
		return apperr.AttributeLimitExceeded()
	}

	var slot int
	switch {
	case slots[1] == "":
		if name == slots[0] {
			return apperr.DuplicateAttribute(name)
		}
		slot = 1
	default:
		if name == slots[0] || name == slots[1] {
			return apperr.DuplicateAttribute(name)
		}
		slot = 2
	}

	return uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		if err := tx.UpdateAttributeName(ctx, id, slot, name); err != nil {
			return err
		}
		return tx.FillVariantValue(ctx, id, slot, in.Value)
	})
}

// DeleteAttributeOfProduct removes one attribute slot and compacts the
// remaining slots leftward, on the product and on every variant.
func (uc *baseProductUseCase) DeleteAttributeOfProduct(ctx context.Context, id int, keyAttribute string) error {
	if strings.TrimSpace(keyAttribute) == "" {
		return apperr.Validation("keyAttribute must not be blank")
	}
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product")
	}
	if p.Attribute2 == "" {
		return apperr.Validation("cannot delete the only attribute of a product")
	}
	slot := model.SlotIndex(keyAttribute)
	if slot < 0 {
		return apperr.Validation("keyAttribute is not recognized")
	}

	return uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		names := p.AttributeSlots().Compact(slot)
		for i := slot; i < model.SlotCount; i++ {
			if err := tx.UpdateAttributeName(ctx, id, i, names[i]); err != nil {
				return err
			}
		}

		variants, err := tx.VariantsByBaseID(ctx, id)
		if err != nil {
			return err
		}
		for _, v := range variants {
			if err := tx.UpdateVariantValues(ctx, v.ID, v.ValueSlots().Compact(slot)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *baseProductUseCase) GetVariantByID(ctx context.Context, id int) (*model.Variant, error) {
	v, err := uc.repo.FindVariantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.IsDeleted {
		return nil, apperr.NotFound("variant")
	}
	return v, nil
}

func (uc *baseProductUseCase) ListVariantsByBaseID(ctx context.Context, baseID int) ([]model.Variant, error) {
	p, err := uc.repo.FindProductByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	return uc.repo.VariantsByBaseID(ctx, baseID)
}

func (uc *baseProductUseCase) CreateVariant(ctx context.Context, baseID int, in *dto.VariantInput) (*model.Variant, error) {
	p, err := uc.repo.FindProductByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	now := time.Now()
	v := &model.Variant{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		BaseID:    baseID,
		Sku:       in.Sku,
		Barcode:   in.Barcode,
		Quantity:  in.Quantity,
		Value1:    in.Value1,
		Value2:    in.Value2,
		Value3:    in.Value3,
	}

	err = uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		lastID, err := tx.LastVariantID(ctx)
		if err != nil {
			return err
		}
		if v.Sku == "" {
			v.Sku = fmt.Sprintf("%s%d%d", model.ReservedSkuPrefix, baseID, baseID+100000+lastID+1)
		} else if strings.HasPrefix(v.Sku, model.ReservedSkuPrefix) {
			return apperr.InvalidSku(fmt.Sprintf("sku must not start with %q", model.ReservedSkuPrefix))
		}
		if v.Barcode == "" {
			v.Barcode = v.Sku
		}
		if v.Value1 == "" {
			return apperr.MissingAttributeValue()
		}
		if p.Attribute2 != "" && v.Value2 == "" {
			return apperr.MissingAttributeValue()
		}
		if p.Attribute3 != "" && v.Value3 == "" {
			return apperr.MissingAttributeValue()
		}
		return tx.InsertVariant(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	return v, nil
}

func (uc *baseProductUseCase) UpdateVariant(ctx context.Context, baseID int, in *dto.UpdateVariantInput) (*model.Variant, error) {
	p, err := uc.repo.FindProductByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	v, err := uc.repo.FindVariantByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.IsDeleted || v.BaseID != baseID {
		return nil, apperr.NotFound("variant")
	}

	if in.Value1 == "" {
		return nil, apperr.MissingAttributeValue()
	}
	if p.Attribute2 != "" && in.Value2 == "" {
		return nil, apperr.MissingAttributeValue()
	}
	if p.Attribute3 != "" && in.Value3 == "" {
		return nil, apperr.MissingAttributeValue()
	}

	v.Quantity = in.Quantity
	v.Value1, v.Value2, v.Value3 = in.Value1, in.Value2, in.Value3
	if in.Barcode != "" {
		v.Barcode = in.Barcode
	}
	v.UpdatedAt = time.Now()

	err = uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		return tx.UpdateVariant(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	return v, nil
}

func (uc *baseProductUseCase) DeleteVariantByID(ctx context.Context, baseID, variantID int) error {
	v, err := uc.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil || v.IsDeleted || v.BaseID != baseID {
		return apperr.NotFound("variant")
	}

	err = uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		return tx.SoftDeleteVariant(ctx, variantID)
	})
	if err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	return nil
}

// DeleteBaseProduct is the one hard-delete path: it removes every variant
// of the product and then the product row itself.
func (uc *baseProductUseCase) DeleteBaseProduct(ctx context.Context, id int) error {
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product")
	}

	err = uc.repo.InTx(ctx, func(tx catalog.Repository) error {
		if err := tx.DeleteVariantsByBaseID(ctx, id); err != nil {
			return err
		}
		return tx.DeleteProductByID(ctx, id)
	})
	if err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), uc.esIndex, strconv.Itoa(id)); err != nil {
				uc.logger.Error("failed to delete product from search index", zap.Int("id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *baseProductUseCase) SearchByKeyword(ctx context.Context, keyword string) ([]dto.BaseProductDTO, error) {
	if uc.es != nil {
		query := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", keyword),
					"fields": []string{"name^3", "label", "description"},
				},
			},
		}
		res, err := uc.es.Search(ctx, uc.esIndex, query)
		if err == nil {
			items := make([]dto.BaseProductDTO, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				var p model.BaseProduct
				if err := json.Unmarshal(hit.Source, &p); err != nil {
					continue
				}
				item, err := uc.enrich(ctx, &p, false)
				if err != nil {
					return nil, err
				}
				items = append(items, *item)
			}
			return items, nil
		}
		uc.logger.Error("search index query failed, falling back to database", zap.Error(err))
	}

	products, err := uc.repo.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BaseProductDTO, 0, len(products))
	for _, p := range products {
		item, err := uc.enrich(ctx, &p, false)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

const productIndexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"label": { "type": "text" },
			"description": { "type": "text" },
			"createdAt": { "type": "date" }
		}
	}
}`

func (uc *baseProductUseCase) syncToElastic(ctx context.Context, p *model.BaseProduct) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, uc.esIndex, productIndexMapping)
	if err := uc.es.Index(ctx, uc.esIndex, strconv.Itoa(p.ID), p); err != nil {
		uc.logger.Error("failed to index product", zap.Int("id", p.ID), zap.Error(err))
	}
}
