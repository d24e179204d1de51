package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/model"
	"github.com/projectcnw/sales-backoffice/internal/promotion"
	"github.com/projectcnw/sales-backoffice/internal/promotion/dto"
)

type fakeRepo struct {
	promotions map[int]model.Promotion
	products   map[int][]int
	categories map[int][]int
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		promotions: map[int]model.Promotion{},
		products:   map[int][]int{},
		categories: map[int][]int{},
	}
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(promotion.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]model.Promotion, error) {
	out := []model.Promotion{}
	for _, p := range f.promotions {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int) (*model.Promotion, error) {
	p, ok := f.promotions[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeRepo) Insert(ctx context.Context, p *model.Promotion) error {
	f.nextID++
	p.ID = f.nextID
	f.promotions[p.ID] = *p
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *model.Promotion) error {
	f.promotions[p.ID] = *p
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	delete(f.promotions, id)
	delete(f.products, id)
	delete(f.categories, id)
	return nil
}

func (f *fakeRepo) ProductIDs(ctx context.Context, promotionID int) ([]int, error) {
	return f.products[promotionID], nil
}

func (f *fakeRepo) CategoryIDs(ctx context.Context, promotionID int) ([]int, error) {
	return f.categories[promotionID], nil
}

func (f *fakeRepo) ReplaceProducts(ctx context.Context, promotionID int, productIDs []int) error {
	f.products[promotionID] = productIDs
	return nil
}

func (f *fakeRepo) ReplaceCategories(ctx context.Context, promotionID int, categoryIDs []int) error {
	f.categories[promotionID] = categoryIDs
	return nil
}

func validInput() *dto.CreatePromotionInput {
	return &dto.CreatePromotionInput{
		Title:       "Summer Sale",
		Value:       20,
		ValueType:   "PERCENT",
		PolicyApply: "CATEGORY",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-30",
		CategoryIds: []int{3, 4},
	}
}

func TestCreatePromotion(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPromotionUseCase(repo, zap.NewNop())

	got, err := uc.CreatePromotion(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreatePromotion: %v", err)
	}
	if got.ID == 0 {
		t.Error("promotion id must be assigned")
	}
	if len(got.CategoryIds) != 2 {
		t.Errorf("category ids = %v, want [3 4]", got.CategoryIds)
	}
	if got.EndDate.Before(got.StartDate) {
		t.Error("end date must not be before start date")
	}
	// The end date covers the whole final day.
	if got.EndDate.Day() != 30 || got.EndDate.Hour() != 23 {
		t.Errorf("end date = %v, want end of June 30", got.EndDate)
	}
}

func TestCreatePromotionEndBeforeStart(t *testing.T) {
	uc := NewPromotionUseCase(newFakeRepo(), zap.NewNop())

	in := validInput()
	in.StartDate, in.EndDate = "2026-06-30", "2026-06-01"
	_, err := uc.CreatePromotion(context.Background(), in)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestCreatePromotionSingleDay(t *testing.T) {
	uc := NewPromotionUseCase(newFakeRepo(), zap.NewNop())

	in := validInput()
	in.StartDate, in.EndDate = "2026-06-01", "2026-06-01"
	if _, err := uc.CreatePromotion(context.Background(), in); err != nil {
		t.Fatalf("single-day promotion must be allowed: %v", err)
	}
}

func TestCreatePromotionPercentOverLimit(t *testing.T) {
	uc := NewPromotionUseCase(newFakeRepo(), zap.NewNop())

	in := validInput()
	in.Value = 120
	_, err := uc.CreatePromotion(context.Background(), in)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want Validation for percent over 100", err)
	}

	in.ValueType = "FIXED"
	if _, err := uc.CreatePromotion(context.Background(), in); err != nil {
		t.Fatalf("fixed value over 100 must be allowed: %v", err)
	}
}

func TestUpdatePromotionReplacesLinks(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPromotionUseCase(repo, zap.NewNop())

	created, err := uc.CreatePromotion(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreatePromotion: %v", err)
	}

	got, err := uc.UpdatePromotion(context.Background(), created.ID, &dto.UpdatePromotionInput{
		Title:       "Summer Sale v2",
		Value:       15,
		ValueType:   "PERCENT",
		PolicyApply: "PRODUCT",
		StartDate:   "2026-06-01",
		EndDate:     "2026-07-15",
		ProductIds:  []int{9},
	})
	if err != nil {
		t.Fatalf("UpdatePromotion: %v", err)
	}
	if len(got.ProductIds) != 1 || got.ProductIds[0] != 9 {
		t.Errorf("product ids = %v, want [9]", got.ProductIds)
	}
	if len(got.CategoryIds) != 0 {
		t.Errorf("category ids = %v, want cleared", got.CategoryIds)
	}
}

func TestDeletePromotionNotFound(t *testing.T) {
	uc := NewPromotionUseCase(newFakeRepo(), zap.NewNop())

	if err := uc.DeletePromotion(context.Background(), 77); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
