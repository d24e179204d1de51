package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/catalog/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

// fakeUseCase serves a fixed product list and records the query it received.
type fakeUseCase struct {
	items     []dto.BaseProductDTO
	total     int
	lastQuery *dto.ListQuery
}

func (f *fakeUseCase) ListProducts(ctx context.Context, q *dto.ListQuery) ([]dto.BaseProductDTO, int, error) {
	f.lastQuery = q
	return f.items, f.total, nil
}

func (f *fakeUseCase) GetBaseProductByID(ctx context.Context, id int) (*dto.BaseProductDTO, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, apperr.NotFound("product")
}

func (f *fakeUseCase) CreateBaseProduct(ctx context.Context, in *dto.CreateBaseProductInput) (*dto.BaseProductDTO, error) {
	return &dto.BaseProductDTO{ID: 1, Name: in.Name}, nil
}

func (f *fakeUseCase) UpdateBaseProduct(ctx context.Context, id int, in *dto.UpdateBaseProductInput) (*dto.BaseProductDTO, error) {
	return nil, apperr.NotFound("product")
}

func (f *fakeUseCase) DeleteBaseProduct(ctx context.Context, id int) error { return nil }

func (f *fakeUseCase) SearchByKeyword(ctx context.Context, keyword string) ([]dto.BaseProductDTO, error) {
	return f.items, nil
}

func (f *fakeUseCase) UpdateNameAttribute(ctx context.Context, id int, in *dto.AttributeInput) error {
	return nil
}

func (f *fakeUseCase) CreateAttribute(ctx context.Context, id int, in *dto.AttributeInput) error {
	return nil
}

func (f *fakeUseCase) DeleteAttributeOfProduct(ctx context.Context, id int, keyAttribute string) error {
	return nil
}

func (f *fakeUseCase) GetVariantByID(ctx context.Context, id int) (*model.Variant, error) {
	return nil, apperr.NotFound("variant")
}

func (f *fakeUseCase) ListVariantsByBaseID(ctx context.Context, baseID int) ([]model.Variant, error) {
	return nil, nil
}

func (f *fakeUseCase) CreateVariant(ctx context.Context, baseID int, in *dto.VariantInput) (*model.Variant, error) {
	return &model.Variant{BaseID: baseID, Sku: in.Sku}, nil
}

func (f *fakeUseCase) UpdateVariant(ctx context.Context, baseID int, in *dto.UpdateVariantInput) (*model.Variant, error) {
	return nil, apperr.NotFound("variant")
}

func (f *fakeUseCase) DeleteVariantByID(ctx context.Context, baseID, variantID int) error {
	return nil
}

func newTestRouter(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBaseProductHandler(uc, zap.NewNop())
	h.MapRoutes(r.Group("/admin"))
	return r
}

func TestListBaseProductsPagedEnvelope(t *testing.T) {
	uc := &fakeUseCase{
		items: []dto.BaseProductDTO{{ID: 1, Name: "Shirt"}},
		total: 12,
	}
	r := newTestRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/base-products?page=2&size=5&channel=online-store", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		ResponseCode int                  `json:"responseCode"`
		Message      string               `json:"message"`
		Page         int                  `json:"page"`
		PerPage      int                  `json:"perPage"`
		TotalItems   int                  `json:"totalItems"`
		TotalPages   int                  `json:"totalPages"`
		Data         []dto.BaseProductDTO `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body.ResponseCode != 200 || body.Message != "Success" {
		t.Errorf("envelope = (%d, %q), want (200, Success)", body.ResponseCode, body.Message)
	}
	if body.Page != 2 || body.PerPage != 5 || body.TotalItems != 12 || body.TotalPages != 3 {
		t.Errorf("paging = (%d, %d, %d, %d), want (2, 5, 12, 3)",
			body.Page, body.PerPage, body.TotalItems, body.TotalPages)
	}
	if uc.lastQuery.Channels != "online-store" {
		t.Errorf("channel query = %q, want online-store", uc.lastQuery.Channels)
	}
}

func TestListBaseProductsDefaults(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/base-products", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if uc.lastQuery.Page != 0 || uc.lastQuery.Size != 10 {
		t.Errorf("defaults = (%d, %d), want page 0 size 10", uc.lastQuery.Page, uc.lastQuery.Size)
	}
}

func TestGetBaseProductNotFound(t *testing.T) {
	r := newTestRouter(&fakeUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/base-products/99", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["responseCode"] != float64(404) || body["message"] != "product not found" {
		t.Errorf("body = %v, want 404 envelope", body)
	}
}

func TestGetBaseProductInvalidID(t *testing.T) {
	r := newTestRouter(&fakeUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/base-products/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateBaseProductRequiresName(t *testing.T) {
	r := newTestRouter(&fakeUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/base-products", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for empty body", w.Code)
	}
}
