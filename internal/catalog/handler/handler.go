package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/catalog"
	"github.com/projectcnw/sales-backoffice/internal/catalog/dto"
	"github.com/projectcnw/sales-backoffice/internal/pkg/httpres"
)

type BaseProductHandler struct {
	uc     catalog.UseCase
	logger *zap.Logger
}

func NewBaseProductHandler(uc catalog.UseCase, log *zap.Logger) *BaseProductHandler {
	return &BaseProductHandler{uc: uc, logger: log}
}

func (h *BaseProductHandler) MapRoutes(g *gin.RouterGroup) {
	g.GET("/base-products", h.ListBaseProducts)
	g.GET("/base-products/search", h.SearchBaseProducts)
	g.GET("/base-products/:id", h.GetBaseProduct)
	g.POST("/base-products", h.CreateBaseProduct)
	g.PUT("/base-products/:id", h.UpdateBaseProduct)
	g.DELETE("/base-products/:id", h.DeleteBaseProduct)

	g.PUT("/base-products/:id/attributes", h.UpdateNameAttribute)
	g.POST("/base-products/:id/attributes", h.CreateAttribute)
	g.DELETE("/base-products/:id/attributes", h.DeleteAttribute)

	g.GET("/base-products/:id/variants", h.ListVariants)
	g.POST("/base-products/:id/variants", h.CreateVariant)
	g.PUT("/base-products/:id/variants", h.UpdateVariant)
	g.GET("/base-products/:id/variants/:variantId", h.GetVariant)
	g.DELETE("/base-products/:id/variants/:variantId", h.DeleteVariant)
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		httpres.Err(c, apperr.Validation("invalid "+name))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func (h *BaseProductHandler) ListBaseProducts(c *gin.Context) {
	q := &dto.ListQuery{
		Page:        queryInt(c, "page", 0),
		Size:        queryInt(c, "size", 10),
		Query:       c.Query("query"),
		CategoryIds: c.Query("categoryIds"),
		StartDate:   c.Query("startDate"),
		EndDate:     c.Query("endDate"),
		Channels:    c.Query("channel"),
	}

	items, total, err := h.uc.ListProducts(c.Request.Context(), q)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.Paged(c, q.Page, q.Size, total, items)
}

func (h *BaseProductHandler) SearchBaseProducts(c *gin.Context) {
	items, err := h.uc.SearchByKeyword(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, items)
}

func (h *BaseProductHandler) GetBaseProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.uc.GetBaseProductByID(c.Request.Context(), id)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, product)
}

func (h *BaseProductHandler) CreateBaseProduct(c *gin.Context) {
	var in dto.CreateBaseProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	product, err := h.uc.CreateBaseProduct(c.Request.Context(), &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, product)
}

func (h *BaseProductHandler) UpdateBaseProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateBaseProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	product, err := h.uc.UpdateBaseProduct(c.Request.Context(), id, &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, product)
}

func (h *BaseProductHandler) DeleteBaseProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteBaseProduct(c.Request.Context(), id); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OKMessage(c, "Deleted", nil)
}

func (h *BaseProductHandler) UpdateNameAttribute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.AttributeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	if err := h.uc.UpdateNameAttribute(c.Request.Context(), id, &in); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, nil)
}

func (h *BaseProductHandler) CreateAttribute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.AttributeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	if err := h.uc.CreateAttribute(c.Request.Context(), id, &in); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OKMessage(c, "Created Attribute", nil)
}

func (h *BaseProductHandler) DeleteAttribute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.AttributeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	if err := h.uc.DeleteAttributeOfProduct(c.Request.Context(), id, in.KeyAttribute); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OKMessage(c, "Deleted", nil)
}

func (h *BaseProductHandler) ListVariants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	variants, err := h.uc.ListVariantsByBaseID(c.Request.Context(), id)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, variants)
}

func (h *BaseProductHandler) CreateVariant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.VariantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	variant, err := h.uc.CreateVariant(c.Request.Context(), id, &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, variant)
}

func (h *BaseProductHandler) UpdateVariant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateVariantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	variant, err := h.uc.UpdateVariant(c.Request.Context(), id, &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, variant)
}

func (h *BaseProductHandler) GetVariant(c *gin.Context) {
	if _, ok := pathID(c, "id"); !ok {
		return
	}
	variantID, ok := pathID(c, "variantId")
	if !ok {
		return
	}
	variant, err := h.uc.GetVariantByID(c.Request.Context(), variantID)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, variant)
}

func (h *BaseProductHandler) DeleteVariant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	variantID, ok := pathID(c, "variantId")
	if !ok {
		return
	}
	if err := h.uc.DeleteVariantByID(c.Request.Context(), id, variantID); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OKMessage(c, "Deleted", nil)
}
