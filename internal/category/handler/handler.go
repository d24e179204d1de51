package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/category"
	"github.com/projectcnw/sales-backoffice/internal/category/dto"
	"github.com/projectcnw/sales-backoffice/internal/pkg/httpres"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

func (h *CategoryHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.GET("/categories/:id", h.Get)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	cat, err := h.uc.CreateCategory(c.Request.Context(), &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	var in dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	cat, err := h.uc.UpdateCategory(c.Request.Context(), id, &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	if err := h.uc.DeleteCategory(c.Request.Context(), id); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OKMessage(c, "Deleted", nil)
}

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}
