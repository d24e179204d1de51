package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/pkg/httpres"
	"github.com/projectcnw/sales-backoffice/internal/promotion"
	"github.com/projectcnw/sales-backoffice/internal/promotion/dto"
)

type PromotionHandler struct {
	uc     promotion.UseCase
	logger *zap.Logger
}

func NewPromotionHandler(uc promotion.UseCase, logger *zap.Logger) *PromotionHandler {
	return &PromotionHandler{uc: uc, logger: logger}
}

func (h *PromotionHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.GET("/promotions", h.List)
	rg.POST("/promotions", h.Create)
	rg.GET("/promotions/:id", h.Get)
	rg.PUT("/promotions/:id", h.Update)
	rg.DELETE("/promotions/:id", h.Delete)
}

func (h *PromotionHandler) List(c *gin.Context) {
	promotions, err := h.uc.ListPromotions(c.Request.Context())
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, promotions)
}

func (h *PromotionHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	p, err := h.uc.GetPromotion(c.Request.Context(), id)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, p)
}

func (h *PromotionHandler) Create(c *gin.Context) {
	var in dto.CreatePromotionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	p, err := h.uc.CreatePromotion(c.Request.Context(), &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, p)
}

func (h *PromotionHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	var in dto.UpdatePromotionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	p, err := h.uc.UpdatePromotion(c.Request.Context(), id, &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, p)
}

func (h *PromotionHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	if err := h.uc.DeletePromotion(c.Request.Context(), id); err != nil {
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
