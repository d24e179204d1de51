package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/channel"
	"github.com/projectcnw/sales-backoffice/internal/channel/dto"
	"github.com/projectcnw/sales-backoffice/internal/pkg/httpres"
)

type ChannelHandler struct {
	uc     channel.UseCase
	logger *zap.Logger
}

func NewChannelHandler(uc channel.UseCase, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{uc: uc, logger: logger}
}

func (h *ChannelHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.POST("/base-products/publish", h.Publish)
	rg.POST("/base-products/publish-all", h.PublishAll)
	rg.PUT("/base-products/:id/republish", h.Republish)
	rg.GET("/base-products/:id/sales-channels", h.ProductChannels)
}

func (h *ChannelHandler) Publish(c *gin.Context) {
	var in dto.PublishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	channels, err := h.uc.PublishProduct(c.Request.Context(), &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, channels)
}

func (h *ChannelHandler) PublishAll(c *gin.Context) {
	count, err := h.uc.PublishAll(c.Request.Context())
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, gin.H{"publishedCount": count})
}

func (h *ChannelHandler) Republish(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	var in dto.RepublishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	channels, err := h.uc.Republish(c.Request.Context(), id, &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, channels)
}

func (h *ChannelHandler) ProductChannels(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	channels, err := h.uc.ProductChannels(c.Request.Context(), id)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, channels)
}

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}
