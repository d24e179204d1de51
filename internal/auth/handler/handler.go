package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/auth"
	"github.com/projectcnw/sales-backoffice/internal/auth/dto"
	"github.com/projectcnw/sales-backoffice/internal/pkg/httpres"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger *zap.Logger
}

func NewAuthHandler(uc auth.UseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: log}
}

func (h *AuthHandler) MapRoutes(g *gin.RouterGroup) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in dto.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	resp, err := h.uc.Register(c.Request.Context(), &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in dto.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpres.Err(c, apperr.Validation(err.Error()))
		return
	}
	resp, err := h.uc.Login(c.Request.Context(), &in)
	if err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OK(c, resp)
}

// Logout lives under the exempt path, so the bearer token is read here
// instead of relying on the authentication middleware.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		httpres.Err(c, apperr.Unauthorized("missing bearer token"))
		return
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if err := h.uc.Logout(c.Request.Context(), raw); err != nil {
		httpres.Err(c, err)
		return
	}
	httpres.OKMessage(c, "Logged out", nil)
}
