package httpres

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
)

// ResponseObject is the envelope every endpoint answers with.
type ResponseObject struct {
	ResponseCode int         `json:"responseCode"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data"`
}

// PagedResponseObject wraps list payloads with paging metadata.
type PagedResponseObject struct {
	ResponseCode int         `json:"responseCode"`
	Message      string      `json:"message"`
	Page         int         `json:"page"`
	PerPage      int         `json:"perPage"`
	TotalItems   int         `json:"totalItems"`
	TotalPages   int         `json:"totalPages"`
	Data         interface{} `json:"data"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ResponseObject{
		ResponseCode: http.StatusOK,
		Message:      "Success",
		Data:         data,
	})
}

func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseObject{
		ResponseCode: http.StatusOK,
		Message:      message,
		Data:         data,
	})
}

func Paged(c *gin.Context, page, perPage, totalItems int, data interface{}) {
	totalPages := 0
	if perPage > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}
	c.JSON(http.StatusOK, PagedResponseObject{
		ResponseCode: http.StatusOK,
		Message:      "Success",
		Page:         page,
		PerPage:      perPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		Data:         data,
	})
}

func Err(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, ResponseObject{
		ResponseCode: status,
		Message:      message,
	})
}
