package utils

import (
	apperrors "datacenter-inventory/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every successful API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the envelope of every failed API response
type ErrorBody struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{
		Success: false,
		Error:   message,
	})
}

// AppErrorResponse writes an error carrying the code and details of appErr
func AppErrorResponse(c *gin.Context, status int, appErr *apperrors.AppError) {
	c.JSON(status, ErrorBody{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}
