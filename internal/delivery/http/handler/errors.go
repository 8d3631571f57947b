package handler

import (
	"errors"
	"net/http"

	"datacenter-inventory/internal/logger"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPStatus maps an error code to the status returned to clients
func HTTPStatus(code string) int {
	switch code {
	case appErrors.CodeValidation, appErrors.CodeInvalidSize, appErrors.CodeOutOfBounds:
		return http.StatusBadRequest
	case appErrors.CodeDeviceNotFound, appErrors.CodeRackNotFound, appErrors.CodeNotFound:
		return http.StatusNotFound
	case appErrors.CodeSlotConflict, appErrors.CodeDeviceAlreadyPlaced, appErrors.CodeVersionConflict,
		appErrors.CodeRackAlreadyExists:
		return http.StatusConflict
	case appErrors.CodeDeviceDecommissioned, appErrors.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case appErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErrors.CodeForbidden:
		return http.StatusForbidden
	case appErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err using its code. Errors without a code are logged
// and reported as internal errors.
func respondError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) {
		appErr = appErrors.NewAppError(appErrors.CodeInternal, "Internal error", err)
	}

	status := HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	utils.AppErrorResponse(c, status, appErr)
}

func bindError(c *gin.Context, message string, err error) {
	respondError(c, appErrors.NewAppError(appErrors.CodeValidation, message, err))
}
