package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[string]int{
		appErrors.CodeValidation:           http.StatusBadRequest,
		appErrors.CodeInvalidSize:          http.StatusBadRequest,
		appErrors.CodeOutOfBounds:          http.StatusBadRequest,
		appErrors.CodeDeviceNotFound:       http.StatusNotFound,
		appErrors.CodeRackNotFound:         http.StatusNotFound,
		appErrors.CodeNotFound:             http.StatusNotFound,
		appErrors.CodeSlotConflict:         http.StatusConflict,
		appErrors.CodeDeviceAlreadyPlaced:  http.StatusConflict,
		appErrors.CodeVersionConflict:      http.StatusConflict,
		appErrors.CodeRackAlreadyExists:    http.StatusConflict,
		appErrors.CodeDeviceDecommissioned: http.StatusUnprocessableEntity,
		appErrors.CodeInvalidTransition:    http.StatusUnprocessableEntity,
		appErrors.CodeUnauthorized:         http.StatusUnauthorized,
		appErrors.CodeForbidden:            http.StatusForbidden,
		appErrors.CodeRateLimited:          http.StatusTooManyRequests,
		appErrors.CodeInternal:             http.StatusInternalServerError,
		"SOMETHING_NEW":                    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), code)
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("app error keeps code and details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, appErrors.NewAppError(appErrors.CodeOutOfBounds, "Placement exceeds rack bounds", nil).
			WithDetail("total_units", 42))

		var body utils.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Placement exceeds rack bounds", body.Error)
		assert.Equal(t, float64(42), body.Details["total_units"])
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, errors.New("boom"))

		var body utils.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, appErrors.CodeInternal, body.Code)
		assert.NotContains(t, body.Error, "boom")
		assert.Len(t, c.Errors, 1)
	})
}
