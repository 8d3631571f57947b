package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "datacenter-inventory/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateToken("alice", RoleAdmin, "secret", 2)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	expired, _, err := GenerateToken("bob", RoleUser, "secret", -1)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateStruct(t *testing.T) {
	type login struct {
		Username string `validate:"required"`
		Role     string `validate:"omitempty,role"`
	}

	assert.NoError(t, ValidateStruct(login{Username: "a", Role: RoleUser}))
	assert.NoError(t, ValidateStruct(login{Username: "a"}))

	err := ValidateStruct(login{Role: "root"})
	require.Error(t, err)
	assert.Equal(t, map[string]interface{}{"username": "required", "role": "role"}, ValidationDetails(err))
	assert.Nil(t, ValidationDetails(assert.AnError))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;rack&lt;/b&gt;", SanitizeString("  <b>rack</b> "))
	assert.Equal(t, "rack-1", SanitizeIdentifier(" <i>rack-1</i>\x00"))
	assert.Equal(t, "web server", SanitizeQuery("  Web SERVER "))
}

func TestResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SuccessResponse(c, http.StatusOK, "ok", map[string]int{"n": 1})

	var ok map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.Equal(t, true, ok["success"])
	assert.Equal(t, "ok", ok["message"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	appErr := apperrors.NewAppError(apperrors.CodeSlotConflict, "Slot is occupied", nil).WithDetail("position", 5)
	AppErrorResponse(c, http.StatusConflict, appErr)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, apperrors.CodeSlotConflict, body.Code)
	assert.Equal(t, float64(5), body.Details["position"])
	assert.Equal(t, http.StatusConflict, w.Code)
}
