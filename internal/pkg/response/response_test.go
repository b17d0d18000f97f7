package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	UseRequestFieldNames()
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(apperror.Validationf("bad")))
	assert.Equal(t, http.StatusNotFound, StatusFor(apperror.NotFound("missing")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestError_HidesStorageDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/products", nil)

	Error(c, logger.NewNop(), apperror.Storage("list products", errors.New("dial tcp: refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"kind":"storage","message":"internal error"}}`, w.Body.String())
}

func TestError_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/products/9", nil)

	Error(c, logger.NewNop(), apperror.NotFound("product not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"kind":"not_found","message":"product not found"}}`, w.Body.String())
}

type sampleBody struct {
	Name  string `json:"name" binding:"required,max=5"`
	Order string `form:"orderBy" binding:"omitempty,oneof=1 2"`
}

func TestBindError_FieldMessages(t *testing.T) {
	var body sampleBody
	body.Name = "too long name"
	body.Order = "3"

	verr := binding.Validator.ValidateStruct(&body)
	require.Error(t, verr)

	err := BindError(verr)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "name must be at most 5 characters")
	assert.Contains(t, err.Error(), "orderBy must be one of [1 2]")
}

func TestBindError_NonValidatorError(t *testing.T) {
	var target map[string]any
	jsonErr := json.Unmarshal([]byte("{"), &target)
	require.Error(t, jsonErr)

	err := BindError(jsonErr)
	assert.True(t, apperror.IsValidation(err))
	assert.ErrorIs(t, err, jsonErr)
}
