package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	created *dto.CreateCategoryInput
	list    []model.Category
	seeded  []model.Category
	err     error
}

func (s *stubUseCase) CreateCategory(_ context.Context, in *dto.CreateCategoryInput) (*model.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = in
	return &model.Category{BaseModel: model.BaseModel{ID: 9}, Name: in.Name, ImageLink: in.ImageLink}, nil
}

func (s *stubUseCase) GetCategory(_ context.Context, id int64) (*model.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Category{BaseModel: model.BaseModel{ID: id}, Name: "Living"}, nil
}

func (s *stubUseCase) ListCategories(context.Context) ([]model.Category, error) {
	return s.list, s.err
}

func (s *stubUseCase) SeedCategories(context.Context) ([]model.Category, error) {
	return s.seeded, s.err
}

func newRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	response.UseRequestFieldNames()
	r := gin.New()
	NewCategoryHandler(uc, logger.NewNop()).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCategory(t *testing.T) {
	uc := &stubUseCase{}
	w := do(newRouter(uc), http.MethodPost, "/categories", `{"name":"Office","image_link":"https://img/o.png"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, uc.created)
	assert.Equal(t, "Office", uc.created.Name)

	var got model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(9), got.ID)
}

func TestCreateCategory_LengthLimits(t *testing.T) {
	uc := &stubUseCase{}
	body := `{"name":"` + strings.Repeat("x", 51) + `","image_link":"https://img/o.png"}`
	w := do(newRouter(uc), http.MethodPost, "/categories", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name must be at most 50 characters")
	assert.Nil(t, uc.created)
}

func TestCreateCategory_MalformedJSON(t *testing.T) {
	w := do(newRouter(&stubUseCase{}), http.MethodPost, "/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCategories(t *testing.T) {
	uc := &stubUseCase{list: []model.Category{{Name: "Dining"}, {Name: "Living"}}}
	w := do(newRouter(uc), http.MethodGet, "/categories", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestSeedCategories_AlreadySeededIsEmptyList(t *testing.T) {
	uc := &stubUseCase{seeded: []model.Category{}}
	w := do(newRouter(uc), http.MethodPost, "/categories/seed", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetCategory(t *testing.T) {
	w := do(newRouter(&stubUseCase{}), http.MethodGet, "/categories/3", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(newRouter(&stubUseCase{}), http.MethodGet, "/categories/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missing := &stubUseCase{err: apperror.NotFound("category not found")}
	for _, id := range []string{"3", "0", "-1"} {
		w = do(newRouter(missing), http.MethodGet, "/categories/"+id, "")
		assert.Equal(t, http.StatusNotFound, w.Code, "id %s", id)
	}
}

func TestListCategories_StorageError(t *testing.T) {
	uc := &stubUseCase{err: apperror.Storage("list categories", errors.New("db down"))}
	w := do(newRouter(uc), http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}
