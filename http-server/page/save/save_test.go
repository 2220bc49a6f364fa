package save

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type MockPageStorage struct {
	mock.Mock
}

func (m *MockPageStorage) GetLayout(ctx context.Context, id string) (*storage.Layout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Layout), args.Error(1)
}

func (m *MockPageStorage) UpdateLayoutPages(ctx context.Context, id string, pages []layout.PageRecord) error {
	args := m.Called(ctx, id, pages)
	return args.Error(0)
}

func addPageRouter(s *MockPageStorage) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/layouts/{layoutID}/pages", AddPage(slog.Default(), s))
	return r
}

func TestAddPage_DefaultsToPlaceholder(t *testing.T) {
	mockStorage := new(MockPageStorage)
	mockStorage.On("GetLayout", mock.Anything, "a1").Return(&storage.Layout{
		ID: "a1",
		Pages: []layout.PageRecord{
			{ID: "page-1", Name: "Letters", Section: "FOB", PageNumber: 1, Type: "edit", FractionalUnits: []layout.UnitRecord{}},
		},
	}, nil)
	mockStorage.On("UpdateLayoutPages", mock.Anything, "a1", mock.Anything).Return(nil)

	router := addPageRouter(mockStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/a1/pages", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp ResponsePage
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Equal(t, "created", resp.Status)
	assert.Equal(t, "placeholder", resp.Page.Type)
	assert.Equal(t, "Open", resp.Page.Name)
	assert.Equal(t, 2, resp.Page.PageNumber)
	assert.NotEmpty(t, resp.Page.ID)
	assert.Len(t, resp.Layout, 2)

	mockStorage.AssertExpectations(t)
}

func TestAddPage_WithInitialFields(t *testing.T) {
	mockStorage := new(MockPageStorage)
	mockStorage.On("GetLayout", mock.Anything, "a1").Return(&storage.Layout{ID: "a1"}, nil)
	mockStorage.On("UpdateLayoutPages", mock.Anything, "a1", mock.Anything).Return(nil)

	router := addPageRouter(mockStorage)

	body := `{"type":"edit","name":"Reviews","section":"BOB"}`
	req := httptest.NewRequest(http.MethodPost, "/api/layouts/a1/pages", strings.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp ResponsePage
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Equal(t, "edit", resp.Page.Type)
	assert.Equal(t, "Reviews", resp.Page.Name)
	assert.Equal(t, "BOB", resp.Page.Section)
}

func TestAddPage_InvalidType(t *testing.T) {
	mockStorage := new(MockPageStorage)
	mockStorage.On("GetLayout", mock.Anything, "a1").Return(&storage.Layout{ID: "a1"}, nil)

	router := addPageRouter(mockStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/a1/pages", strings.NewReader(`{"type":"banner"}`))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStorage.AssertNotCalled(t, "UpdateLayoutPages")
}

func TestAddPage_LayoutNotFound(t *testing.T) {
	mockStorage := new(MockPageStorage)
	mockStorage.On("GetLayout", mock.Anything, "missing").Return(nil, storage.ErrLayoutNotFound)

	router := addPageRouter(mockStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/missing/pages", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
