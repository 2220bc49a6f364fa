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

type MockLayoutStorage struct {
	mock.Mock
}

func (m *MockLayoutStorage) CreateLayout(ctx context.Context, res storage.NewLayout) (string, error) {
	args := m.Called(ctx, res)
	return args.String(0), args.Error(1)
}

func (m *MockLayoutStorage) GetLayout(ctx context.Context, id string) (*storage.Layout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Layout), args.Error(1)
}

func (m *MockLayoutStorage) UpdateLayoutPages(ctx context.Context, id string, pages []layout.PageRecord) error {
	args := m.Called(ctx, id, pages)
	return args.Error(0)
}

func TestCreateLayout_Success(t *testing.T) {
	mockStorage := new(MockLayoutStorage)

	mockStorage.On("CreateLayout", mock.Anything, mock.MatchedBy(func(res storage.NewLayout) bool {
		return res.AccountID == "acct-1" && res.IssueName == "September" && len(res.Pages) == 0
	})).Return("a1", nil)

	logger := slog.Default()
	handler := CreateLayout(logger, mockStorage)

	body := `{"account_id":"acct-1","publication_name":"Monthly Review","issue_name":"September","publication_date":"2026-09-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/layouts", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"a1"`)

	mockStorage.AssertExpectations(t)
}

func TestCreateLayout_MissingAccountID(t *testing.T) {
	mockStorage := new(MockLayoutStorage)
	logger := slog.Default()
	handler := CreateLayout(logger, mockStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/layouts", strings.NewReader(`{"issue_name":"September"}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing required field 'account_id'")

	mockStorage.AssertNotCalled(t, "CreateLayout")
}

func saveRouter(h http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/layouts/{layoutID}", h)
	return r
}

// The save round trip stores canonical records: fixed names re-asserted,
// page numbers dense, malformed pages coerced with warnings.
func TestSaveLayoutContent_Canonicalizes(t *testing.T) {
	mockStorage := new(MockLayoutStorage)

	var stored []layout.PageRecord
	mockStorage.On("UpdateLayoutPages", mock.Anything, "a1", mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]layout.PageRecord)
		}).Return(nil)

	logger := slog.Default()
	router := saveRouter(SaveLayoutContent(logger, mockStorage))

	body := `{"layout":[
		{"id":"page-1","name":"Custom","section":"Custom","page_number":9,"type":"placeholder","form_break":false,"fractional_units":[],"mixed_page_template_id":null},
		{"id":"page-2","name":"???","section":"FOB","page_number":2,"type":"banner","form_break":false,"fractional_units":[],"mixed_page_template_id":null}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/layouts/a1", strings.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseSave
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Equal(t, "saved", resp.Status)
	assert.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "unknown type")

	assert.Len(t, stored, 2)
	assert.Equal(t, "Open", stored[0].Name)
	assert.Equal(t, 1, stored[0].PageNumber)
	assert.Equal(t, "unknown", stored[1].Type)
	assert.Equal(t, 2, stored[1].PageNumber)

	mockStorage.AssertExpectations(t)
}

func TestSaveLayoutContent_LayoutNotFound(t *testing.T) {
	mockStorage := new(MockLayoutStorage)

	mockStorage.On("UpdateLayoutPages", mock.Anything, "missing", mock.Anything).
		Return(storage.ErrLayoutNotFound)

	logger := slog.Default()
	router := saveRouter(SaveLayoutContent(logger, mockStorage))

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/missing", strings.NewReader(`{"layout":[]}`))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Layout not found")
}

func TestSaveLayoutContent_InvalidBody(t *testing.T) {
	mockStorage := new(MockLayoutStorage)
	logger := slog.Default()
	router := saveRouter(SaveLayoutContent(logger, mockStorage))

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/a1", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStorage.AssertNotCalled(t, "UpdateLayoutPages")
}

func TestCloneLayout_Success(t *testing.T) {
	mockStorage := new(MockLayoutStorage)

	src := &storage.Layout{
		ID:              "a1",
		AccountID:       "acct-1",
		PublicationName: "Monthly Review",
		IssueName:       "September",
		Pages: []layout.PageRecord{
			{ID: "page-1", Name: "Letters", Section: "FOB", PageNumber: 1, Type: "edit", FractionalUnits: []layout.UnitRecord{}},
		},
	}

	mockStorage.On("GetLayout", mock.Anything, "a1").Return(src, nil)
	mockStorage.On("CreateLayout", mock.Anything, mock.MatchedBy(func(res storage.NewLayout) bool {
		return res.IssueName == "September (Clone)" && res.AccountID == "acct-1" && len(res.Pages) == 1
	})).Return("a2", nil)

	logger := slog.Default()
	r := chi.NewRouter()
	r.Post("/api/layouts/{layoutID}/clone", CloneLayout(logger, mockStorage))

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/a1/clone", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"a2"`)

	mockStorage.AssertExpectations(t)
}

func TestCloneLayout_NotFound(t *testing.T) {
	mockStorage := new(MockLayoutStorage)

	mockStorage.On("GetLayout", mock.Anything, "missing").Return(nil, storage.ErrLayoutNotFound)

	logger := slog.Default()
	r := chi.NewRouter()
	r.Post("/api/layouts/{layoutID}/clone", CloneLayout(logger, mockStorage))

	req := httptest.NewRequest(http.MethodPost, "/api/layouts/missing/clone", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	mockStorage.AssertNotCalled(t, "CreateLayout")
}
