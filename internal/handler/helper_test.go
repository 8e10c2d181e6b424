package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/password"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type repos struct {
	authors   repository.AuthorRepository
	books     repository.BookRepository
	customers repository.CustomerRepository
	records   repository.BorrowingRecordRepository
}

func gormRepos(db *gorm.DB) repos {
	return repos{
		authors:   repository.NewGormAuthorRepository(db),
		books:     repository.NewGormBookRepository(db),
		customers: repository.NewGormCustomerRepository(db),
		records:   repository.NewGormBorrowingRecordRepository(db),
	}
}

func setupTestRouterWithRepos(r repos) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := NewEngine(nil)

	RegisterLibraryRoutes(e, Services{
		Authors:    service.NewAuthorService(r.authors, nil),
		Books:      service.NewBookService(r.books, r.authors, nil),
		Customers:  service.NewCustomerService(r.customers, password.NewBcryptHasher(bcrypt.MinCost), nil),
		Borrowings: service.NewBorrowingService(r.records, r.books, r.customers, nil),
	})

	return e
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupTestRouterWithRepos(gormRepos(db))
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, BasePath+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response: %v, body=%s", err, w.Body.String())
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) validation.ErrorResponse {
	t.Helper()

	if w.Code != status {
		t.Fatalf("expected status %d, got %d, body=%s", status, w.Code, w.Body.String())
	}
	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected code %q, got %q (message %q)", code, resp.Code, resp.Message)
	}
	return resp
}

func hasFieldError(resp validation.ErrorResponse, field string) bool {
	for _, fe := range resp.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// fakeBookRepo overrides FindByID; every other method panics.
type fakeBookRepo struct {
	repository.BookRepository
	FindByIDFn func(ctx context.Context, id uint) (*model.Book, error)
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

type fakeAuthorRepo struct {
	repository.AuthorRepository
	CountFn func(ctx context.Context) (int64, error)
}

func (f *fakeAuthorRepo) Count(ctx context.Context) (int64, error) {
	if f.CountFn != nil {
		return f.CountFn(ctx)
	}
	return 0, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
