package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/testutil"
)

func TestCreateAuthor_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	body := AuthorRequest{Name: "Naguib Mahfouz", BirthDate: "1911-12-11", Nationality: "Egyptian"}

	w := doRequest(t, router, http.MethodPost, "/authors", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[AuthorResponse](t, w)
	if resp.Data.ID == 0 {
		t.Errorf("expected non-zero ID")
	}
	if resp.Data.Name != body.Name {
		t.Errorf("expected name %q, got %q", body.Name, resp.Data.Name)
	}
	if resp.Data.BirthDate.String() != body.BirthDate {
		t.Errorf("expected birth date %q, got %q", body.BirthDate, resp.Data.BirthDate)
	}

	var stored model.Author
	if err := db.First(&stored, resp.Data.ID).Error; err != nil {
		t.Fatalf("expected author in db, got error: %v", err)
	}
}

func TestCreateAuthor_ValidationError(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodPost, "/authors", `{"name":"  ","birthDate":"11-12-1911"}`)

	resp := expectError(t, w, http.StatusBadRequest, "VALIDATION_FAILED")
	for _, field := range []string{"name", "birthDate", "nationality"} {
		if !hasFieldError(resp, field) {
			t.Errorf("expected %s field error, got %+v", field, resp.Errors)
		}
	}
}

func TestCreateAuthor_Duplicate_Returns409(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	body := AuthorRequest{Name: "Naguib Mahfouz", BirthDate: "1911-12-11", Nationality: "Egyptian"}
	if w := doRequest(t, router, http.MethodPost, "/authors", body); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w := doRequest(t, router, http.MethodPost, "/authors", body)
	resp := expectError(t, w, http.StatusConflict, CodeConflict)
	if resp.Message != "This Author Already Exists!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestListAuthors(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodGet, "/authors", nil)
	resp := expectError(t, w, http.StatusNotFound, CodeNotFound)
	if resp.Message != "No Authors Found!" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	for _, name := range []string{"Taha Hussein", "Alaa Al Aswany", "Radwa Ashour"} {
		testutil.SeedAuthor(t, db, name)
	}

	w = doRequest(t, router, http.MethodGet, "/authors?pageNumber=0&pageSize=2&field=name", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	list := decode[ListAuthorsResponse](t, w)
	if len(list.Data) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(list.Data))
	}
	if list.Data[0].Name != "Alaa Al Aswany" || list.Data[1].Name != "Radwa Ashour" {
		t.Errorf("unexpected order: %q, %q", list.Data[0].Name, list.Data[1].Name)
	}
	if list.Pagination.Total != 3 || list.Pagination.TotalPages != 2 || list.Pagination.Field != "name" {
		t.Errorf("unexpected pagination %+v", list.Pagination)
	}

	w = doRequest(t, router, http.MethodGet, "/authors?field=favouriteColour", nil)
	expectError(t, w, http.StatusBadRequest, CodeInvalidRequest)
}

func TestListAuthors_InternalError_Returns500(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := gormRepos(db)
	r.authors = &fakeAuthorRepo{
		CountFn: func(ctx context.Context) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	router := setupTestRouterWithRepos(r)

	w := doRequest(t, router, http.MethodGet, "/authors", nil)
	expectError(t, w, http.StatusInternalServerError, CodeInternalError)
}

func TestGetAuthorByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	author := testutil.SeedAuthor(t, db, "Taha Hussein")

	w := doRequest(t, router, http.MethodGet, "/authors/"+itoa(author.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if resp := decode[AuthorResponse](t, w); resp.Data.Name != author.Name {
		t.Errorf("expected %q, got %q", author.Name, resp.Data.Name)
	}

	w = doRequest(t, router, http.MethodGet, "/authors/-1", nil)
	expectError(t, w, http.StatusBadRequest, CodeInvalidID)

	w = doRequest(t, router, http.MethodGet, "/authors/77", nil)
	resp := expectError(t, w, http.StatusNotFound, CodeNotFound)
	if resp.Message != "No Author With The ID: 77 Found!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestUpdateAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	author := testutil.SeedAuthor(t, db, "Taha Hussein")

	body := AuthorRequest{Name: "Taha Hussein", BirthDate: "1889-11-15", Nationality: "Egyptian"}

	w := doRequest(t, router, http.MethodPut, "/authors/"+itoa(author.ID), body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var stored model.Author
	if err := db.First(&stored, author.ID).Error; err != nil {
		t.Fatalf("failed to reload author: %v", err)
	}
	if stored.BirthDate.Format(model.DateLayout) != "1889-11-15" {
		t.Errorf("expected birth date updated, got %s", stored.BirthDate)
	}

	w = doRequest(t, router, http.MethodPut, "/authors/999", body)
	expectError(t, w, http.StatusNotFound, CodeNotFound)

	w = doRequest(t, router, http.MethodPut, "/authors/"+itoa(author.ID), `{"name":""}`)
	expectError(t, w, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TestDeleteAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	free := testutil.SeedAuthor(t, db, "Free")
	busy := testutil.SeedAuthor(t, db, "Busy")
	testutil.SeedBook(t, db, busy, "Book", "isbn", true)

	w := doRequest(t, router, http.MethodDelete, "/authors/"+itoa(free.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodDelete, "/authors/"+itoa(free.ID), nil)
	expectError(t, w, http.StatusNotFound, CodeNotFound)

	w = doRequest(t, router, http.MethodDelete, "/authors/"+itoa(busy.ID), nil)
	expectError(t, w, http.StatusConflict, CodeConflict)
}

func TestAuthors_EmptyDB_Returns500(t *testing.T) {
	db := testutil.NewEmptyTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodGet, "/authors/1", nil)
	expectError(t, w, http.StatusInternalServerError, CodeInternalError)
}
