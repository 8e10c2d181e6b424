package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/testutil"
	"gorm.io/gorm"
)

func seedBooks(t *testing.T, db *gorm.DB) (model.Author, model.Author) {
	t.Helper()

	author1 := testutil.SeedAuthor(t, db, "Robert Martin")
	author2 := testutil.SeedAuthor(t, db, "Eric Evans")

	testutil.SeedBook(t, db, author1, "Clean Code", "9780132350884", true)
	testutil.SeedBook(t, db, author1, "Clean Architecture", "9780134494166", false)
	testutil.SeedBook(t, db, author2, "Domain-Driven Design", "9780321125217", true)

	return author1, author2
}

func TestGormBookRepository_List_SortAndPagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	seedBooks(t, db)

	ctx := context.Background()

	books, err := repo.List(ctx, NewPageRequest(0, 2, "title"))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].Title != "Clean Architecture" || books[1].Title != "Clean Code" {
		t.Fatalf("unexpected order: got [%s, %s]", books[0].Title, books[1].Title)
	}
	if books[0].Author.Name != "Robert Martin" {
		t.Fatalf("expected author to be preloaded, got %+v", books[0].Author)
	}

	books, err = repo.List(ctx, NewPageRequest(1, 2, "title"))
	if err != nil {
		t.Fatalf("List page 1 returned error: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Domain-Driven Design" {
		t.Fatalf("unexpected second page: %+v", books)
	}
}

func TestGormBookRepository_List_UnknownSortField(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	seedBooks(t, db)

	_, err := repo.List(context.Background(), NewPageRequest(0, 5, "title; DROP TABLE book"))
	if !errors.Is(err, ErrUnknownSortField) {
		t.Fatalf("expected ErrUnknownSortField, got %v", err)
	}
}

func TestGormBookRepository_SearchQueries(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	seedBooks(t, db)

	ctx := context.Background()

	byTitle, err := repo.FindByTitle(ctx, "Clean Code")
	if err != nil || len(byTitle) != 1 {
		t.Fatalf("FindByTitle: expected 1 book, got %d (err=%v)", len(byTitle), err)
	}

	byISBN, err := repo.FindByISBN(ctx, "9780321125217")
	if err != nil || len(byISBN) != 1 || byISBN[0].Title != "Domain-Driven Design" {
		t.Fatalf("FindByISBN: unexpected result %+v (err=%v)", byISBN, err)
	}

	byAuthor, err := repo.FindByAuthorName(ctx, "Robert Martin")
	if err != nil {
		t.Fatalf("FindByAuthorName returned error: %v", err)
	}
	if len(byAuthor) != 2 {
		t.Fatalf("expected 2 books by Robert Martin, got %d", len(byAuthor))
	}
	for _, b := range byAuthor {
		if b.Author.Name != "Robert Martin" {
			t.Fatalf("expected preloaded author Robert Martin, got %q", b.Author.Name)
		}
	}

	none, err := repo.FindByTitle(ctx, "clean code")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected exact title match only, got %d (err=%v)", len(none), err)
	}
}

func TestGormBookRepository_ExistsByTitleAndISBN(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	seedBooks(t, db)

	ctx := context.Background()

	ok, err := repo.ExistsByTitleAndISBN(ctx, "Clean Code", "9780132350884")
	if err != nil || !ok {
		t.Fatalf("expected pair to exist, got %v (err=%v)", ok, err)
	}

	ok, err = repo.ExistsByTitleAndISBN(ctx, "Clean Code", "9780321125217")
	if err != nil || ok {
		t.Fatalf("expected mismatched pair to not exist, got %v (err=%v)", ok, err)
	}
}

func TestGormBookRepository_CreateDoesNotWriteAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	author := testutil.SeedAuthor(t, db, "Kent Beck")

	book := model.Book{
		Title:    "TDD by Example",
		ISBN:     "9780321146533",
		AuthorID: author.ID,
		Author:   model.Author{ID: author.ID, Name: "Renamed"},
	}
	if err := repo.Create(context.Background(), &book); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if book.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	var stored model.Author
	if err := db.First(&stored, author.ID).Error; err != nil {
		t.Fatalf("failed to reload author: %v", err)
	}
	if stored.Name != "Kent Beck" {
		t.Fatalf("expected author untouched, got name %q", stored.Name)
	}
}

func TestGormBookRepository_FindAndDeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	ctx := context.Background()

	if _, err := repo.FindByID(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}
