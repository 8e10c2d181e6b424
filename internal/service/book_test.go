package service

import (
	"context"
	"testing"
	"time"

	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookService(db *gorm.DB, c cache.Cache) *BookService {
	return NewBookService(repository.NewGormBookRepository(db), repository.NewGormAuthorRepository(db), c)
}

func goBookInput() BookInput {
	return BookInput{
		Title:           "The Go Programming Language",
		PublicationDate: "2015-10-26",
		ISBN:            "978-0134190440",
		Genre:           "Software",
		Available:       true,
		Author: AuthorInput{
			Name:        "Alan Donovan",
			BirthDate:   "1970-01-01",
			Nationality: "American",
		},
	}
}

func TestBookService_Add_CreatesAuthorOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newBookService(db, nil)
	ctx := context.Background()

	first, err := svc.Add(ctx, goBookInput())
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.NotZero(t, first.AuthorID)
	assert.Equal(t, "Alan Donovan", first.Author.Name)
	require.NotNil(t, first.PublicationDate)
	assert.Equal(t, "2015-10-26", first.PublicationDate.Format(model.DateLayout))

	second := goBookInput()
	second.Title = "Another Go Book"
	second.PublicationDate = ""
	book, err := svc.Add(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.AuthorID, book.AuthorID)
	assert.Nil(t, book.PublicationDate)

	var authors int64
	require.NoError(t, db.Model(&model.Author{}).Count(&authors).Error)
	assert.Equal(t, int64(1), authors)

	third := goBookInput()
	third.Title = "Third"
	third.Author.Nationality = "Canadian"
	book, err = svc.Add(ctx, third)
	require.NoError(t, err)
	assert.NotEqual(t, first.AuthorID, book.AuthorID)
}

func TestBookService_Add_Conflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newBookService(db, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, goBookInput())
	require.NoError(t, err)

	_, err = svc.Add(ctx, goBookInput())
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "This Book Already Exists!", err.Error())

	// Same title with another ISBN is a different book.
	in := goBookInput()
	in.ISBN = "978-0000000000"
	_, err = svc.Add(ctx, in)
	assert.NoError(t, err)
}

func TestBookService_Add_InvalidDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newBookService(db, nil)

	in := goBookInput()
	in.PublicationDate = "26-10-2015"
	_, err := svc.Add(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	in = goBookInput()
	in.Author.BirthDate = "1970-02-30"
	_, err = svc.Add(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestBookService_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newBookService(db, nil)
	ctx := context.Background()

	_, err := svc.Search(ctx, BookSearch{Title: ptr("Go")})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No Books Found!", err.Error())

	author := testutil.SeedAuthor(t, db, "Rob Pike")
	book := testutil.SeedBook(t, db, author, "Go Concurrency", "isbn-1", true)
	testutil.SeedBook(t, db, author, "Plan 9", "isbn-2", true)

	tests := []struct {
		name  string
		query BookSearch
		want  int
		err   error
	}{
		{"none", BookSearch{}, 0, ErrInvalidRequest},
		{"two", BookSearch{Title: ptr("Plan 9"), ISBN: ptr("isbn-2")}, 0, ErrInvalidRequest},
		{"title", BookSearch{Title: ptr(book.Title)}, 1, nil},
		{"isbn", BookSearch{ISBN: ptr("isbn-2")}, 1, nil},
		{"author", BookSearch{AuthorName: ptr("Rob Pike")}, 2, nil},
		{"empty title", BookSearch{Title: ptr("")}, 0, ErrNotFound},
		{"no match", BookSearch{ISBN: ptr("missing")}, 0, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := svc.Search(ctx, tt.query)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, books, tt.want)
		})
	}
}

func TestBookService_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newBookService(db, cache.NewMemory(time.Minute))
	ctx := context.Background()

	book, err := svc.Add(ctx, goBookInput())
	require.NoError(t, err)

	got, err := svc.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)

	in := goBookInput()
	in.Available = false
	in.Genre = "Programming"
	updated, err := svc.Update(ctx, book.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	got, err = svc.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "Programming", got.Genre)

	_, err = svc.Update(ctx, 999, in)
	assert.ErrorIs(t, err, ErrNotFound)

	customer := testutil.SeedCustomer(t, db, "Reader", "reader@example.com", "01012345678")
	record := testutil.SeedRecord(t, db, customer, *got, "2024-01-01", "2024-01-02")

	_, err = svc.Delete(ctx, book.ID)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, db.Delete(&model.BorrowingRecord{}, record.ID).Error)

	msg, err := svc.Delete(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book With ID: 1 Deleted Successfully!", msg)

	_, err = svc.Get(ctx, book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookService_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newBookService(db, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, 0, 5, "")
	require.ErrorIs(t, err, ErrNotFound)

	author := testutil.SeedAuthor(t, db, "Author")
	for _, title := range []string{"C", "A", "B"} {
		testutil.SeedBook(t, db, author, title, "isbn-"+title, true)
	}

	page, err := svc.List(ctx, 0, 2, "title")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "A", page.Items[0].Title)
	assert.Equal(t, "B", page.Items[1].Title)
	assert.Equal(t, "Author", page.Items[0].Author.Name)
	assert.Equal(t, 2, page.TotalPages())

	_, err = svc.List(ctx, 0, 2, "nope")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
