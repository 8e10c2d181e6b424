package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/testutil"
)

func TestNewPageRequest_Normalizes(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		field        string
		wantNumber   int
		wantSize     int
		wantField    string
	}{
		{"negative page", -3, 10, "name", 0, 10, "name"},
		{"zero size", 2, 0, "name", 2, DefaultPageSize, "name"},
		{"negative size", 0, -1, "", 0, DefaultPageSize, DefaultSortField},
		{"untouched", 4, 20, "id", 4, 20, "id"},
		{"size capped", 1, 500, "id", 1, MaxPageSize, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPageRequest(tt.number, tt.size, tt.field)
			if got.Number != tt.wantNumber || got.Size != tt.wantSize || got.Field != tt.wantField {
				t.Fatalf("expected {%d %d %s}, got %+v", tt.wantNumber, tt.wantSize, tt.wantField, got)
			}
		})
	}

	if off := NewPageRequest(3, 5, "id").Offset(); off != 15 {
		t.Fatalf("expected offset 15, got %d", off)
	}

	if off := NewPageRequest(math.MaxInt, 10, "id").Offset(); off < 0 {
		t.Fatalf("expected non-negative offset for huge page number, got %d", off)
	}
}

func TestGormBookRepository_List_HugePageNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	seedBooks(t, db)

	books, err := repo.List(context.Background(), NewPageRequest(math.MaxInt/2, 5, "id"))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected an empty page past the end, got %d books", len(books))
	}
}

func TestGormAuthorRepository_NaturalKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormAuthorRepository(db)
	author := testutil.SeedAuthor(t, db, "Naguib Mahfouz")

	ctx := context.Background()

	found, err := repo.FindByKey(ctx, author.Key())
	if err != nil {
		t.Fatalf("FindByKey returned error: %v", err)
	}
	if found.ID != author.ID {
		t.Fatalf("expected author %d, got %d", author.ID, found.ID)
	}

	ok, err := repo.ExistsByKey(ctx, author.Key())
	if err != nil || !ok {
		t.Fatalf("expected author to exist, got %v (err=%v)", ok, err)
	}

	other := author.Key()
	other.BirthDate = testutil.Date(t, "1911-12-11")
	if _, err := repo.FindByKey(ctx, other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for different birth date, got %v", err)
	}
}

func TestGormCustomerRepository_ExistsByEmailOrPhoneNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormCustomerRepository(db)
	testutil.SeedCustomer(t, db, "Mona", "mona@example.com", "01012345678")

	ctx := context.Background()

	cases := []struct {
		email, phone string
		want         bool
	}{
		{"mona@example.com", "01199999999", true},
		{"other@example.com", "01012345678", true},
		{"other@example.com", "01199999999", false},
	}
	for _, c := range cases {
		got, err := repo.ExistsByEmailOrPhoneNumber(ctx, c.email, c.phone)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Errorf("ExistsByEmailOrPhoneNumber(%q, %q) = %v, want %v", c.email, c.phone, got, c.want)
		}
	}
}

func TestGormCustomerRepository_CreateDuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormCustomerRepository(db)
	testutil.SeedCustomer(t, db, "Mona", "mona@example.com", "01012345678")

	dup := model.Customer{
		Name:        "Mona Again",
		Email:       "mona@example.com",
		PhoneNumber: "01511111111",
		Password:    "hash",
	}
	if err := repo.Create(context.Background(), &dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGormBorrowingRecordRepository_Queries(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBorrowingRecordRepository(db)

	author := testutil.SeedAuthor(t, db, "Eric Evans")
	book1 := testutil.SeedBook(t, db, author, "Domain-Driven Design", "9780321125217", true)
	book2 := testutil.SeedBook(t, db, author, "DDD Reference", "9781457501197", true)
	c1 := testutil.SeedCustomer(t, db, "Mona", "mona@example.com", "01012345678")
	c2 := testutil.SeedCustomer(t, db, "Omar", "omar@example.com", "01112345678")

	testutil.SeedRecord(t, db, c1, book1, "2024-01-01", "2024-01-10")
	testutil.SeedRecord(t, db, c2, book1, "2024-01-03", "2024-01-05")
	testutil.SeedRecord(t, db, c1, book2, "2024-02-01", "2024-02-10")

	ctx := context.Background()

	ok, err := repo.ExistsByBookAndCustomer(ctx, book1.ID, c2.ID)
	if err != nil || !ok {
		t.Fatalf("expected record to exist, got %v (err=%v)", ok, err)
	}
	ok, err = repo.ExistsByBookAndCustomer(ctx, book2.ID, c2.ID)
	if err != nil || ok {
		t.Fatalf("expected no record, got %v (err=%v)", ok, err)
	}

	byBook, err := repo.FindByBook(ctx, book1.ID)
	if err != nil || len(byBook) != 2 {
		t.Fatalf("FindByBook: expected 2 records, got %d (err=%v)", len(byBook), err)
	}
	if byBook[0].Book.Author.Name != "Eric Evans" {
		t.Fatalf("expected nested author preloaded, got %+v", byBook[0].Book.Author)
	}

	byCustomer, err := repo.FindByCustomer(ctx, c1.ID)
	if err != nil || len(byCustomer) != 2 {
		t.Fatalf("FindByCustomer: expected 2 records, got %d (err=%v)", len(byCustomer), err)
	}

	sorted, err := repo.List(ctx, NewPageRequest(0, 5, "borrowDate"))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(sorted) != 3 || sorted[0].BorrowDate.After(sorted[1].BorrowDate) || sorted[1].BorrowDate.After(sorted[2].BorrowDate) {
		t.Fatalf("expected records ascending by borrow date, got %+v", sorted)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("expected count 3, got %d (err=%v)", n, err)
	}
}

func TestGormRepositories_DeleteReferenced(t *testing.T) {
	db := testutil.NewTestDB(t)
	authors := NewGormAuthorRepository(db)
	books := NewGormBookRepository(db)
	customers := NewGormCustomerRepository(db)

	author := testutil.SeedAuthor(t, db, "Tanenbaum")
	book := testutil.SeedBook(t, db, author, "Modern Operating Systems", "9780133591620", true)
	customer := testutil.SeedCustomer(t, db, "Mona", "mona@example.com", "01012345678")
	testutil.SeedRecord(t, db, customer, book, "2024-01-01", "2024-01-10")

	ctx := context.Background()

	if err := authors.Delete(ctx, author.ID); !errors.Is(err, ErrReferenced) {
		t.Fatalf("expected ErrReferenced deleting author, got %v", err)
	}
	if err := books.Delete(ctx, book.ID); !errors.Is(err, ErrReferenced) {
		t.Fatalf("expected ErrReferenced deleting book, got %v", err)
	}
	if err := customers.Delete(ctx, customer.ID); !errors.Is(err, ErrReferenced) {
		t.Fatalf("expected ErrReferenced deleting customer, got %v", err)
	}
}
