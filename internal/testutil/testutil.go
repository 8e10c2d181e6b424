// Package testutil provides in-memory sqlite databases and seed helpers
// for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewEmptyTestDB(t)

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// NewEmptyTestDB returns a database without any tables, so every query
// against it fails.
func NewEmptyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func Date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}

func SeedAuthor(t *testing.T, db *gorm.DB, name string) model.Author {
	t.Helper()

	author := model.Author{
		Name:        name,
		BirthDate:   Date(t, "1970-01-01"),
		Nationality: "Egyptian",
	}

	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", name, err)
	}

	return author
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title, isbn string, available bool) model.Book {
	t.Helper()

	published := Date(t, "2008-08-01")

	book := model.Book{
		Title:           title,
		ISBN:            isbn,
		Genre:           "Software",
		Available:       available,
		PublicationDate: &published,
		AuthorID:        author.ID,
	}

	if err := db.Omit("Author").Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}
	book.Author = author

	return book
}

func SeedCustomer(t *testing.T, db *gorm.DB, name, email, phone string) model.Customer {
	t.Helper()

	customer := model.Customer{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		Address:     "Cairo",
		Password:    "$2a$10$seededhashseededhashseededhashseededhashseededhashse",
	}

	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer %q: %v", name, err)
	}

	return customer
}

func SeedRecord(t *testing.T, db *gorm.DB, customer model.Customer, book model.Book, borrow, ret string) model.BorrowingRecord {
	t.Helper()

	record := model.BorrowingRecord{
		CustomerID: customer.ID,
		BookID:     book.ID,
		BorrowDate: Date(t, borrow),
		ReturnDate: Date(t, ret),
	}

	if err := db.Omit("Customer", "Book").Create(&record).Error; err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	record.Customer = customer
	record.Book = book

	return record
}
