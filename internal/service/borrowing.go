package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
)

// BorrowingInput is a borrow request. Dates are calendar dates in the
// format YYYY-MM-DD.
type BorrowingInput struct {
	CustomerID uint
	BookID     uint
	BorrowDate string
	ReturnDate string
}

// RecordSearch selects records by exactly one non-nil reference.
type RecordSearch struct {
	CustomerID *uint
	BookID     *uint
}

type BorrowingService struct {
	records   repository.BorrowingRecordRepository
	books     repository.BookRepository
	customers repository.CustomerRepository
	cache     cache.Cache
}

func NewBorrowingService(
	records repository.BorrowingRecordRepository,
	books repository.BookRepository,
	customers repository.CustomerRepository,
	c cache.Cache,
) *BorrowingService {
	return &BorrowingService{records: records, books: books, customers: customers, cache: orNoop(c)}
}

func (s *BorrowingService) List(ctx context.Context, pageNumber, pageSize int, field string) (Page[model.BorrowingRecord], error) {
	return listPage[model.BorrowingRecord](ctx, s.cache, recordsCollection, s.records, pageNumber, pageSize, field, "No Records Found!")
}

func (s *BorrowingService) Search(ctx context.Context, q RecordSearch) ([]model.BorrowingRecord, error) {
	switch {
	case q.CustomerID == nil && q.BookID == nil:
		return nil, InvalidRequest("At least one search parameter must be provided.")
	case q.CustomerID != nil && q.BookID != nil:
		return nil, InvalidRequest("Only one search parameter can be provided at a time.")
	}

	if q.BookID != nil {
		id := *q.BookID
		return cache.GetOrFetch(ctx, s.cache, cache.Key(recordsCollection, "search", "book", id), func(ctx context.Context) ([]model.BorrowingRecord, error) {
			if _, err := s.books.FindByID(ctx, id); err != nil {
				return nil, noRecordFound(err, "book", id)
			}
			return nonEmpty(s.records.FindByBook(ctx, id))
		})
	}

	id := *q.CustomerID
	return cache.GetOrFetch(ctx, s.cache, cache.Key(recordsCollection, "search", "customer", id), func(ctx context.Context) ([]model.BorrowingRecord, error) {
		if _, err := s.customers.FindByID(ctx, id); err != nil {
			return nil, noRecordFound(err, "customer", id)
		}
		return nonEmpty(s.records.FindByCustomer(ctx, id))
	})
}

func (s *BorrowingService) Get(ctx context.Context, id uint) (*model.BorrowingRecord, error) {
	return getByID(ctx, s.cache, recordsCollection, s.records.FindByID, id, recordNotFound(id))
}

// Add commits a new record once the book is available, the customer
// exists, the (book, customer) pair has no record yet and the borrow
// date is not after the return date. Book availability is only read.
func (s *BorrowingService) Add(ctx context.Context, in BorrowingInput) (*model.BorrowingRecord, error) {
	b, err := s.validate(ctx, in, true)
	if err != nil {
		return nil, err
	}

	record := model.BorrowingRecord{
		CustomerID: b.customer.ID,
		Customer:   *b.customer,
		BookID:     b.book.ID,
		Book:       *b.book,
		BorrowDate: b.borrowDate,
		ReturnDate: b.returnDate,
	}
	if err := s.records.Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	invalidate(s.cache, recordsCollection)
	slog.InfoContext(ctx, "borrowing record created",
		"record_id", record.ID,
		"book_id", record.BookID,
		"customer_id", record.CustomerID,
	)

	return &record, nil
}

// Update overwrites an existing record. Unlike Add it does not reject a
// (book, customer) pair that already has a record.
func (s *BorrowingService) Update(ctx context.Context, id uint, in BorrowingInput) (*model.BorrowingRecord, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := s.validate(ctx, in, false)
	if err != nil {
		return nil, err
	}

	record.BookID = b.book.ID
	record.Book = *b.book
	record.CustomerID = b.customer.ID
	record.Customer = *b.customer
	record.BorrowDate = b.borrowDate
	record.ReturnDate = b.returnDate

	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update record %d: %w", id, err)
	}

	invalidate(s.cache, recordsCollection)
	slog.InfoContext(ctx, "borrowing record updated", "record_id", record.ID)

	return record, nil
}

func (s *BorrowingService) Delete(ctx context.Context, id uint) (string, error) {
	if _, err := s.find(ctx, id); err != nil {
		return "", err
	}

	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", NotFound(recordNotFound(id))
		}
		return "", fmt.Errorf("delete record %d: %w", id, err)
	}

	invalidate(s.cache, recordsCollection)
	slog.InfoContext(ctx, "borrowing record deleted", "record_id", id)

	return fmt.Sprintf("Record With ID: %d Deleted Successfully!", id), nil
}

// borrowing is a borrow request whose references are resolved and whose
// dates are parsed and ordered.
type borrowing struct {
	book       *model.Book
	customer   *model.Customer
	borrowDate time.Time
	returnDate time.Time
}

// validate runs the borrow checks in order: book exists, book is
// available, customer exists, optionally no record for the pair, dates
// parse, borrow date not after return date.
func (s *BorrowingService) validate(ctx context.Context, in BorrowingInput, rejectDuplicate bool) (borrowing, error) {
	book, err := s.books.FindByID(ctx, in.BookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return borrowing{}, NotFound("No Book With That ID Found!")
		}
		return borrowing{}, fmt.Errorf("find book %d: %w", in.BookID, err)
	}
	if !book.Available {
		return borrowing{}, InvalidRequest("This Book Is Not Available!")
	}

	customer, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return borrowing{}, NotFound("No Customer With That ID Found!")
		}
		return borrowing{}, fmt.Errorf("find customer %d: %w", in.CustomerID, err)
	}

	if rejectDuplicate {
		exists, err := s.records.ExistsByBookAndCustomer(ctx, book.ID, customer.ID)
		if err != nil {
			return borrowing{}, fmt.Errorf("check record exists: %w", err)
		}
		if exists {
			return borrowing{}, Conflict("This Record Already Exists!")
		}
	}

	borrowDate, err := parseDate("borrowDate", in.BorrowDate)
	if err != nil {
		return borrowing{}, err
	}
	returnDate, err := parseDate("returnDate", in.ReturnDate)
	if err != nil {
		return borrowing{}, err
	}
	if borrowDate.After(returnDate) {
		return borrowing{}, InvalidRequest("Borrow Date can't be after Return Date!")
	}

	return borrowing{
		book:       book,
		customer:   customer,
		borrowDate: borrowDate,
		returnDate: returnDate,
	}, nil
}

func (s *BorrowingService) find(ctx context.Context, id uint) (*model.BorrowingRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(recordNotFound(id))
		}
		return nil, fmt.Errorf("find record %d: %w", id, err)
	}
	return record, nil
}

func noRecordFound(err error, ref string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFound("No Record Found!")
	}
	return fmt.Errorf("find %s %d: %w", ref, id, err)
}

func nonEmpty(records []model.BorrowingRecord, err error) ([]model.BorrowingRecord, error) {
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	if len(records) == 0 {
		return nil, NotFound("No Record Found!")
	}
	return records, nil
}

func recordNotFound(id uint) string {
	return fmt.Sprintf("No Record With The ID: %d Found!", id)
}
