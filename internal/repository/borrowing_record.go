package repository

import (
	"context"

	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/gorm"
)

type BorrowingRecordRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page PageRequest) ([]model.BorrowingRecord, error)
	FindByID(ctx context.Context, id uint) (*model.BorrowingRecord, error)
	ExistsByBookAndCustomer(ctx context.Context, bookID, customerID uint) (bool, error)
	FindByBook(ctx context.Context, bookID uint) ([]model.BorrowingRecord, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]model.BorrowingRecord, error)
	Create(ctx context.Context, record *model.BorrowingRecord) error
	Update(ctx context.Context, record *model.BorrowingRecord) error
	Delete(ctx context.Context, id uint) error
}

var recordSortColumns = sortColumns{
	"id":          "id",
	"borrowDate":  "borrow_date",
	"borrow_date": "borrow_date",
	"returnDate":  "return_date",
	"return_date": "return_date",
	"customer":    "customer_id",
	"customer_id": "customer_id",
	"book":        "book_id",
	"book_id":     "book_id",
}

type GormBorrowingRecordRepository struct {
	gormCRUD[model.BorrowingRecord]
}

func NewGormBorrowingRecordRepository(db *gorm.DB) *GormBorrowingRecordRepository {
	return &GormBorrowingRecordRepository{
		gormCRUD: gormCRUD[model.BorrowingRecord]{
			db:       db,
			sortable: recordSortColumns,
			preload:  []string{"Customer", "Book", "Book.Author"},
		},
	}
}

func (r *GormBorrowingRecordRepository) ExistsByBookAndCustomer(ctx context.Context, bookID, customerID uint) (bool, error) {
	return r.exists(ctx, "book_id = ? AND customer_id = ?", bookID, customerID)
}

func (r *GormBorrowingRecordRepository) FindByBook(ctx context.Context, bookID uint) ([]model.BorrowingRecord, error) {
	return r.findAll(ctx, "book_id = ?", bookID)
}

func (r *GormBorrowingRecordRepository) FindByCustomer(ctx context.Context, customerID uint) ([]model.BorrowingRecord, error) {
	return r.findAll(ctx, "customer_id = ?", customerID)
}
