package repository

import (
	"context"

	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page PageRequest) ([]model.Customer, error)
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	ExistsByEmailOrPhoneNumber(ctx context.Context, email, phoneNumber string) (bool, error)
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uint) error
}

var customerSortColumns = sortColumns{
	"id":           "id",
	"name":         "name",
	"email":        "email",
	"phoneNumber":  "phone_number",
	"phone_number": "phone_number",
	"address":      "address",
}

type GormCustomerRepository struct {
	gormCRUD[model.Customer]
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{
		gormCRUD: gormCRUD[model.Customer]{db: db, sortable: customerSortColumns},
	}
}

func (r *GormCustomerRepository) ExistsByEmailOrPhoneNumber(ctx context.Context, email, phoneNumber string) (bool, error) {
	return r.exists(ctx, "email = ? OR phone_number = ?", email, phoneNumber)
}
