package repository

import (
	"context"

	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/gorm"
)

type AuthorRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page PageRequest) ([]model.Author, error)
	FindByID(ctx context.Context, id uint) (*model.Author, error)
	FindByKey(ctx context.Context, key model.AuthorKey) (*model.Author, error)
	ExistsByKey(ctx context.Context, key model.AuthorKey) (bool, error)
	Create(ctx context.Context, author *model.Author) error
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uint) error
}

var authorSortColumns = sortColumns{
	"id":          "id",
	"name":        "name",
	"birthDate":   "birth_date",
	"birth_date":  "birth_date",
	"nationality": "nationality",
}

type GormAuthorRepository struct {
	gormCRUD[model.Author]
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{
		gormCRUD: gormCRUD[model.Author]{db: db, sortable: authorSortColumns},
	}
}

func (r *GormAuthorRepository) FindByKey(ctx context.Context, key model.AuthorKey) (*model.Author, error) {
	var author model.Author
	err := r.db.WithContext(ctx).
		Where("name = ? AND birth_date = ? AND nationality = ?", key.Name, key.BirthDate, key.Nationality).
		Order("id").
		First(&author).Error
	if err != nil {
		return nil, translate(err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) ExistsByKey(ctx context.Context, key model.AuthorKey) (bool, error) {
	return r.exists(ctx, "name = ? AND birth_date = ? AND nationality = ?", key.Name, key.BirthDate, key.Nationality)
}
