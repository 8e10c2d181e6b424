package repository

import (
	"context"

	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/gorm"
)

type BookRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page PageRequest) ([]model.Book, error)
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	ExistsByTitleAndISBN(ctx context.Context, title, isbn string) (bool, error)
	FindByTitle(ctx context.Context, title string) ([]model.Book, error)
	FindByISBN(ctx context.Context, isbn string) ([]model.Book, error)
	FindByAuthorName(ctx context.Context, name string) ([]model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
}

var bookSortColumns = sortColumns{
	"id":               "id",
	"title":            "title",
	"publicationDate":  "publication_date",
	"publication_date": "publication_date",
	"isbn":             "isbn",
	"genre":            "genre",
	"available":        "available",
	"author":           "author_id",
	"author_id":        "author_id",
}

type GormBookRepository struct {
	gormCRUD[model.Book]
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{
		gormCRUD: gormCRUD[model.Book]{
			db:       db,
			sortable: bookSortColumns,
			preload:  []string{"Author"},
		},
	}
}

func (r *GormBookRepository) ExistsByTitleAndISBN(ctx context.Context, title, isbn string) (bool, error) {
	return r.exists(ctx, "title = ? AND isbn = ?", title, isbn)
}

func (r *GormBookRepository) FindByTitle(ctx context.Context, title string) ([]model.Book, error) {
	return r.findAll(ctx, "title = ?", title)
}

func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) ([]model.Book, error) {
	return r.findAll(ctx, "isbn = ?", isbn)
}

func (r *GormBookRepository) FindByAuthorName(ctx context.Context, name string) ([]model.Book, error) {
	var books []model.Book
	err := r.query(ctx).
		Joins("JOIN author ON author.id = book.author_id").
		Where("author.name = ?", name).
		Order("book.id").
		Find(&books).Error
	if err != nil {
		return nil, translate(err)
	}
	return books, nil
}
