package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormCRUD implements the operations every entity repository shares.
// Associations are never written through it; references are stored by
// foreign key only.
type gormCRUD[T any] struct {
	db       *gorm.DB
	sortable sortColumns
	preload  []string
}

func (r *gormCRUD[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preload {
		q = q.Preload(p)
	}
	return q
}

func (r *gormCRUD[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, translate(err)
}

func (r *gormCRUD[T]) List(ctx context.Context, page PageRequest) ([]T, error) {
	col, err := r.sortable.column(page.Field)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := paginate(r.query(ctx), page, col).Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *gormCRUD[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.query(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *gormCRUD[T]) Create(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (r *gormCRUD[T]) Update(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

func (r *gormCRUD[T]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormCRUD[T]) exists(ctx context.Context, query any, args ...any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(query, args...).Limit(1).Count(&n).Error
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *gormCRUD[T]) findAll(ctx context.Context, query any, args ...any) ([]T, error) {
	var items []T
	err := r.query(ctx).
		Where(query, args...).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
