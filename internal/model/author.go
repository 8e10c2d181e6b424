package model

import "time"

type Author struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null;index:idx_author_natural_key"`
	BirthDate   time.Time `gorm:"type:date;index:idx_author_natural_key"`
	Nationality string    `gorm:"size:255;index:idx_author_natural_key"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Author) TableName() string { return "author" }

// AuthorKey is the natural key used to deduplicate authors submitted
// inline with a book.
type AuthorKey struct {
	Name        string
	BirthDate   time.Time
	Nationality string
}

func (a Author) Key() AuthorKey {
	return AuthorKey{Name: a.Name, BirthDate: a.BirthDate, Nationality: a.Nationality}
}
