package model

import "time"

type BorrowingRecord struct {
	ID         uint      `gorm:"primaryKey"`
	CustomerID uint      `gorm:"not null;index"`
	Customer   Customer  `gorm:"constraint:OnUpdate:CASCADE;"`
	BookID     uint      `gorm:"not null;index"`
	Book       Book      `gorm:"constraint:OnUpdate:CASCADE;"`
	BorrowDate time.Time `gorm:"type:date;not null"`
	ReturnDate time.Time `gorm:"type:date;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (BorrowingRecord) TableName() string { return "borrowing_record" }

// All lists every entity in dependency order, for migrations.
func All() []any {
	return []any{&Author{}, &Book{}, &Customer{}, &BorrowingRecord{}}
}
