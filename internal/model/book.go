package model

import "time"

type Book struct {
	ID              uint       `gorm:"primaryKey"`
	Title           string     `gorm:"size:255;not null;index"`
	PublicationDate *time.Time `gorm:"type:date"`
	ISBN            string     `gorm:"column:isbn;size:255;not null;index"`
	Genre           string     `gorm:"size:255"`
	Available       bool       `gorm:"not null"`
	AuthorID        uint       `gorm:"not null;index"`
	Author          Author     `gorm:"constraint:OnUpdate:CASCADE;"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Book) TableName() string { return "book" }
