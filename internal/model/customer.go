package model

import "time"

type Customer struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Email       string `gorm:"size:255;not null;uniqueIndex:email_unique_key"`
	PhoneNumber string `gorm:"size:255;uniqueIndex:phone_unique_key"`
	Address     string `gorm:"size:255"`
	// Password holds the bcrypt hash, never the plain text.
	Password  string `gorm:"size:60;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string { return "customer" }
