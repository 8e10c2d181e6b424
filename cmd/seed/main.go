// Command seed fills an empty library with a small demo catalogue.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/snnyvrz/library-api/internal/config"
	"github.com/snnyvrz/library-api/internal/db"
	"github.com/snnyvrz/library-api/internal/password"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/service"
)

var books = []service.BookInput{
	{
		Title:           "Palace Walk",
		PublicationDate: "1956-01-01",
		ISBN:            "9780385264662",
		Genre:           "Novel",
		Available:       true,
		Author:          mahfouz,
	},
	{
		Title:           "Sugar Street",
		PublicationDate: "1957-01-01",
		ISBN:            "9780385266925",
		Genre:           "Novel",
		Available:       false,
		Author:          mahfouz,
	},
	{
		Title:           "Season of Migration to the North",
		PublicationDate: "1966-01-01",
		ISBN:            "9780435905408",
		Genre:           "Novel",
		Available:       true,
		Author: service.AuthorInput{
			Name:        "Tayeb Salih",
			BirthDate:   "1929-07-12",
			Nationality: "Sudanese",
		},
	},
}

var mahfouz = service.AuthorInput{
	Name:        "Naguib Mahfouz",
	BirthDate:   "1911-12-11",
	Nationality: "Egyptian",
}

var customers = []service.CustomerInput{
	{
		Name:        "Mona Adel",
		Email:       "mona@example.com",
		PhoneNumber: "01012345678",
		Address:     "Giza",
		Password:    "Secret@123",
	},
	{
		Name:        "Omar Saleh",
		Email:       "omar@example.com",
		PhoneNumber: "01112345678",
		Address:     "Alexandria",
		Password:    "Secret@456",
	},
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := run(context.Background()); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()

	database, err := db.ConnectWithRetry(ctx, cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		return err
	}

	authorRepo := repository.NewGormAuthorRepository(database)
	bookRepo := repository.NewGormBookRepository(database)
	customerRepo := repository.NewGormCustomerRepository(database)
	recordRepo := repository.NewGormBorrowingRecordRepository(database)

	bookSvc := service.NewBookService(bookRepo, authorRepo, nil)
	customerSvc := service.NewCustomerService(customerRepo, password.NewBcryptHasher(cfg.BcryptCost), nil)
	borrowingSvc := service.NewBorrowingService(recordRepo, bookRepo, customerRepo, nil)

	var firstBook, firstCustomer uint

	for _, in := range books {
		b, err := bookSvc.Add(ctx, in)
		if err != nil {
			if errors.Is(err, service.ErrConflict) {
				slog.Info("book already seeded", "title", in.Title)
				continue
			}
			return err
		}
		if firstBook == 0 {
			firstBook = b.ID
		}
	}

	for _, in := range customers {
		c, err := customerSvc.Add(ctx, in)
		if err != nil {
			if errors.Is(err, service.ErrConflict) {
				slog.Info("customer already seeded", "email", in.Email)
				continue
			}
			return err
		}
		if firstCustomer == 0 {
			firstCustomer = c.ID
		}
	}

	if firstBook == 0 || firstCustomer == 0 {
		slog.Info("catalogue already present, skipping borrowing")
		return nil
	}

	record, err := borrowingSvc.Add(ctx, service.BorrowingInput{
		CustomerID: firstCustomer,
		BookID:     firstBook,
		BorrowDate: "2024-01-01",
		ReturnDate: "2024-01-14",
	})
	if err != nil && !errors.Is(err, service.ErrConflict) {
		return err
	}
	if record != nil {
		slog.Info("seeded borrowing", "record_id", record.ID)
	}

	slog.Info("seed complete")
	return nil
}
