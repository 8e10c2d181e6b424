package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
)

type BookInput struct {
	Title string
	// PublicationDate is optional; empty means unknown.
	PublicationDate string
	ISBN            string
	Genre           string
	Available       bool
	Author          AuthorInput
}

// BookSearch selects books by exactly one non-nil field.
type BookSearch struct {
	Title      *string
	ISBN       *string
	AuthorName *string
}

type BookService struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
	cache   cache.Cache
}

func NewBookService(books repository.BookRepository, authors repository.AuthorRepository, c cache.Cache) *BookService {
	return &BookService{books: books, authors: authors, cache: orNoop(c)}
}

func (s *BookService) List(ctx context.Context, pageNumber, pageSize int, field string) (Page[model.Book], error) {
	return listPage[model.Book](ctx, s.cache, booksCollection, s.books, pageNumber, pageSize, field, "No Books Found!")
}

func (s *BookService) Search(ctx context.Context, q BookSearch) ([]model.Book, error) {
	var (
		n     int
		key   string
		fetch func(context.Context) ([]model.Book, error)
	)
	if q.Title != nil {
		n++
		key = cache.Key(booksCollection, "search", "title", *q.Title)
		fetch = func(ctx context.Context) ([]model.Book, error) { return s.books.FindByTitle(ctx, *q.Title) }
	}
	if q.ISBN != nil {
		n++
		key = cache.Key(booksCollection, "search", "isbn", *q.ISBN)
		fetch = func(ctx context.Context) ([]model.Book, error) { return s.books.FindByISBN(ctx, *q.ISBN) }
	}
	if q.AuthorName != nil {
		n++
		key = cache.Key(booksCollection, "search", "author", *q.AuthorName)
		fetch = func(ctx context.Context) ([]model.Book, error) { return s.books.FindByAuthorName(ctx, *q.AuthorName) }
	}

	switch {
	case n == 0:
		return nil, InvalidRequest("At least one search parameter must be provided.")
	case n > 1:
		return nil, InvalidRequest("Only one search parameter can be provided at a time.")
	}

	return cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]model.Book, error) {
		total, err := s.books.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count books: %w", err)
		}
		if total == 0 {
			return nil, NotFound("No Books Found!")
		}

		books, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("search books: %w", err)
		}
		if len(books) == 0 {
			return nil, NotFound("No Books Found!")
		}
		return books, nil
	})
}

func (s *BookService) Get(ctx context.Context, id uint) (*model.Book, error) {
	return getByID(ctx, s.cache, booksCollection, s.books.FindByID, id, bookNotFound(id))
}

func (s *BookService) Add(ctx context.Context, in BookInput) (*model.Book, error) {
	exists, err := s.books.ExistsByTitleAndISBN(ctx, in.Title, in.ISBN)
	if err != nil {
		return nil, fmt.Errorf("check book exists: %w", err)
	}
	if exists {
		return nil, Conflict("This Book Already Exists!")
	}

	published, err := parsePublicationDate(in.PublicationDate)
	if err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, in.Author)
	if err != nil {
		return nil, err
	}

	book := model.Book{
		Title:           in.Title,
		PublicationDate: published,
		ISBN:            in.ISBN,
		Genre:           in.Genre,
		Available:       in.Available,
		AuthorID:        author.ID,
		Author:          *author,
	}
	if err := s.books.Create(ctx, &book); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("This Book Already Exists!")
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	invalidate(s.cache, booksCollection)
	slog.InfoContext(ctx, "book created", "book_id", book.ID, "author_id", author.ID)

	return &book, nil
}

func (s *BookService) Update(ctx context.Context, id uint, in BookInput) (*model.Book, error) {
	book, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	published, err := parsePublicationDate(in.PublicationDate)
	if err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, in.Author)
	if err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.ISBN = in.ISBN
	book.Genre = in.Genre
	book.Available = in.Available
	book.PublicationDate = published
	book.AuthorID = author.ID
	book.Author = *author

	if err := s.books.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}

	invalidate(s.cache, booksCollection, recordsCollection)
	slog.InfoContext(ctx, "book updated", "book_id", book.ID)

	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id uint) (string, error) {
	if _, err := s.find(ctx, id); err != nil {
		return "", err
	}

	if err := s.books.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return "", NotFound(bookNotFound(id))
		case errors.Is(err, repository.ErrReferenced):
			return "", Conflictf("Book With ID: %d Is Still Referenced By Borrowing Records!", id)
		}
		return "", fmt.Errorf("delete book %d: %w", id, err)
	}

	invalidate(s.cache, booksCollection, recordsCollection)
	slog.InfoContext(ctx, "book deleted", "book_id", id)

	return fmt.Sprintf("Book With ID: %d Deleted Successfully!", id), nil
}

// resolveAuthor returns the author matching the natural key of in,
// creating it when none exists yet.
func (s *BookService) resolveAuthor(ctx context.Context, in AuthorInput) (*model.Author, error) {
	key, err := in.key()
	if err != nil {
		return nil, err
	}

	author, err := s.authors.FindByKey(ctx, key)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find author by key: %w", err)
	}

	author = &model.Author{
		Name:        key.Name,
		BirthDate:   key.BirthDate,
		Nationality: key.Nationality,
	}
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	invalidate(s.cache, authorsCollection)
	slog.InfoContext(ctx, "author created from book payload", "author_id", author.ID)

	return author, nil
}

func (s *BookService) find(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(bookNotFound(id))
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return book, nil
}

func parsePublicationDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate("publicationDate", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func bookNotFound(id uint) string {
	return fmt.Sprintf("No Book With The ID: %d Found!", id)
}
