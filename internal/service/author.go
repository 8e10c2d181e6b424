package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
)

type AuthorInput struct {
	Name        string
	BirthDate   string
	Nationality string
}

func (in AuthorInput) key() (model.AuthorKey, error) {
	birth, err := parseDate("birthDate", in.BirthDate)
	if err != nil {
		return model.AuthorKey{}, err
	}
	return model.AuthorKey{Name: in.Name, BirthDate: birth, Nationality: in.Nationality}, nil
}

type AuthorService struct {
	authors repository.AuthorRepository
	cache   cache.Cache
}

func NewAuthorService(authors repository.AuthorRepository, c cache.Cache) *AuthorService {
	return &AuthorService{authors: authors, cache: orNoop(c)}
}

func (s *AuthorService) List(ctx context.Context, pageNumber, pageSize int, field string) (Page[model.Author], error) {
	return listPage[model.Author](ctx, s.cache, authorsCollection, s.authors, pageNumber, pageSize, field, "No Authors Found!")
}

func (s *AuthorService) Get(ctx context.Context, id uint) (*model.Author, error) {
	return getByID(ctx, s.cache, authorsCollection, s.authors.FindByID, id, authorNotFound(id))
}

func (s *AuthorService) Add(ctx context.Context, in AuthorInput) (*model.Author, error) {
	key, err := in.key()
	if err != nil {
		return nil, err
	}

	exists, err := s.authors.ExistsByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check author exists: %w", err)
	}
	if exists {
		return nil, Conflict("This Author Already Exists!")
	}

	author := model.Author{
		Name:        key.Name,
		BirthDate:   key.BirthDate,
		Nationality: key.Nationality,
	}
	if err := s.authors.Create(ctx, &author); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("This Author Already Exists!")
		}
		return nil, fmt.Errorf("create author: %w", err)
	}

	invalidate(s.cache, authorsCollection)
	slog.InfoContext(ctx, "author created", "author_id", author.ID)

	return &author, nil
}

func (s *AuthorService) Update(ctx context.Context, id uint, in AuthorInput) (*model.Author, error) {
	author, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := in.key()
	if err != nil {
		return nil, err
	}

	author.Name = key.Name
	author.BirthDate = key.BirthDate
	author.Nationality = key.Nationality

	if err := s.authors.Update(ctx, author); err != nil {
		return nil, fmt.Errorf("update author %d: %w", id, err)
	}

	// Books and records embed their author.
	invalidate(s.cache, authorsCollection, booksCollection, recordsCollection)
	slog.InfoContext(ctx, "author updated", "author_id", author.ID)

	return author, nil
}

func (s *AuthorService) Delete(ctx context.Context, id uint) (string, error) {
	if _, err := s.find(ctx, id); err != nil {
		return "", err
	}

	if err := s.authors.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return "", NotFound(authorNotFound(id))
		case errors.Is(err, repository.ErrReferenced):
			return "", Conflictf("Author With ID: %d Is Still Referenced By Books!", id)
		}
		return "", fmt.Errorf("delete author %d: %w", id, err)
	}

	invalidate(s.cache, authorsCollection)
	slog.InfoContext(ctx, "author deleted", "author_id", id)

	return fmt.Sprintf("Author With ID: %d Deleted Successfully!", id), nil
}

// find reads through the store, never the cache, for write paths.
func (s *AuthorService) find(ctx context.Context, id uint) (*model.Author, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(authorNotFound(id))
		}
		return nil, fmt.Errorf("find author %d: %w", id, err)
	}
	return author, nil
}

func authorNotFound(id uint) string {
	return fmt.Sprintf("No Author With The ID: %d Found!", id)
}
