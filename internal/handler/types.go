package handler

import (
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/service"
)

type AuthorRequest struct {
	Name        string `json:"name" binding:"notblank,max=255"`
	BirthDate   string `json:"birthDate" binding:"required,isodate" example:"1911-12-11"`
	Nationality string `json:"nationality" binding:"notblank,max=255"`
}

func (r AuthorRequest) input() service.AuthorInput {
	return service.AuthorInput{
		Name:        r.Name,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
	}
}

type BookRequest struct {
	Title           string         `json:"title" binding:"notblank,max=255"`
	PublicationDate string         `json:"publicationDate" binding:"omitempty,isodate" example:"2015-10-26"`
	ISBN            string         `json:"isbn" binding:"notblank,max=255"`
	Genre           string         `json:"genre" binding:"max=255"`
	Available       *bool          `json:"available" binding:"required"`
	Author          *AuthorRequest `json:"author" binding:"required"`
}

func (r BookRequest) input() service.BookInput {
	return service.BookInput{
		Title:           r.Title,
		PublicationDate: r.PublicationDate,
		ISBN:            r.ISBN,
		Genre:           r.Genre,
		Available:       *r.Available,
		Author:          r.Author.input(),
	}
}

type CustomerRequest struct {
	Name        string `json:"name" binding:"notblank,max=255"`
	Email       string `json:"email" binding:"required,email,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"required,egphone" example:"01012345678"`
	Address     string `json:"address" binding:"max=255"`
	Password    string `json:"password" binding:"required,password,max=72" example:"Secret@123"`
}

func (r CustomerRequest) input() service.CustomerInput {
	return service.CustomerInput{
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		Password:    r.Password,
	}
}

type BorrowingRequest struct {
	CustomerID uint   `json:"customerId" binding:"required,gt=0"`
	BookID     uint   `json:"bookId" binding:"required,gt=0"`
	BorrowDate string `json:"borrowDate" binding:"required,isodate" example:"2024-01-01"`
	ReturnDate string `json:"returnDate" binding:"required,isodate" example:"2024-01-10"`
}

func (r BorrowingRequest) input() service.BorrowingInput {
	return service.BorrowingInput{
		CustomerID: r.CustomerID,
		BookID:     r.BookID,
		BorrowDate: r.BorrowDate,
		ReturnDate: r.ReturnDate,
	}
}

type Author struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	BirthDate   model.Date `json:"birthDate" swaggertype:"string" example:"1911-12-11"`
	Nationality string     `json:"nationality"`
}

type Book struct {
	ID              uint        `json:"id"`
	Title           string      `json:"title"`
	PublicationDate *model.Date `json:"publicationDate" swaggertype:"string" example:"2015-10-26"`
	ISBN            string      `json:"isbn"`
	Genre           string      `json:"genre"`
	Available       bool        `json:"available"`
	Author          Author      `json:"author"`
}

// Customer never carries the password hash.
type Customer struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type BorrowingRecord struct {
	ID         uint       `json:"id"`
	Customer   Customer   `json:"customer"`
	Book       Book       `json:"book"`
	BorrowDate model.Date `json:"borrowDate" swaggertype:"string" example:"2024-01-01"`
	ReturnDate model.Date `json:"returnDate" swaggertype:"string" example:"2024-01-10"`
}

type Pagination struct {
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
	Field      string `json:"field"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"totalPages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthorResponse struct {
	Data Author `json:"data"`
}

type ListAuthorsResponse struct {
	Data       []Author   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

type ListBooksResponse struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type SearchBooksResponse struct {
	Data []Book `json:"data"`
}

type CustomerResponse struct {
	Data Customer `json:"data"`
}

type ListCustomersResponse struct {
	Data       []Customer `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type BorrowingRecordResponse struct {
	Data BorrowingRecord `json:"data"`
}

type ListBorrowingRecordsResponse struct {
	Data       []BorrowingRecord `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type SearchBorrowingRecordsResponse struct {
	Data []BorrowingRecord `json:"data"`
}

func toAuthor(a model.Author) Author {
	return Author{
		ID:          a.ID,
		Name:        a.Name,
		BirthDate:   model.NewDate(a.BirthDate),
		Nationality: a.Nationality,
	}
}

func toBook(b model.Book) Book {
	return Book{
		ID:              b.ID,
		Title:           b.Title,
		PublicationDate: model.NewDatePtr(b.PublicationDate),
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		Available:       b.Available,
		Author:          toAuthor(b.Author),
	}
}

func toCustomer(c model.Customer) Customer {
	return Customer{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
}

func toBorrowingRecord(r model.BorrowingRecord) BorrowingRecord {
	return BorrowingRecord{
		ID:         r.ID,
		Customer:   toCustomer(r.Customer),
		Book:       toBook(r.Book),
		BorrowDate: model.NewDate(r.BorrowDate),
		ReturnDate: model.NewDate(r.ReturnDate),
	}
}

func mapSlice[T, R any](items []T, f func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}

func toPagination[T any](p service.Page[T]) Pagination {
	return Pagination{
		PageNumber: p.Number,
		PageSize:   p.Size,
		Field:      p.Field,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
	}
}
