package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/search", h.SearchBooks)
		books.GET("/:id", h.GetBookByID)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  Get one page of books sorted by field
// @Tags         books
// @Produce      json
// @Param        pageNumber  query     int     false  "Zero based page number"  default(0) minimum(0)
// @Param        pageSize    query     int     false  "Items per page"          default(5) minimum(1) maximum(100)
// @Param        field       query     string  false  "Sort field"              default(id) Enums(id,title,publicationDate,isbn,genre,available,author)
// @Success      200         {object}  ListBooksResponse
// @Failure      400         {object}  validation.ErrorResponse  "Unknown sort field"
// @Failure      404         {object}  validation.ErrorResponse  "No books stored"
// @Failure      500         {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	q := parseListQuery(c)

	page, err := h.svc.List(c.Request.Context(), q.pageNumber, q.pageSize, q.field)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListBooksResponse{
		Data:       mapSlice(page.Items, toBook),
		Pagination: toPagination(page),
	})
}

// SearchBooks godoc
// @Summary      Search books
// @Description  Find books by exactly one of title, isbn or author name
// @Tags         books
// @Produce      json
// @Param        title       query     string  false  "Exact title"
// @Param        isbn        query     string  false  "Exact ISBN"
// @Param        authorName  query     string  false  "Exact author name"
// @Success      200         {object}  SearchBooksResponse
// @Failure      400         {object}  validation.ErrorResponse  "Zero or several parameters"
// @Failure      404         {object}  validation.ErrorResponse  "No books found"
// @Failure      500         {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	books, err := h.svc.Search(c.Request.Context(), service.BookSearch{
		Title:      optionalQuery(c, "title"),
		ISBN:       optionalQuery(c, "isbn"),
		AuthorName: optionalQuery(c, "authorName"),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchBooksResponse{Data: mapSlice(books, toBook)})
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book; its author is matched by name, birth date and nationality or created
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      BookRequest               true  "Book to create"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      409      {object}  validation.ErrorResponse  "Book already exists"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req BookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.svc.Add(c.Request.Context(), req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Replace every field of a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Book ID"
// @Param        payload  body      BookRequest               true  "New book fields"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req BookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      409  {object}  validation.ErrorResponse  "Book still has borrowing records"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
