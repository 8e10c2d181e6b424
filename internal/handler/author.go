package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
)

type AuthorHandler struct {
	svc *service.AuthorService
}

func NewAuthorHandler(svc *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.POST("", h.CreateAuthor)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get one page of authors sorted by field
// @Tags         authors
// @Produce      json
// @Param        pageNumber  query     int     false  "Zero based page number"  default(0) minimum(0)
// @Param        pageSize    query     int     false  "Items per page"          default(5) minimum(1) maximum(100)
// @Param        field       query     string  false  "Sort field"              default(id) Enums(id,name,birthDate,nationality)
// @Success      200         {object}  ListAuthorsResponse
// @Failure      400         {object}  validation.ErrorResponse  "Unknown sort field"
// @Failure      404         {object}  validation.ErrorResponse  "No authors stored"
// @Failure      500         {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	q := parseListQuery(c)

	page, err := h.svc.List(c.Request.Context(), q.pageNumber, q.pageSize, q.field)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListAuthorsResponse{
		Data:       mapSlice(page.Items, toAuthor),
		Pagination: toPagination(page),
	})
}

// GetAuthorByID godoc
// @Summary      Get an author by ID
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	author, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// CreateAuthor godoc
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      AuthorRequest             true  "Author to create"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      409      {object}  validation.ErrorResponse  "Author already exists"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author, err := h.svc.Add(c.Request.Context(), req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Replace every field of an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Author ID"
// @Param        payload  body      AuthorRequest             true  "New author fields"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      409  {object}  validation.ErrorResponse  "Author still has books"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
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
