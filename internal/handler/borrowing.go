package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
)

type BorrowingHandler struct {
	svc *service.BorrowingService
}

func NewBorrowingHandler(svc *service.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{svc: svc}
}

func (h *BorrowingHandler) RegisterRoutes(r *gin.RouterGroup) {
	borrowings := r.Group("/borrowings")
	{
		borrowings.GET("", h.ListBorrowings)
		borrowings.GET("/search", h.SearchBorrowings)
		borrowings.GET("/:id", h.GetBorrowingByID)
		borrowings.POST("", h.CreateBorrowing)
		borrowings.PUT("/:id", h.UpdateBorrowing)
		borrowings.DELETE("/:id", h.DeleteBorrowing)
	}
}

// ListBorrowings godoc
// @Summary      List borrowing records
// @Tags         borrowings
// @Produce      json
// @Param        pageNumber  query     int     false  "Zero based page number"  default(0) minimum(0)
// @Param        pageSize    query     int     false  "Items per page"          default(5) minimum(1) maximum(100)
// @Param        field       query     string  false  "Sort field"              default(id) Enums(id,borrowDate,returnDate,customer,book)
// @Success      200         {object}  ListBorrowingRecordsResponse
// @Failure      400         {object}  validation.ErrorResponse  "Unknown sort field"
// @Failure      404         {object}  validation.ErrorResponse  "No records stored"
// @Failure      500         {object}  validation.ErrorResponse  "Internal server error"
// @Router       /borrowings [get]
func (h *BorrowingHandler) ListBorrowings(c *gin.Context) {
	q := parseListQuery(c)

	page, err := h.svc.List(c.Request.Context(), q.pageNumber, q.pageSize, q.field)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListBorrowingRecordsResponse{
		Data:       mapSlice(page.Items, toBorrowingRecord),
		Pagination: toPagination(page),
	})
}

// SearchBorrowings godoc
// @Summary      Search borrowing records
// @Description  Find records by exactly one of customer ID or book ID
// @Tags         borrowings
// @Produce      json
// @Param        customerId  query     int  false  "Customer ID"
// @Param        bookId      query     int  false  "Book ID"
// @Success      200         {object}  SearchBorrowingRecordsResponse
// @Failure      400         {object}  validation.ErrorResponse  "Zero or both parameters"
// @Failure      404         {object}  validation.ErrorResponse  "No records found"
// @Failure      500         {object}  validation.ErrorResponse  "Internal server error"
// @Router       /borrowings/search [get]
func (h *BorrowingHandler) SearchBorrowings(c *gin.Context) {
	customerID, ok := parseUintQuery(c, "customerId")
	if !ok {
		writeError(c, http.StatusBadRequest,
			CodeInvalidID,
			"customerId must be a positive integer",
		)
		return
	}

	bookID, ok := parseUintQuery(c, "bookId")
	if !ok {
		writeError(c, http.StatusBadRequest,
			CodeInvalidID,
			"bookId must be a positive integer",
		)
		return
	}

	records, err := h.svc.Search(c.Request.Context(), service.RecordSearch{
		CustomerID: customerID,
		BookID:     bookID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchBorrowingRecordsResponse{Data: mapSlice(records, toBorrowingRecord)})
}

// GetBorrowingByID godoc
// @Summary      Get a borrowing record by ID
// @Tags         borrowings
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  BorrowingRecordResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Record not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /borrowings/{id} [get]
func (h *BorrowingHandler) GetBorrowingByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, BorrowingRecordResponse{Data: toBorrowingRecord(*record)})
}

// CreateBorrowing godoc
// @Summary      Borrow a book
// @Description  Record that a customer borrows an available book between two dates
// @Tags         borrowings
// @Accept       json
// @Produce      json
// @Param        payload  body      BorrowingRequest          true  "Borrowing to record"
// @Success      200      {object}  BorrowingRecordResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error, unavailable book or reversed dates"
// @Failure      404      {object}  validation.ErrorResponse  "Book or customer not found"
// @Failure      409      {object}  validation.ErrorResponse  "Record already exists for this book and customer"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /borrowings [post]
func (h *BorrowingHandler) CreateBorrowing(c *gin.Context) {
	var req BorrowingRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	record, err := h.svc.Add(c.Request.Context(), req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, BorrowingRecordResponse{Data: toBorrowingRecord(*record)})
}

// UpdateBorrowing godoc
// @Summary      Update a borrowing record
// @Tags         borrowings
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Record ID"
// @Param        payload  body      BorrowingRequest          true  "New record fields"
// @Success      200      {object}  BorrowingRecordResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error, unavailable book or reversed dates"
// @Failure      404      {object}  validation.ErrorResponse  "Record, book or customer not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /borrowings/{id} [put]
func (h *BorrowingHandler) UpdateBorrowing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req BorrowingRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	record, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, BorrowingRecordResponse{Data: toBorrowingRecord(*record)})
}

// DeleteBorrowing godoc
// @Summary      Delete a borrowing record
// @Tags         borrowings
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Record not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /borrowings/{id} [delete]
func (h *BorrowingHandler) DeleteBorrowing(c *gin.Context) {
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
