package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
)

type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomerByID)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}

// ListCustomers godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        pageNumber  query     int     false  "Zero based page number"  default(0) minimum(0)
// @Param        pageSize    query     int     false  "Items per page"          default(5) minimum(1) maximum(100)
// @Param        field       query     string  false  "Sort field"              default(id) Enums(id,name,email,phoneNumber,address)
// @Success      200         {object}  ListCustomersResponse
// @Failure      400         {object}  validation.ErrorResponse  "Unknown sort field"
// @Failure      404         {object}  validation.ErrorResponse  "No customers stored"
// @Failure      500         {object}  validation.ErrorResponse  "Internal server error"
// @Router       /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	q := parseListQuery(c)

	page, err := h.svc.List(c.Request.Context(), q.pageNumber, q.pageSize, q.field)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListCustomersResponse{
		Data:       mapSlice(page.Items, toCustomer),
		Pagination: toPagination(page),
	})
}

// GetCustomerByID godoc
// @Summary      Get a customer by ID
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer ID"
// @Success      200  {object}  CustomerResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Customer not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Data: toCustomer(*customer)})
}

// CreateCustomer godoc
// @Summary      Register a customer
// @Description  The password is stored as a bcrypt hash and never returned
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        payload  body      CustomerRequest           true  "Customer to create"
// @Success      200      {object}  CustomerResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      409      {object}  validation.ErrorResponse  "Email or phone number taken"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	customer, err := h.svc.Add(c.Request.Context(), req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Data: toCustomer(*customer)})
}

// UpdateCustomer godoc
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Customer ID"
// @Param        payload  body      CustomerRequest           true  "New customer fields"
// @Success      200      {object}  CustomerResponse
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Customer not found"
// @Failure      409      {object}  validation.ErrorResponse  "Email or phone number taken"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Data: toCustomer(*customer)})
}

// DeleteCustomer godoc
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Customer not found"
// @Failure      409  {object}  validation.ErrorResponse  "Customer still has borrowing records"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
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
