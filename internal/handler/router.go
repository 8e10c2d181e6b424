package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
)

const BasePath = "/api/v1/library"

type Services struct {
	Authors    *service.AuthorService
	Books      *service.BookService
	Customers  *service.CustomerService
	Borrowings *service.BorrowingService
}

// NewEngine returns a gin engine with recovery, request ids and request
// logging installed.
func NewEngine(logger *slog.Logger) *gin.Engine {
	validation.Register()

	e := gin.New()
	e.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	return e
}

// RegisterLibraryRoutes mounts every library resource under BasePath.
func RegisterLibraryRoutes(e *gin.Engine, s Services) *gin.RouterGroup {
	api := e.Group(BasePath)
	{
		NewAuthorHandler(s.Authors).RegisterRoutes(api)
		NewBookHandler(s.Books).RegisterRoutes(api)
		NewCustomerHandler(s.Customers).RegisterRoutes(api)
		NewBorrowingHandler(s.Borrowings).RegisterRoutes(api)
	}
	return api
}
