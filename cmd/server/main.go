package main

// @title           Library Management API
// @version         1.0
// @description     API for managing authors, books, customers and borrowing records.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1/library

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/config"
	"github.com/snnyvrz/library-api/internal/db"
	docs "github.com/snnyvrz/library-api/internal/docs"
	"github.com/snnyvrz/library-api/internal/handler"
	"github.com/snnyvrz/library-api/internal/password"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	appVersion      = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	startTime := time.Now()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithRetry(ctx, cfg)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(database); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	authors := repository.NewGormAuthorRepository(database)
	books := repository.NewGormBookRepository(database)
	customers := repository.NewGormCustomerRepository(database)
	records := repository.NewGormBorrowingRecordRepository(database)

	c := cache.New(cfg.CacheTTL)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	e := handler.NewEngine(logger)

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = handler.BasePath

	healthHandler := handler.NewHealthHandler(database, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	handler.RegisterLibraryRoutes(e, handler.Services{
		Authors:    service.NewAuthorService(authors, c),
		Books:      service.NewBookService(books, authors, c),
		Customers:  service.NewCustomerService(customers, hasher, c),
		Borrowings: service.NewBorrowingService(records, books, customers, c),
	})

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr, "driver", cfg.DBDriver, "cache_ttl", cfg.CacheTTL.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("server stopped")
}
