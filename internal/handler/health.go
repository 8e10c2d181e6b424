package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	db        *gorm.DB
	startTime time.Time
	version   string
}

func NewHealthHandler(db *gorm.DB, startTime time.Time, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: startTime,
		version:   version,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime"`
}

type StoreStatus struct {
	Driver string `json:"driver"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type ReadyResponse struct {
	HealthResponse
	DB StoreStatus `json:"db"`
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

func (h *HealthHandler) status(s string) HealthResponse {
	return HealthResponse{
		Status:  s,
		Version: h.version,
		Uptime:  int64(time.Since(h.startTime).Seconds()),
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.status("ok"))
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Pings the store
// @Tags         health
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	store := StoreStatus{Driver: h.db.Dialector.Name(), Status: "up"}

	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		store.Status = "down"
		store.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			HealthResponse: h.status("unhealthy"),
			DB:             store,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		HealthResponse: h.status("ready"),
		DB:             store,
	})
}
