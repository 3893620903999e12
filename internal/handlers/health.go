package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger is the connectivity probe the health check runs against PostgreSQL.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db       Pinger
	products int
	logger   *logrus.Logger
}

func NewHealthHandler(db Pinger, products int, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:       db,
		products: products,
		logger:   logger,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			// Serving continues from the in-memory tables even when the
			// database is unreachable; report degraded, not down.
			h.logger.WithError(err).Warn("Database ping failed")
			status = "degraded"
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":   status,
		"products": h.products,
	})
}
