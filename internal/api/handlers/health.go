package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports whether the backing services are usable
type HealthHandler struct {
	db       *gorm.DB
	services map[string]bool
}

// NewHealthHandler takes the database and which optional backends were
// configured at startup (coaches, audio)
func NewHealthHandler(db *gorm.DB, services map[string]bool) *HealthHandler {
	return &HealthHandler{db: db, services: services}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "ok"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "unreachable"
		}
	}

	services := gin.H{}
	for name, ready := range h.services {
		if ready {
			services[name] = "enabled"
		} else {
			services[name] = "disabled"
		}
	}

	code, status := http.StatusOK, "healthy"
	if dbStatus == "unreachable" {
		code, status = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"services": services,
	})
}
