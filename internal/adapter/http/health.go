package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DatabaseChecker define a interface para verificar o banco de dados
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	db     DatabaseChecker
	logger *zap.Logger
}

// NewHealthChecker cria um novo health checker
func NewHealthChecker(db DatabaseChecker, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		db:     db,
		logger: logger,
	}
}

// LivenessCheck verifica se o aplicativo está vivo (execução básica)
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessCheck verifica se o aplicativo está pronto para receber tráfego
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	dbStatus := "UP"

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "DOWN"
		status = http.StatusServiceUnavailable
		h.logger.Error("health check do banco falhou", zap.Error(err))
	}
	duration := time.Since(start)

	geral := "UP"
	if status != http.StatusOK {
		geral = "DOWN"
	}

	c.JSON(status, gin.H{
		"status": geral,
		"time":   time.Now(),
		"checks": gin.H{
			"database": gin.H{
				"status":   dbStatus,
				"time":     duration.String(),
				"critical": true,
			},
		},
	})
}

// DetailedHealth fornece informações detalhadas sobre o sistema
func (h *HealthChecker) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	status := http.StatusOK
	dbStatus := "UP"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "DOWN"
		status = http.StatusServiceUnavailable
	}

	geral := "UP"
	if status != http.StatusOK {
		geral = "DOWN"
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(status, gin.H{
		"status": geral,
		"time":   time.Now(),
		"checks": gin.H{
			"database": gin.H{"status": dbStatus, "critical": true},
		},
		"system": gin.H{
			"go_version":    runtime.Version(),
			"go_os":         runtime.GOOS,
			"go_arch":       runtime.GOARCH,
			"num_cpu":       runtime.NumCPU(),
			"num_goroutine": runtime.NumGoroutine(),
			"memory_alloc": gin.H{
				"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(m.Sys) / 1024 / 1024,
				"num_gc":         m.NumGC,
			},
		},
	})
}
