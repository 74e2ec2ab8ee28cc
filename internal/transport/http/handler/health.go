package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docqa/internal/bootstrap"
	"docqa/internal/repository"
)

type HealthHandler struct {
	app     *bootstrap.App
	records *repository.EmbeddingRecordRepository
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App, records *repository.EmbeddingRecordRepository) *HealthHandler {
	return &HealthHandler{app: app, records: records}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storeStatus := h.checkStore(ctx)
	deps := gin.H{"store": storeStatus}
	allOK := storeStatus.OK

	if h.app.Redis != nil {
		redisStatus := h.checkRedis(ctx)
		deps["redis"] = redisStatus
		allOK = allOK && redisStatus.OK
	}

	statusCode := http.StatusOK
	if !allOK {
		statusCode = http.StatusServiceUnavailable
	}

	body := gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
	}
	if storeStatus.OK {
		if n, err := h.records.Count(); err == nil {
			body["indexed_chunks"] = n
		}
	}
	c.JSON(statusCode, body)
}

func (h *HealthHandler) checkStore(ctx context.Context) dependencyStatus {
	sqlDB, err := h.app.DB.DB()
	if err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}
