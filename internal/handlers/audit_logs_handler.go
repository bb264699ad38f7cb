package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogStore interface {
	List(ctx context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLogStore
}

func NewAuditLogsHandler(logs AuditLogStore) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List shows the caller's own audit trail. ?appointment_id= narrows it to
// one appointment, which with ?action=reminder_sent is its reminder history.
func (h *AuditLogsHandler) List(c *gin.Context) {
	f := repository.AuditLogFilter{
		UserID: middleware.UserID(c),
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	if v := c.Query("appointment_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор")
			return
		}
		f.AppointmentID = uint(id)
	}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.DateOnly, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Некорректная дата")
			return
		}
		f.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.DateOnly, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Некорректная дата")
			return
		}
		f.To = to.AddDate(0, 0, 1)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if f.Limit <= 0 || f.Limit > maxAuditLimit {
		f.Limit = defaultAuditLimit
	}
	f.Offset = (page - 1) * f.Limit

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Ошибка получения журнала")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    page,
		"limit":   f.Limit,
		"total":   total,
		"logs":    logs,
	})
}
