package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/beauty-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
	"github.com/BruksfildServices01/beauty-scheduler/internal/realtime"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200

	broadcastKind = "broadcast"
)

type NotificationStore interface {
	List(ctx context.Context, userID uint, isRead *bool, limit int) ([]dto.NotificationView, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	CreateBatch(ctx context.Context, recipients []uint, kind, title, message string) ([]models.Notification, error)
}

type AudienceStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	SubscriberIDs(ctx context.Context, salonID uint, audience string) ([]uint, error)
}

type Pusher interface {
	Push(userID uint, event string, payload any) int
}

// ======================================================
// HANDLER
// ======================================================

type NotificationHandler struct {
	notifications NotificationStore
	users         AudienceStore
	pusher        Pusher
	audit         *audit.Dispatcher
	logger        *slog.Logger
}

func NewNotificationHandler(
	notifications NotificationStore,
	users AudienceStore,
	pusher Pusher,
	audit *audit.Dispatcher,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		users:         users,
		pusher:        pusher,
		audit:         audit,
		logger:        logger,
	}
}

type BroadcastRequest struct {
	Audience string `json:"audience"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	var isRead *bool
	if v, ok := c.GetQuery("is_read"); ok {
		b := v == "true"
		isRead = &b
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultNotificationLimit)))
	if err != nil || limit <= 0 || limit > maxNotificationLimit {
		limit = defaultNotificationLimit
	}

	list, err := h.notifications.List(c.Request.Context(), middleware.UserID(c), isRead, limit)
	if err != nil {
		httperr.Internal(c, "notifications_list_failed", "Ошибка получения уведомлений")
		return
	}
	httpresp.OK(c, "notifications", list)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Internal(c, "unread_count_failed", "Ошибка получения количества")
		return
	}
	httpresp.OK(c, "count", count)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, err, "notification_update_failed")
		return
	}
	httpresp.Message(c, "Уведомление прочитано")
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if _, err := h.notifications.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		httperr.Internal(c, "notification_update_failed", "Ошибка обновления")
		return
	}
	httpresp.Message(c, "Все уведомления прочитаны")
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, err, "notification_delete_failed")
		return
	}
	httpresp.Message(c, "Уведомление удалено")
}

// Broadcast stores a notification for every subscriber of the caller's
// salon in the chosen audience and pushes it to those online.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.UserID(c)

	owner, err := h.users.GetByID(ctx, ownerID)
	if err != nil {
		httperr.Respond(c, err, "user_load_failed")
		return
	}
	if !owner.IsSalonOwner {
		httperr.Respond(c, httperr.ErrBusiness("forbidden"), "")
		return
	}

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if req.Title == "" || req.Message == "" {
		httperr.Respond(c, httperr.ErrBusiness("missing_required_fields"), "")
		return
	}

	switch req.Audience {
	case repository.AudienceClients, repository.AudienceMasters, repository.AudienceAll:
	default:
		httperr.BadRequest(c, "invalid_audience", "Неизвестная аудитория")
		return
	}

	// --------------------------------------------------
	// 1️⃣ Recipients
	// --------------------------------------------------
	recipients, err := h.users.SubscriberIDs(ctx, ownerID, req.Audience)
	if err != nil {
		httperr.Internal(c, "broadcast_failed", "Ошибка отправки рассылки")
		return
	}
	if len(recipients) == 0 {
		httperr.Respond(c, httperr.ErrBusiness("no_recipients"), "")
		return
	}

	// --------------------------------------------------
	// 2️⃣ Store
	// --------------------------------------------------
	created, err := h.notifications.CreateBatch(ctx, recipients, broadcastKind, req.Title, req.Message)
	if err != nil {
		h.logger.Error("broadcast insert failed", "owner_id", ownerID, "err", err)
		httperr.Internal(c, "broadcast_failed", "Ошибка отправки рассылки")
		return
	}

	// --------------------------------------------------
	// 3️⃣ Live push
	// --------------------------------------------------
	online := 0
	if h.pusher != nil {
		for _, n := range created {
			if h.pusher.Push(n.UserID, realtime.EventNotificationNew, n) > 0 {
				online++
			}
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "broadcast_sent",
		Entity:   "notification",
		Metadata: map[string]any{"audience": req.Audience, "recipients": len(created), "online": online},
	})

	httpresp.Message(c, fmt.Sprintf("Рассылка отправлена %d получателям", len(created)))
}
