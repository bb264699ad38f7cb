package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/beauty-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
	"github.com/BruksfildServices01/beauty-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type UsersHandler struct {
	users *repository.UserGormRepository
	audit *audit.Dispatcher
}

func NewUsersHandler(users *repository.UserGormRepository, audit *audit.Dispatcher) *UsersHandler {
	return &UsersHandler{users: users, audit: audit}
}

type UpdateProfileRequest struct {
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Phone    *string   `json:"phone"`
	City     string    `json:"city"`
	Services *[]string `json:"services"`
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// PROFILE
// ======================================================

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "user_load_failed")
		return
	}
	httpresp.OK(c, "user", user)
}

func (h *UsersHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		httperr.Respond(c, err, "user_load_failed")
		return
	}

	var cols []string

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
		cols = append(cols, "name")
	}
	if req.Username != "" {
		username, ok := validators.NormalizeUsername(req.Username)
		if !ok {
			httperr.BadRequest(c, "invalid_username", "Username: 4-20 символов, латиница, цифры и _")
			return
		}
		taken, err := h.users.UsernameTaken(ctx, username, userID)
		if err != nil {
			httperr.Internal(c, "user_update_failed", "Ошибка при обновлении профиля")
			return
		}
		if taken {
			httperr.BadRequest(c, "username_taken", "Username уже занят")
			return
		}
		user.Username = username
		cols = append(cols, "username")
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
		cols = append(cols, "phone")
	}
	if city := strings.TrimSpace(req.City); city != "" {
		user.City = city
		cols = append(cols, "city")
	}
	if req.Services != nil {
		user.Services = models.StringList(*req.Services)
		user.IsMaster = len(*req.Services) > 0
		cols = append(cols, "services", "is_master")
	}

	if len(cols) == 0 {
		httperr.Respond(c, httperr.ErrBusiness("nothing_to_update"), "")
		return
	}

	if err := h.users.Update(ctx, user, cols); err != nil {
		httperr.Respond(c, err, "user_update_failed")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{"fields": cols},
	})

	c.JSON(200, gin.H{"success": true, "message": "Профиль обновлен", "user": user})
}

func (h *UsersHandler) DeleteMe(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		httperr.Internal(c, "user_delete_failed", "Ошибка при удалении профиля")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &userID,
	})

	httpresp.Message(c, "Профиль удален")
}

// ======================================================
// SALONS
// ======================================================

func (h *UsersHandler) SearchSalons(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if len([]rune(query)) < 2 {
		httperr.BadRequest(c, "query_too_short", "Запрос должен быть минимум 2 символа")
		return
	}

	salons, err := h.users.SearchSalons(c.Request.Context(), query, 20)
	if err != nil {
		httperr.Internal(c, "salon_search_failed", "Ошибка поиска")
		return
	}
	httpresp.OK(c, "salons", salons)
}

func (h *UsersHandler) Subscribe(c *gin.Context) {
	salonID, ok := parseID(c, "salonId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	salon, err := h.users.GetByID(ctx, salonID)
	if err != nil || !salon.IsSalonOwner {
		if err == nil || httperr.IsBusiness(err, "user_not_found") {
			httperr.Respond(c, httperr.ErrBusiness("salon_not_found"), "")
			return
		}
		httperr.Internal(c, "subscribe_failed", "Ошибка подписки")
		return
	}

	if err := h.users.SetSubscription(ctx, middleware.UserID(c), &salon.ID); err != nil {
		httperr.Internal(c, "subscribe_failed", "Ошибка подписки")
		return
	}
	httpresp.Message(c, "Вы подписались на салон")
}

func (h *UsersHandler) Unsubscribe(c *gin.Context) {
	if err := h.users.SetSubscription(c.Request.Context(), middleware.UserID(c), nil); err != nil {
		httperr.Internal(c, "unsubscribe_failed", "Ошибка отписки")
		return
	}
	httpresp.Message(c, "Вы отписались от салона")
}

func (h *UsersHandler) Subscribers(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	owner, err := h.users.GetByID(ctx, userID)
	if err != nil {
		httperr.Respond(c, err, "user_load_failed")
		return
	}
	if !owner.IsSalonOwner {
		httperr.Respond(c, httperr.ErrBusiness("forbidden"), "")
		return
	}

	audience := repository.AudienceClients
	if c.Query("type") == repository.AudienceMasters {
		audience = repository.AudienceMasters
	}

	subs, err := h.users.Subscribers(ctx, userID, audience)
	if err != nil {
		httperr.Internal(c, "subscribers_failed", "Ошибка получения подписчиков")
		return
	}
	httpresp.OK(c, "subscribers", subs)
}
