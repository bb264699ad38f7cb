package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	"github.com/BruksfildServices01/beauty-scheduler/internal/auth"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/beauty-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
	"github.com/BruksfildServices01/beauty-scheduler/internal/validators"
)

type AuthHandler struct {
	users  *repository.UserGormRepository
	tokens *auth.Tokens
	audit  *audit.Dispatcher
	logger *slog.Logger
}

func NewAuthHandler(
	users *repository.UserGormRepository,
	tokens *auth.Tokens,
	audit *audit.Dispatcher,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, audit: audit, logger: logger}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string   `json:"email" binding:"required"`
	Password string   `json:"password" binding:"required,min=6"`
	Name     string   `json:"name" binding:"required"`
	Username string   `json:"username" binding:"required"`
	Phone    string   `json:"phone"`
	City     string   `json:"city"`
	Services []string `json:"services"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if email == "" {
		httperr.BadRequest(c, "invalid_email", "Некорректный email")
		return
	}

	username, ok := validators.NormalizeUsername(req.Username)
	if !ok {
		httperr.BadRequest(c, "invalid_username", "Username: 4-20 символов, латиница, цифры и _")
		return
	}

	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		httperr.BadRequest(c, "invalid_name", "Имя должно быть не короче 2 символов")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Ошибка при регистрации")
		return
	}

	user := models.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		City:         strings.TrimSpace(req.City),
		IsMaster:     len(req.Services) > 0,
		Services:     models.StringList(req.Services),
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		h.logger.Error("register failed", "err", err)
		httperr.Respond(c, err, "failed_to_create_user")
		return
	}

	token, err := h.tokens.Issue(user.ID, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Ошибка при регистрации")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Пользователь создан",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.Respond(c, httperr.ErrBusiness("invalid_credentials"), "")
			return
		}
		httperr.Internal(c, "internal_error", "Ошибка при входе")
		return
	}

	if user.IsBlocked {
		httperr.Respond(c, httperr.ErrBusiness("account_blocked"), "")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Respond(c, httperr.ErrBusiness("invalid_credentials"), "")
		return
	}

	now := time.Now()
	if err := h.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		h.logger.Warn("last_login not updated", "user_id", user.ID, "err", err)
	}
	user.LastLogin = &now

	token, err := h.tokens.Issue(user.ID, now)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Ошибка при входе")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Вход выполнен",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, "user_load_failed")
		return
	}
	if user.IsBlocked {
		httperr.Respond(c, httperr.ErrBusiness("account_blocked"), "")
		return
	}
	httpresp.OK(c, "user", user)
}
