package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// StatusOf maps a business error code to an HTTP status.
func StatusOf(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case code == "forbidden", code == "account_blocked":
		return http.StatusForbidden
	case code == "invalid_credentials":
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// Respond writes err. Business errors keep their code; anything else is
// reported as internalCode with a generic message.
func Respond(c *gin.Context, err error, internalCode string) {
	if code, ok := BusinessCode(err); ok {
		Write(c, StatusOf(code), code, messages[code])
		return
	}
	Internal(c, internalCode, "Ошибка сервера")
}

var messages = map[string]string{
	"appointment_not_found":    "Запись не найдена",
	"notification_not_found":   "Уведомление не найдено",
	"user_not_found":           "Пользователь не найден",
	"client_not_found":         "Клиент не найден",
	"salon_not_found":          "Салон не найден",
	"forbidden":                "Нет доступа",
	"account_blocked":          "Аккаунт заблокирован",
	"invalid_credentials":      "Неверный email или пароль",
	"email_or_username_taken":  "Email или username уже занят",
	"missing_required_fields":  "Заполните все обязательные поля",
	"nothing_to_update":        "Нет данных для обновления",
	"invalid_status":           "Неизвестный статус",
	"invalid_type":             "Неизвестный тип записи",
	"invalid_filter":           "Неизвестный фильтр",
	"invalid_reminder_minutes": "Некорректные напоминания",
	"no_recipients":            "Нет получателей для рассылки",
	"chat_not_found":           "Чат не найден",
	"chat_with_self":           "Нельзя создать чат с самим собой",
	"empty_message":            "Сообщение не может быть пустым",
}
