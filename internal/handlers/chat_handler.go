package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	ucChat "github.com/BruksfildServices01/beauty-scheduler/internal/usecase/chat"
)

// ======================================================
// HANDLER
// ======================================================

type ChatHandler struct {
	listUC     *ucChat.ListChats
	openUC     *ucChat.OpenChat
	messagesUC *ucChat.ListMessages
	sendUC     *ucChat.SendMessage
	readUC     *ucChat.MarkChatRead
	deleteUC   *ucChat.DeleteChat
	now        func() time.Time
}

func NewChatHandler(
	listUC *ucChat.ListChats,
	openUC *ucChat.OpenChat,
	messagesUC *ucChat.ListMessages,
	sendUC *ucChat.SendMessage,
	readUC *ucChat.MarkChatRead,
	deleteUC *ucChat.DeleteChat,
) *ChatHandler {
	return &ChatHandler{
		listUC:     listUC,
		openUC:     openUC,
		messagesUC: messagesUC,
		sendUC:     sendUC,
		readUC:     readUC,
		deleteUC:   deleteUC,
		now:        time.Now,
	}
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// ======================================================
// CHATS
// ======================================================

func (h *ChatHandler) List(c *gin.Context) {
	chats, err := h.listUC.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Internal(c, "chats_list_failed", "Ошибка получения чатов")
		return
	}
	httpresp.OK(c, "chats", chats)
}

// Open returns the direct chat with :userId, creating it on first contact.
func (h *ChatHandler) Open(c *gin.Context) {
	otherID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	chat, err := h.openUC.Execute(c.Request.Context(), middleware.UserID(c), otherID)
	if err != nil {
		httperr.Respond(c, err, "chat_open_failed")
		return
	}
	httpresp.OK(c, "chat", chat)
}

func (h *ChatHandler) Delete(c *gin.Context) {
	chatID, ok := parseID(c, "chatId")
	if !ok {
		return
	}
	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), chatID); err != nil {
		httperr.Respond(c, err, "chat_delete_failed")
		return
	}
	httpresp.Message(c, "Чат удален")
}

// ======================================================
// MESSAGES
// ======================================================

func (h *ChatHandler) Messages(c *gin.Context) {
	chatID, ok := parseID(c, "chatId")
	if !ok {
		return
	}

	var page domain.Page
	if v := c.Query("limit"); v != "" {
		page.Limit, _ = strconv.Atoi(v)
	}
	if v := c.Query("before"); v != "" {
		before, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор")
			return
		}
		page.BeforeID = uint(before)
	}

	msgs, err := h.messagesUC.Execute(c.Request.Context(), middleware.UserID(c), chatID, page, h.now())
	if err != nil {
		httperr.Respond(c, err, "messages_list_failed")
		return
	}
	httpresp.OK(c, "messages", msgs)
}

func (h *ChatHandler) Send(c *gin.Context) {
	chatID, ok := parseID(c, "chatId")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	msg, err := h.sendUC.Execute(c.Request.Context(), middleware.UserID(c), chatID, req.Text, h.now())
	if err != nil {
		httperr.Respond(c, err, "message_send_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	chatID, ok := parseID(c, "chatId")
	if !ok {
		return
	}
	if _, err := h.readUC.Execute(c.Request.Context(), middleware.UserID(c), chatID, h.now()); err != nil {
		httperr.Respond(c, err, "chat_update_failed")
		return
	}
	httpresp.Message(c, "Сообщения прочитаны")
}
