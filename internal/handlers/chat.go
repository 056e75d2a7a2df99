package handlers

import (
	"strconv"

	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ChatHandler exposes the per-project chat.
type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{chatService: services.NewChatService(db)}
}

// Messages returns the chat history of a project.
// GET /api/projects/:id/chat
func (h *ChatHandler) Messages(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	messages, err := h.chatService.Messages(uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, messages)
}

// PostMessage posts a message into a project chat. Members only.
// POST /api/projects/:id/chat
func (h *ChatHandler) PostMessage(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.chatService.PostMessage(uint(projectID), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, msg)
}
