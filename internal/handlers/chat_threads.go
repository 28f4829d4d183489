package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/internal/models"
	"github.com/akshay-h-dev/milestack/internal/services"
	"github.com/akshay-h-dev/milestack/pkg/response"
)

// ChatThreadHandler serves chat threads and their embedded messages.
type ChatThreadHandler struct {
	chat *services.ChatService
}

// NewChatThreadHandler constructs a ChatThreadHandler.
func NewChatThreadHandler(chat *services.ChatService) *ChatThreadHandler {
	return &ChatThreadHandler{chat: chat}
}

type createThreadRequest struct {
	Title     string `json:"title" validate:"required"`
	ProjectID string `json:"projectId" validate:"required"`
}

// updateThreadRequest covers both PUT modes: a body carrying `message`
// appends it to the thread, anything else is a plain field patch.
type updateThreadRequest struct {
	Message  *services.MessageInput `json:"message"`
	Title    *string                `json:"title"`
	Messages *[]models.Message      `json:"messages"`
}

// GET /api/chatThreads?projectId=
func (h *ChatThreadHandler) List(c *gin.Context) {
	projectID, ok := requireProjectIDQuery(c)
	if !ok {
		return
	}

	threads, err := h.chat.ListForProject(requestContext(c), projectID, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, threads)
}

// POST /api/chatThreads
func (h *ChatThreadHandler) Create(c *gin.Context) {
	var req createThreadRequest
	if !bindAndValidate(c, &req) {
		return
	}

	thread, err := h.chat.Create(requestContext(c), req.Title, req.ProjectID, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, thread)
}

// PUT /api/chatThreads/:id
func (h *ChatThreadHandler) Update(c *gin.Context) {
	var req updateThreadRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)
	id := c.Param("id")

	var (
		thread *models.ChatThread
		err    error
	)
	if req.Message != nil {
		thread, err = h.chat.AppendMessage(ctx, id, currentUserID(c), *req.Message)
	} else {
		thread, err = h.chat.Patch(ctx, id, services.ThreadPatch{Title: req.Title, Messages: req.Messages})
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, thread)
}

// DELETE /api/chatThreads/:id
func (h *ChatThreadHandler) Delete(c *gin.Context) {
	if err := h.chat.Delete(requestContext(c), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}
