package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/internal/services"
	"github.com/akshay-h-dev/milestack/pkg/response"
)

// InviteHandler serves invite creation, listing and the public invite page lookup.
type InviteHandler struct {
	invites *services.InviteService
	acts    *services.ActivityService
}

// NewInviteHandler constructs an InviteHandler.
func NewInviteHandler(invites *services.InviteService, acts *services.ActivityService) *InviteHandler {
	return &InviteHandler{invites: invites, acts: acts}
}

type createInviteRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId" validate:"required"`
}

// GET /api/invites?projectId=
func (h *InviteHandler) List(c *gin.Context) {
	projectID := strings.TrimSpace(c.Query("projectId"))

	invites, err := h.invites.List(requestContext(c), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, invites)
}

// POST /api/invites
func (h *InviteHandler) Create(c *gin.Context) {
	var req createInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)

	invite, err := h.invites.Create(ctx, req.ProjectID, req.Email, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	if _, err := h.acts.Log(ctx, invite.ProjectID, currentUserID(c), fmt.Sprintf("invited %s", invite.Email)); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, invite)
}

// GET /api/invites/:id — unauthenticated, backs the pre-signup invite page.
func (h *InviteHandler) Get(c *gin.Context) {
	invite, err := h.invites.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, invite)
}
