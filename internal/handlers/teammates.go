package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/internal/services"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
	"github.com/akshay-h-dev/milestack/pkg/response"
)

// TeammateHandler serves project member listings and removal.
type TeammateHandler struct {
	members *services.MembershipService
	acts    *services.ActivityService
}

// NewTeammateHandler constructs a TeammateHandler.
func NewTeammateHandler(members *services.MembershipService, acts *services.ActivityService) *TeammateHandler {
	return &TeammateHandler{members: members, acts: acts}
}

// GET /api/teammates?projectId=
func (h *TeammateHandler) List(c *gin.Context) {
	projectID, ok := requireProjectIDQuery(c)
	if !ok {
		return
	}

	teammates, err := h.members.Teammates(requestContext(c), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, teammates)
}

// DELETE /api/teammates/:id?projectId=
func (h *TeammateHandler) Remove(c *gin.Context) {
	projectID, ok := requireProjectIDQuery(c)
	if !ok {
		return
	}

	ctx := requestContext(c)
	callerID := currentUserID(c)

	leader, err := h.members.IsLeader(ctx, projectID, callerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !leader {
		response.Error(c, apperrors.ErrForbidden)
		return
	}

	if err := h.members.RemoveMember(ctx, projectID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	if _, err := h.acts.Log(ctx, projectID, callerID, "removed a teammate"); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}
