package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/internal/services"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
	"github.com/akshay-h-dev/milestack/pkg/response"
)

// ActivityHandler serves the per-project activity feed.
type ActivityHandler struct {
	acts    *services.ActivityService
	members *services.MembershipService
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(acts *services.ActivityService, members *services.MembershipService) *ActivityHandler {
	return &ActivityHandler{acts: acts, members: members}
}

// GET /api/activities?projectId=
func (h *ActivityHandler) List(c *gin.Context) {
	projectID, ok := requireProjectIDQuery(c)
	if !ok {
		return
	}

	ctx := requestContext(c)

	member, err := h.members.IsMember(ctx, projectID, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !member {
		response.Error(c, apperrors.ErrForbidden)
		return
	}

	feed, err := h.acts.ListForProject(ctx, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, feed)
}
