package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/internal/services"
	"github.com/akshay-h-dev/milestack/pkg/response"
)

// MilestoneHandler serves milestone CRUD.
type MilestoneHandler struct {
	milestones *services.MilestoneService
}

// NewMilestoneHandler constructs a MilestoneHandler.
func NewMilestoneHandler(milestones *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

type createMilestoneRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Progress    float64 `json:"progress"`
	Status      string  `json:"status"`
	ProjectID   string  `json:"projectId" validate:"required"`
}

// GET /api/milestones?projectId=
func (h *MilestoneHandler) List(c *gin.Context) {
	projectID, ok := requireProjectIDQuery(c)
	if !ok {
		return
	}

	milestones, err := h.milestones.ListForProject(requestContext(c), projectID, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, milestones)
}

// POST /api/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req createMilestoneRequest
	if !bindAndValidate(c, &req) {
		return
	}

	milestone, err := h.milestones.Create(requestContext(c), currentUserID(c), services.CreateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, milestone)
}

// PUT /api/milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	var patch services.MilestonePatch
	if !bindAndValidate(c, &patch) {
		return
	}

	milestone, err := h.milestones.Update(requestContext(c), c.Param("id"), currentUserID(c), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, milestone)
}

// DELETE /api/milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	if err := h.milestones.Delete(requestContext(c), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}
