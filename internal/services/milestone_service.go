package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

// ErrMilestoneNotFound indicates the requested milestone does not exist.
var ErrMilestoneNotFound = apperrors.NewNotFound("milestone not found")

// CreateMilestoneInput carries the fields accepted at milestone creation.
// Progress defaults to 0 and Status to "pending" when omitted.
type CreateMilestoneInput struct {
	Title       string
	Description string
	DueDate     *string
	Progress    float64
	Status      string
	ProjectID   string
}

// MilestonePatch lists the mutable milestone fields.
type MilestonePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Status      *string  `json:"status"`
	Progress    *float64 `json:"progress"`
}

// MilestoneService implements milestone CRUD with the same authorization
// shape as tasks: membership on listing, authentication only on mutation.
type MilestoneService struct {
	db      *gorm.DB
	members *MembershipService
	acts    *ActivityService
}

// NewMilestoneService constructs a MilestoneService.
func NewMilestoneService(db *gorm.DB, members *MembershipService, acts *ActivityService) (*MilestoneService, error) {
	if db == nil {
		return nil, errors.New("milestone service: db is required")
	}
	if members == nil {
		return nil, errors.New("milestone service: membership service is required")
	}
	if acts == nil {
		return nil, errors.New("milestone service: activity service is required")
	}
	return &MilestoneService{db: db, members: members, acts: acts}, nil
}

// ListForProject returns the project's milestones, requiring membership.
func (s *MilestoneService) ListForProject(ctx context.Context, projectID, callerID string) ([]models.Milestone, error) {
	ctx = ensureContext(ctx)

	member, err := s.members.IsMember(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrForbidden
	}

	var milestones []models.Milestone
	if err := s.db.WithContext(ctx).Where(map[string]any{"project_id": projectID}).Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("milestone service: list: %w", err)
	}

	return milestones, nil
}

// Create inserts a milestone and logs "created milestone: <title>".
func (s *MilestoneService) Create(ctx context.Context, callerID string, input CreateMilestoneInput) (*models.Milestone, error) {
	ctx = ensureContext(ctx)

	status := input.Status
	if status == "" {
		status = "pending"
	}

	milestone := models.Milestone{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Progress:    input.Progress,
		Status:      status,
		ProjectID:   input.ProjectID,
	}

	if err := s.db.WithContext(ctx).Create(&milestone).Error; err != nil {
		return nil, fmt.Errorf("milestone service: create: %w", err)
	}

	if _, err := s.acts.Log(ctx, milestone.ProjectID, callerID, fmt.Sprintf("created milestone: %s", milestone.Title)); err != nil {
		return nil, err
	}

	return &milestone, nil
}

// Update applies the whitelist patch and logs "updated milestone: <title>".
func (s *MilestoneService) Update(ctx context.Context, id, callerID string, patch MilestonePatch) (*models.Milestone, error) {
	ctx = ensureContext(ctx)

	var milestone models.Milestone
	err := s.db.WithContext(ctx).First(&milestone, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMilestoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("milestone service: load: %w", err)
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Progress != nil {
		updates["progress"] = *patch.Progress
	}

	if len(updates) == 0 {
		updates["updated_at"] = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Model(&milestone).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("milestone service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).First(&milestone, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("milestone service: reload: %w", err)
	}

	if _, err := s.acts.Log(ctx, milestone.ProjectID, callerID, fmt.Sprintf("updated milestone: %s", milestone.Title)); err != nil {
		return nil, err
	}

	return &milestone, nil
}

// Delete removes the milestone and logs "deleted milestone: <title>".
func (s *MilestoneService) Delete(ctx context.Context, id, callerID string) error {
	ctx = ensureContext(ctx)

	var milestone models.Milestone
	err := s.db.WithContext(ctx).First(&milestone, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMilestoneNotFound
	}
	if err != nil {
		return fmt.Errorf("milestone service: load: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Milestone{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("milestone service: delete: %w", err)
	}

	if _, err := s.acts.Log(ctx, milestone.ProjectID, callerID, fmt.Sprintf("deleted milestone: %s", milestone.Title)); err != nil {
		return err
	}

	return nil
}
