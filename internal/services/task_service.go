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

// ErrTaskNotFound indicates the requested task does not exist.
var ErrTaskNotFound = apperrors.NewNotFound("task not found")

// CreateTaskInput carries the fields accepted at task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	AssigneeID  *string
	ProjectID   string
}

// TaskPatch lists the mutable task fields. Nil fields are left alone; keys
// outside this whitelist never reach the store.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assigneeId"`
}

// TaskService implements task CRUD. Listing requires project membership;
// update and delete by id intentionally check only authentication, matching
// the upstream behaviour.
type TaskService struct {
	db      *gorm.DB
	members *MembershipService
	acts    *ActivityService
}

// NewTaskService constructs a TaskService.
func NewTaskService(db *gorm.DB, members *MembershipService, acts *ActivityService) (*TaskService, error) {
	if db == nil {
		return nil, errors.New("task service: db is required")
	}
	if members == nil {
		return nil, errors.New("task service: membership service is required")
	}
	if acts == nil {
		return nil, errors.New("task service: activity service is required")
	}
	return &TaskService{db: db, members: members, acts: acts}, nil
}

// ListForProject returns the project's tasks, requiring callerID to be a member.
func (s *TaskService) ListForProject(ctx context.Context, projectID, callerID string) ([]models.Task, error) {
	ctx = ensureContext(ctx)

	member, err := s.members.IsMember(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrForbidden
	}

	var tasks []models.Task
	if err := s.db.WithContext(ctx).Where(map[string]any{"project_id": projectID}).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task service: list: %w", err)
	}

	return tasks, nil
}

// Create inserts a task and logs "created task: <title>".
func (s *TaskService) Create(ctx context.Context, callerID string, input CreateTaskInput) (*models.Task, error) {
	ctx = ensureContext(ctx)

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		AssigneeID:  input.AssigneeID,
		ProjectID:   input.ProjectID,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("task service: create: %w", err)
	}

	if _, err := s.acts.Log(ctx, task.ProjectID, callerID, fmt.Sprintf("created task: %s", task.Title)); err != nil {
		return nil, err
	}

	return &task, nil
}

// Update applies the whitelist patch and logs "updated task: <title>".
func (s *TaskService) Update(ctx context.Context, id, callerID string, patch TaskPatch) (*models.Task, error) {
	ctx = ensureContext(ctx)

	var task models.Task
	err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("task service: load: %w", err)
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.AssigneeID != nil {
		updates["assignee_id"] = *patch.AssigneeID
	}

	// The record is re-stamped even for an empty patch.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("task service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("task service: reload: %w", err)
	}

	if _, err := s.acts.Log(ctx, task.ProjectID, callerID, fmt.Sprintf("updated task: %s", task.Title)); err != nil {
		return nil, err
	}

	return &task, nil
}

// Delete removes the task and logs "deleted task: <title>".
func (s *TaskService) Delete(ctx context.Context, id, callerID string) error {
	ctx = ensureContext(ctx)

	var task models.Task
	err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("task service: load: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("task service: delete: %w", err)
	}

	if _, err := s.acts.Log(ctx, task.ProjectID, callerID, fmt.Sprintf("deleted task: %s", task.Title)); err != nil {
		return err
	}

	return nil
}
