package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

// ErrProjectNotFound indicates the requested project does not exist.
var ErrProjectNotFound = apperrors.NewNotFound("project not found")

// ProjectPatch lists the mutable project fields. Nil fields are left alone.
type ProjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ProjectService implements project lifecycle operations. Creating a project
// makes the creator its permanent leader.
type ProjectService struct {
	db      *gorm.DB
	members *MembershipService
	acts    *ActivityService
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *gorm.DB, members *MembershipService, acts *ActivityService) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	if members == nil {
		return nil, errors.New("project service: membership service is required")
	}
	if acts == nil {
		return nil, errors.New("project service: activity service is required")
	}
	return &ProjectService{db: db, members: members, acts: acts}, nil
}

// Create inserts a project owned by creatorID with a leader membership row
// and a "created the project" activity.
func (s *ProjectService) Create(ctx context.Context, creatorID, title, description string) (*models.Project, error) {
	ctx = ensureContext(ctx)

	project := models.Project{
		Title:       title,
		Description: description,
		Status:      "running",
		Members:     datatypes.JSONSlice[string]{creatorID},
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("project service: create: %w", err)
	}

	if _, err := s.members.AddMember(ctx, project.ID, creatorID, models.RoleLeader); err != nil {
		return nil, err
	}
	if _, err := s.acts.Log(ctx, project.ID, creatorID, "created the project"); err != nil {
		return nil, err
	}

	return &project, nil
}

// Get loads a project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	ctx = ensureContext(ctx)

	var project models.Project
	err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project service: get: %w", err)
	}

	return &project, nil
}

// ListForUser returns the projects the user has a membership row in,
// insertion order preserved.
func (s *ProjectService) ListForUser(ctx context.Context, userID string) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	memberships, err := s.members.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Project, 0, len(memberships))
	var projects []models.Project
	if err := s.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project service: list: %w", err)
	}

	byProject := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		byProject[m.ProjectID] = true
	}
	for _, p := range projects {
		if byProject[p.ID] {
			visible = append(visible, p)
		}
	}

	return visible, nil
}

// Update applies the whitelist patch and logs "updated the project".
func (s *ProjectService) Update(ctx context.Context, id, userID string, patch ProjectPatch) (*models.Project, error) {
	ctx = ensureContext(ctx)

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("project service: update: %w", err)
		}
	}

	if _, err := s.acts.Log(ctx, project.ID, userID, fmt.Sprintf("updated the project: %s", project.Title)); err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes the project. Only the leader may delete it; the activity is
// logged before the row disappears so the feed keeps a trace.
func (s *ProjectService) Delete(ctx context.Context, id, userID string) error {
	ctx = ensureContext(ctx)

	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	leader, err := s.members.IsLeader(ctx, id, userID)
	if err != nil {
		return err
	}
	if !leader {
		return apperrors.ErrForbidden
	}

	if _, err := s.acts.Log(ctx, project.ID, userID, fmt.Sprintf("deleted the project: %s", project.Title)); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("project service: delete: %w", err)
	}

	return nil
}
