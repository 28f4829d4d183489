package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
)

// Teammate is a project member joined with the user record for display.
type Teammate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
	Role   string `json:"role"`
}

// MembershipService maintains project membership rows. The leader role is
// assigned once at project creation and is permanent: AddMember never
// downgrades it and RemoveMember never deletes it.
type MembershipService struct {
	db *gorm.DB
}

// NewMembershipService constructs a MembershipService.
func NewMembershipService(db *gorm.DB) (*MembershipService, error) {
	if db == nil {
		return nil, errors.New("membership service: db is required")
	}
	return &MembershipService{db: db}, nil
}

// AddMember upserts the membership row for (projectID, userID). An existing
// row keeps its role if it is leader; otherwise the role is refreshed.
func (s *MembershipService) AddMember(ctx context.Context, projectID, userID, role string) (*models.ProjectMember, error) {
	ctx = ensureContext(ctx)

	if role == "" {
		role = models.RoleMember
	}

	var existing models.ProjectMember
	err := s.db.WithContext(ctx).
		Where(map[string]any{"project_id": projectID, "user_id": userID}).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.Role != models.RoleLeader && existing.Role != role {
			if err := s.db.WithContext(ctx).Model(&existing).Update("role", role).Error; err != nil {
				return nil, fmt.Errorf("membership service: refresh role: %w", err)
			}
			existing.Role = role
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, fmt.Errorf("membership service: lookup: %w", err)
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, fmt.Errorf("membership service: add member: %w", err)
	}

	return &member, nil
}

// RemoveMember deletes every non-leader membership row for the pair. Leader
// rows are silently preserved; that is policy, not an error.
func (s *MembershipService) RemoveMember(ctx context.Context, projectID, userID string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Where(map[string]any{"project_id": projectID, "user_id": userID}).
		Where("role <> ?", models.RoleLeader).
		Delete(&models.ProjectMember{}).Error
	if err != nil {
		return fmt.Errorf("membership service: remove member: %w", err)
	}

	return nil
}

// IsMember reports whether any membership row exists for the pair.
func (s *MembershipService) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where(map[string]any{"project_id": projectID, "user_id": userID}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("membership service: member lookup: %w", err)
	}

	return count > 0, nil
}

// IsLeader reports whether a leader row exists for the pair.
func (s *MembershipService) IsLeader(ctx context.Context, projectID, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where(map[string]any{"project_id": projectID, "user_id": userID, "role": models.RoleLeader}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("membership service: leader lookup: %w", err)
	}

	return count > 0, nil
}

// ListForUser returns every membership row for a user across projects.
func (s *MembershipService) ListForUser(ctx context.Context, userID string) ([]models.ProjectMember, error) {
	ctx = ensureContext(ctx)

	var memberships []models.ProjectMember
	err := s.db.WithContext(ctx).
		Where(map[string]any{"user_id": userID}).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("membership service: list for user: %w", err)
	}

	return memberships, nil
}

// Teammates returns the project's members joined with their user records,
// leader sorted first. Membership rows pointing at deleted users are skipped.
func (s *MembershipService) Teammates(ctx context.Context, projectID string) ([]Teammate, error) {
	ctx = ensureContext(ctx)

	var memberships []models.ProjectMember
	err := s.db.WithContext(ctx).
		Where(map[string]any{"project_id": projectID}).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("membership service: list members: %w", err)
	}

	teammates := make([]Teammate, 0, len(memberships))
	for _, m := range memberships {
		var user models.User
		err := s.db.WithContext(ctx).First(&user, "id = ?", m.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("membership service: load user: %w", err)
		}

		pub := user.Public()
		teammates = append(teammates, Teammate{
			ID:     pub.ID,
			Name:   pub.Name,
			Email:  pub.Email,
			Status: pub.Status,
			Role:   m.Role,
		})
	}

	sort.SliceStable(teammates, func(i, j int) bool {
		return teammates[i].Role == models.RoleLeader && teammates[j].Role != models.RoleLeader
	})

	return teammates, nil
}
