package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

// ErrInviteNotFound indicates the requested invite does not exist.
var ErrInviteNotFound = apperrors.New("not_found", "invite not found", http.StatusNotFound)

// InviteService manages pending project invites and their conversion into
// membership at signup.
type InviteService struct {
	db         *gorm.DB
	members    *MembershipService
	activities *ActivityService
}

// NewInviteService constructs an InviteService.
func NewInviteService(db *gorm.DB, members *MembershipService, activities *ActivityService) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}
	if members == nil {
		return nil, errors.New("invite service: membership service is required")
	}
	if activities == nil {
		return nil, errors.New("invite service: activity service is required")
	}
	return &InviteService{db: db, members: members, activities: activities}, nil
}

// Create records a pending invite for an email address to join a project.
func (s *InviteService) Create(ctx context.Context, projectID, email, name string) (*models.Invite, error) {
	ctx = ensureContext(ctx)

	invite := models.Invite{
		ProjectID: projectID,
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Status:    models.InviteStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(&invite).Error; err != nil {
		return nil, fmt.Errorf("invite service: create: %w", err)
	}

	return &invite, nil
}

// Get loads a single invite by id.
func (s *InviteService) Get(ctx context.Context, id string) (*models.Invite, error) {
	ctx = ensureContext(ctx)

	var invite models.Invite
	err := s.db.WithContext(ctx).First(&invite, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("invite service: get: %w", err)
	}

	return &invite, nil
}

// List returns invites. With a projectID only that project's pending invites
// are returned; without one, every invite is.
func (s *InviteService) List(ctx context.Context, projectID string) ([]models.Invite, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx)
	if projectID != "" {
		query = query.Where(map[string]any{
			"project_id": projectID,
			"status":     models.InviteStatusPending,
		})
	}

	var invites []models.Invite
	if err := query.Find(&invites).Error; err != nil {
		return nil, fmt.Errorf("invite service: list: %w", err)
	}

	return invites, nil
}

// ConsumeForEmail converts every pending invite matching the email into a
// membership for the user: the member row is created, the invite deleted and
// a "joined the project" activity logged, once per matching invite. Failures
// on individual invites are aggregated and do not stop the fan-out.
func (s *InviteService) ConsumeForEmail(ctx context.Context, email, userID string) error {
	ctx = ensureContext(ctx)

	var invites []models.Invite
	err := s.db.WithContext(ctx).
		Where(map[string]any{"email": email, "status": models.InviteStatusPending}).
		Find(&invites).Error
	if err != nil {
		return fmt.Errorf("invite service: match invites: %w", err)
	}

	var combined error
	for _, invite := range invites {
		if _, err := s.members.AddMember(ctx, invite.ProjectID, userID, models.RoleMember); err != nil {
			combined = multierr.Append(combined, err)
			continue
		}
		if err := s.db.WithContext(ctx).Delete(&models.Invite{}, "id = ?", invite.ID).Error; err != nil {
			combined = multierr.Append(combined, fmt.Errorf("invite service: consume %s: %w", invite.ID, err))
			continue
		}
		if _, err := s.activities.Log(ctx, invite.ProjectID, userID, "joined the project"); err != nil {
			combined = multierr.Append(combined, err)
		}
	}

	return combined
}
