package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
	"github.com/akshay-h-dev/milestack/pkg/metrics"
)

// ActivityService appends and reads the per-project activity feed. Entries
// are immutable; descriptions arrive pre-formatted from the caller.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService constructs an ActivityService using the provided handle.
func NewActivityService(db *gorm.DB) (*ActivityService, error) {
	if db == nil {
		return nil, errors.New("activity service: db is required")
	}
	return &ActivityService{db: db}, nil
}

// Log appends a timestamped feed entry for the project.
func (s *ActivityService) Log(ctx context.Context, projectID, userID, description string) (*models.Activity, error) {
	ctx = ensureContext(ctx)

	activity := models.Activity{
		ProjectID:   projectID,
		UserID:      userID,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("activity service: append: %w", err)
	}

	metrics.ActivitiesLogged.Inc()

	return &activity, nil
}

// ListForProject returns the project's activities newest-first.
func (s *ActivityService) ListForProject(ctx context.Context, projectID string) ([]models.Activity, error) {
	ctx = ensureContext(ctx)

	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Where(&models.Activity{ProjectID: projectID}).
		Order("timestamp DESC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("activity service: list: %w", err)
	}

	return activities, nil
}
