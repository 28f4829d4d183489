package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
	"github.com/akshay-h-dev/milestack/pkg/crypto"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
	"github.com/akshay-h-dev/milestack/pkg/logger"
)

// ErrEmailExists is returned when a signup collides with an existing account.
var ErrEmailExists = apperrors.NewConflict("email already exists")

// SignupInput carries the required signup fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// UserService implements account creation and credential verification.
type UserService struct {
	db      *gorm.DB
	invites *InviteService
	members *MembershipService
	acts    *ActivityService
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, invites *InviteService, members *MembershipService, acts *ActivityService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	if invites == nil {
		return nil, errors.New("user service: invite service is required")
	}
	if members == nil {
		return nil, errors.New("user service: membership service is required")
	}
	if acts == nil {
		return nil, errors.New("user service: activity service is required")
	}
	return &UserService{db: db, invites: invites, members: members, acts: acts}, nil
}

// Signup creates an account, marks it online and consumes any pending
// invites addressed to the email. Duplicate emails fail with a conflict.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       models.UserStatusOnline,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	// Pending invites convert into membership; a partial failure here must
	// not undo the already-created account.
	if err := s.invites.ConsumeForEmail(ctx, user.Email, user.ID); err != nil {
		logger.WithModule("users").Warn("invite consumption incomplete",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return &user, nil
}

// Login verifies credentials, flips the account online and appends a
// "logged in" activity to every project the user belongs to.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	if !crypto.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("status", models.UserStatusOnline).Error; err != nil {
		return nil, fmt.Errorf("user service: mark online: %w", err)
	}
	user.Status = models.UserStatusOnline

	memberships, err := s.members.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		if _, err := s.acts.Log(ctx, m.ProjectID, user.ID, "logged in"); err != nil {
			return nil, err
		}
	}

	return &user, nil
}
