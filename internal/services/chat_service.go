package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

// ErrThreadNotFound indicates the requested chat thread does not exist.
var ErrThreadNotFound = apperrors.NewNotFound("thread not found")

// ErrEmptyMessage rejects messages whose text is empty after trimming.
var ErrEmptyMessage = apperrors.NewValidation("message.text required")

// MessageInput is the payload for appending a message to a thread. SenderID
// falls back to the authenticated caller when omitted.
type MessageInput struct {
	Text     string `json:"text"`
	SenderID string `json:"senderId"`
}

// ThreadPatch lists the mutable thread fields for the plain-patch mode.
type ThreadPatch struct {
	Title    *string           `json:"title"`
	Messages *[]models.Message `json:"messages"`
}

// ChatService manages chat threads and their embedded messages.
type ChatService struct {
	db      *gorm.DB
	members *MembershipService
	acts    *ActivityService
}

// NewChatService constructs a ChatService.
func NewChatService(db *gorm.DB, members *MembershipService, acts *ActivityService) (*ChatService, error) {
	if db == nil {
		return nil, errors.New("chat service: db is required")
	}
	if members == nil {
		return nil, errors.New("chat service: membership service is required")
	}
	if acts == nil {
		return nil, errors.New("chat service: activity service is required")
	}
	return &ChatService{db: db, members: members, acts: acts}, nil
}

// ListForProject returns the project's threads, requiring membership.
func (s *ChatService) ListForProject(ctx context.Context, projectID, callerID string) ([]models.ChatThread, error) {
	ctx = ensureContext(ctx)

	member, err := s.members.IsMember(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrForbidden
	}

	var threads []models.ChatThread
	if err := s.db.WithContext(ctx).Where(map[string]any{"project_id": projectID}).Find(&threads).Error; err != nil {
		return nil, fmt.Errorf("chat service: list: %w", err)
	}

	return threads, nil
}

// Create inserts an empty thread and logs "created chat thread: <title>".
func (s *ChatService) Create(ctx context.Context, title, projectID, creatorID string) (*models.ChatThread, error) {
	ctx = ensureContext(ctx)

	thread := models.ChatThread{
		Title:     title,
		ProjectID: projectID,
		CreatorID: creatorID,
	}

	if err := s.db.WithContext(ctx).Create(&thread).Error; err != nil {
		return nil, fmt.Errorf("chat service: create: %w", err)
	}

	if _, err := s.acts.Log(ctx, projectID, creatorID, fmt.Sprintf("created chat thread: %s", title)); err != nil {
		return nil, err
	}

	return &thread, nil
}

// Get loads a thread by id.
func (s *ChatService) Get(ctx context.Context, id string) (*models.ChatThread, error) {
	ctx = ensureContext(ctx)

	var thread models.ChatThread
	err := s.db.WithContext(ctx).First(&thread, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("chat service: load: %w", err)
	}

	return &thread, nil
}

// AppendMessage adds a server-stamped message to the thread and logs
// "sent a message in thread: <title>". Whitespace-only text is rejected.
func (s *ChatService) AppendMessage(ctx context.Context, threadID, callerID string, input MessageInput) (*models.ChatThread, error) {
	ctx = ensureContext(ctx)

	thread, err := s.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	senderID := input.SenderID
	if senderID == "" {
		senderID = callerID
	}

	message := models.Message{
		ID:        models.NewID(models.MessageIDPrefix),
		Text:      text,
		SenderID:  senderID,
		Timestamp: time.Now().UTC(),
	}

	messages := append(datatypes.JSONSlice[models.Message]{}, thread.Messages...)
	messages = append(messages, message)

	if err := s.db.WithContext(ctx).Model(thread).Update("messages", messages).Error; err != nil {
		return nil, fmt.Errorf("chat service: append message: %w", err)
	}
	thread.Messages = messages

	if _, err := s.acts.Log(ctx, thread.ProjectID, callerID, fmt.Sprintf("sent a message in thread: %s", thread.Title)); err != nil {
		return nil, err
	}

	return thread, nil
}

// Patch applies the whitelist patch (title, messages). No activity is logged
// for plain patches; an empty patch returns the thread unchanged.
func (s *ChatService) Patch(ctx context.Context, threadID string, patch ThreadPatch) (*models.ChatThread, error) {
	ctx = ensureContext(ctx)

	thread, err := s.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Messages != nil {
		updates["messages"] = datatypes.JSONSlice[models.Message](*patch.Messages)
	}

	if len(updates) == 0 {
		return thread, nil
	}

	if err := s.db.WithContext(ctx).Model(thread).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("chat service: patch: %w", err)
	}
	if err := s.db.WithContext(ctx).First(thread, "id = ?", threadID).Error; err != nil {
		return nil, fmt.Errorf("chat service: reload: %w", err)
	}

	return thread, nil
}

// Delete removes the thread and logs "deleted chat thread: <title>".
func (s *ChatService) Delete(ctx context.Context, id, callerID string) error {
	ctx = ensureContext(ctx)

	thread, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.ChatThread{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("chat service: delete: %w", err)
	}

	if _, err := s.acts.Log(ctx, thread.ProjectID, callerID, fmt.Sprintf("deleted chat thread: %s", thread.Title)); err != nil {
		return err
	}

	return nil
}
