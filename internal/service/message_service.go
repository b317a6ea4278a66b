package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vyaparify/internal/models"
	"vyaparify/internal/observability"
	"vyaparify/internal/repository"
)

// MessageService provides buyer/seller messaging logic.
type MessageService struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	adRepo   repository.AdRepository
}

// SendMessageInput is the payload for sending a message about an ad.
type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	AdID       uint
	Content    string
}

// NewMessageService returns a new MessageService.
func NewMessageService(
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	adRepo repository.AdRepository,
) *MessageService {
	return &MessageService{
		msgRepo:  msgRepo,
		userRepo: userRepo,
		adRepo:   adRepo,
	}
}

const maxMessageLen = 5000

// Send validates and persists a message. The receiver and the referenced ad
// must both exist at write time, and users cannot message themselves.
func (s *MessageService) Send(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if in.ReceiverID == 0 {
		return nil, models.NewValidationError("receiverId is required")
	}
	if in.AdID == 0 {
		return nil, models.NewValidationError("adId is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 5000 characters)")
	}
	if in.SenderID == in.ReceiverID {
		return nil, models.NewValidationError("Cannot send a message to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, models.NewValidationError("Receiver not found")
		}
		return nil, err
	}

	exists, err := s.adRepo.Exists(ctx, in.AdID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewValidationError("Ad not found")
	}

	msg := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		AdID:       in.AdID,
		Content:    content,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	observability.MessagesSent.Inc()
	return msg, nil
}

// Inbox returns messages received by the user, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error) {
	return s.msgRepo.Inbox(ctx, userID, limit, offset)
}

// Thread returns the full conversation between the caller and another user
// about one ad, in chronological order. Both directions are included.
func (s *MessageService) Thread(ctx context.Context, callerID, otherID, adID uint) ([]*models.Message, error) {
	if otherID == 0 {
		return nil, models.NewValidationError("User ID is required")
	}
	if adID == 0 {
		return nil, models.NewValidationError("Ad ID is required")
	}
	return s.msgRepo.Thread(ctx, callerID, otherID, adID)
}

// MarkRead marks a message as read. Only the receiver may do so; marking an
// already-read message is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, messageID, callerID uint) (*models.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != callerID {
		return nil, models.NewUnauthorizedError("Only the receiver can mark a message as read")
	}
	if msg.IsRead {
		return msg, nil
	}

	now := time.Now().UTC()
	if err := s.msgRepo.MarkRead(ctx, messageID, now); err != nil {
		return nil, err
	}
	msg.IsRead = true
	msg.ReadAt = &now
	return msg, nil
}
