package repository

import (
	"context"
	"errors"
	"time"

	"vyaparify/internal/models"
	"vyaparify/internal/observability"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for buyer/seller messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	Inbox(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Message, error)
	Thread(ctx context.Context, userA, userB, adID uint) ([]*models.Message, error)
	MarkRead(ctx context.Context, id uint, at time.Time) error
}

type messageRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *messageRepository) Inbox(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Message, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Inbox", "messages")
	defer span.End()
	defer r.metrics.TrackQuery("select", "messages")()

	// Non-nil so an empty result serializes as [] rather than null.
	msgs := make([]*models.Message, 0)
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Ad").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// Thread returns the full conversation between two users about one ad,
// regardless of who sent which message, in chronological order. The
// normalized pair columns make this a single indexed lookup.
func (r *messageRepository) Thread(ctx context.Context, userA, userB, adID uint) ([]*models.Message, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Thread", "messages")
	defer span.End()
	defer r.metrics.TrackQuery("select", "messages")()

	low, high := models.NormalizePair(userA, userB)

	// Non-nil so an empty result serializes as [] rather than null.
	msgs := make([]*models.Message, 0)
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Ad").
		Where("pair_low_id = ? AND pair_high_id = ? AND ad_id = ?", low, high, adID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}
