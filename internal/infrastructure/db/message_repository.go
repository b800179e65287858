package db

import (
	"context"
	"errors"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type messageRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepository(db *gorm.DB, log *logger.Logger) ports.MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		r.log.Errorw("message_repo_create_failed", "sender_id", message.SenderID, "recipient_id", message.RecipientID, "error", err)
		return err
	}
	r.log.Infow("message_repo_create_ok", "id", message.ID)
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*domain.Message, error) {
	var message domain.Message
	if err := r.db.WithContext(ctx).Preload("Sender").Preload("Recipient").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) Update(ctx context.Context, message *domain.Message) error {
	if err := r.db.WithContext(ctx).Save(message).Error; err != nil {
		r.log.Errorw("message_repo_update_failed", "id", message.ID, "error", err)
		return err
	}
	return nil
}

func (r *messageRepository) Conversation(ctx context.Context, userID, peerID uint) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at asc").
		Preload("Sender").
		Preload("Recipient").
		Preload("Task").
		Find(&messages).Error
	if err != nil {
		r.log.Errorw("message_repo_conversation_failed", "user_id", userID, "peer_id", peerID, "error", err)
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) PeerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var sent []uint
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("sender_id = ?", userID).
		Distinct("recipient_id").
		Pluck("recipient_id", &sent).Error; err != nil {
		return nil, err
	}

	var received []uint
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("recipient_id = ?", userID).
		Distinct("sender_id").
		Pluck("sender_id", &received).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(sent)+len(received))
	peers := make([]uint, 0, len(sent)+len(received))
	for _, id := range append(sent, received...) {
		if !seen[id] {
			seen[id] = true
			peers = append(peers, id)
		}
	}
	return peers, nil
}

func (r *messageRepository) LastMessage(ctx context.Context, userID, peerID uint) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at desc").
		Preload("Sender").
		Preload("Recipient").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, senderID, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, senderID, recipientID uint) error {
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Update("is_read", true).Error
	if err != nil {
		r.log.Errorw("message_repo_mark_read_failed", "sender_id", senderID, "recipient_id", recipientID, "error", err)
		return err
	}
	return nil
}
