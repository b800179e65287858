package services

import (
	"context"
	"sort"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
)

type messageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	notifier ports.MessageNotifier
	logger   *logger.Logger
}

type MessageServiceConfig struct {
	MessageRepo ports.MessageRepository
	UserRepo    ports.UserRepository
	Notifier    ports.MessageNotifier
	Logger      *logger.Logger
}

func NewMessageService(cfg MessageServiceConfig) ports.MessageService {
	return &messageService{
		messages: cfg.MessageRepo,
		users:    cfg.UserRepo,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}
}

func (s *messageService) Send(ctx context.Context, senderID uint, input ports.SendMessageInput) (*domain.Message, error) {
	if input.Content == "" {
		return nil, validationError("message content is required")
	}
	if _, err := s.users.GetByID(ctx, input.RecipientID); err != nil {
		return nil, notFoundOr(err, ErrRecipientNotFound)
	}

	message := &domain.Message{
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		Content:     input.Content,
		TaskID:      input.TaskID,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	// Reload with sender/recipient attached for the response and the push.
	populated, err := s.messages.GetByID(ctx, message.ID)
	if err != nil {
		populated = message
	}

	if s.notifier != nil {
		s.notifier.Notify(input.RecipientID, populated)
	}

	s.logger.Infow("message_sent", "id", message.ID, "sender_id", senderID, "recipient_id", input.RecipientID)
	return populated, nil
}

func (s *messageService) Conversations(ctx context.Context, userID uint) ([]ports.ConversationSummary, error) {
	peers, err := s.messages.PeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ConversationSummary, 0, len(peers))
	for _, peerID := range peers {
		last, err := s.messages.LastMessage(ctx, userID, peerID)
		if err != nil {
			return nil, err
		}
		if last == nil {
			continue
		}
		unread, err := s.messages.UnreadCount(ctx, peerID, userID)
		if err != nil {
			return nil, err
		}
		peer, err := s.users.GetByID(ctx, peerID)
		if err != nil {
			continue
		}
		summaries = append(summaries, ports.ConversationSummary{
			User:        peer,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})
	return summaries, nil
}

func (s *messageService) Conversation(ctx context.Context, userID, peerID uint) ([]domain.Message, error) {
	messages, err := s.messages.Conversation(ctx, userID, peerID)
	if err != nil {
		return nil, err
	}

	// Opening a thread marks the peer's messages to us as read.
	if err := s.messages.MarkConversationRead(ctx, peerID, userID); err != nil {
		s.logger.Warnw("conversation_mark_read_failed", "user_id", userID, "peer_id", peerID, "error", err)
	}
	return messages, nil
}

func (s *messageService) MarkRead(ctx context.Context, userID, messageID uint) error {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return notFoundOr(err, ErrMessageNotFound)
	}
	if message.RecipientID != userID {
		return ErrNotMessageRecipient
	}

	message.IsRead = true
	return s.messages.Update(ctx, message)
}
