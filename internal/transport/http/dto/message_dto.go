package dto

import (
	"time"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
)

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Content     string `json:"content"`
	TaskID      *uint  `json:"task_id"`
}

func (r *SendMessageRequest) Validate() []string {
	var errors []string

	if r.RecipientID == 0 {
		errors = append(errors, "recipient_id is required")
	}
	if r.Content == "" {
		errors = append(errors, "content is required")
	}

	return errors
}

func (r *SendMessageRequest) ToInput() ports.SendMessageInput {
	return ports.SendMessageInput{
		RecipientID: r.RecipientID,
		Content:     r.Content,
		TaskID:      r.TaskID,
	}
}

type MessageResponse struct {
	ID          uint         `json:"id"`
	SenderID    uint         `json:"sender_id"`
	Sender      *UserSummary `json:"sender,omitempty"`
	RecipientID uint         `json:"recipient_id"`
	Recipient   *UserSummary `json:"recipient,omitempty"`
	Content     string       `json:"content"`
	TaskID      *uint        `json:"task_id,omitempty"`
	TaskTitle   string       `json:"task_title,omitempty"`
	IsRead      bool         `json:"is_read"`
	CreatedAt   time.Time    `json:"created_at"`
}

func MessageToResponse(message *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		Sender:      UserToSummary(message.Sender),
		RecipientID: message.RecipientID,
		Recipient:   UserToSummary(message.Recipient),
		Content:     message.Content,
		TaskID:      message.TaskID,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt,
	}
	if message.Task != nil {
		resp.TaskTitle = message.Task.Title
	}
	return resp
}

func MessagesToResponse(messages []domain.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = MessageToResponse(&messages[i])
	}
	return responses
}

type ConversationResponse struct {
	User        *UserSummary     `json:"user"`
	LastMessage *MessageResponse `json:"last_message"`
	UnreadCount int64            `json:"unread_count"`
}

func ConversationsToResponse(summaries []ports.ConversationSummary) []ConversationResponse {
	responses := make([]ConversationResponse, len(summaries))
	for i, s := range summaries {
		var last *MessageResponse
		if s.LastMessage != nil {
			m := MessageToResponse(s.LastMessage)
			last = &m
		}
		responses[i] = ConversationResponse{
			User:        UserToSummary(s.User),
			LastMessage: last,
			UnreadCount: s.UnreadCount,
		}
	}
	return responses
}
