package ports

import (
	"context"

	"github.com/TonyDastan/workwave/internal/domain"
)

// TaskFilter narrows and orders task listings.
type TaskFilter struct {
	Status    string
	Category  string
	Location  string
	Skills    []string
	MinBudget *float64
	MaxBudget *float64
	IsUrgent  *bool
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uint) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, int64, error)
	Update(ctx context.Context, task *domain.Task) error
	// SaveWithProposals persists the task and its proposal collection in a
	// single transaction.
	SaveWithProposals(ctx context.Context, task *domain.Task) error
	DeleteProposal(ctx context.Context, proposalID uint) error
	Delete(ctx context.Context, id uint) error
	// RatingStats returns the average and count of ratings over a worker's
	// rated tasks.
	RatingStats(ctx context.Context, workerID uint) (avg float64, count int64, err error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	IncrementCompletedTasks(ctx context.Context, id uint) error
	UpdateRating(ctx context.Context, id uint, rating float64) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uint) (*domain.Message, error)
	Update(ctx context.Context, message *domain.Message) error
	// Conversation returns all messages between two users, oldest first.
	Conversation(ctx context.Context, userID, peerID uint) ([]domain.Message, error)
	// PeerIDs returns the distinct users this user has exchanged messages with.
	PeerIDs(ctx context.Context, userID uint) ([]uint, error)
	LastMessage(ctx context.Context, userID, peerID uint) (*domain.Message, error)
	UnreadCount(ctx context.Context, senderID, recipientID uint) (int64, error)
	MarkConversationRead(ctx context.Context, senderID, recipientID uint) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID uint) (*domain.Review, error)
	ListByReviewee(ctx context.Context, revieweeID uint) ([]domain.Review, error)
	ListByTask(ctx context.Context, taskID uint) ([]domain.Review, error)
	AverageForReviewee(ctx context.Context, revieweeID uint) (avg float64, count int64, err error)
}

type ActivityRepository interface {
	Create(ctx context.Context, event *domain.ActivityEvent) error
	GetByResource(ctx context.Context, resourceType string, resourceID uint) ([]domain.ActivityEvent, error)
	GetAll(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}
