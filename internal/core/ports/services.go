package ports

import (
	"context"
	"time"

	"github.com/TonyDastan/workwave/internal/domain"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   uint
	Role domain.UserRole
}

type CreateTaskInput struct {
	Title       string
	Description string
	Category    domain.TaskCategory
	Location    string
	Budget      float64
	Deadline    time.Time
	Skills      []string
	IsUrgent    bool
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *domain.TaskCategory
	Location    *string
	Budget      *float64
	Deadline    *time.Time
	Skills      []string
	IsUrgent    *bool
}

type SubmitProposalInput struct {
	CoverLetter    string
	ProposedBudget float64
	EstimatedTime  string
	Milestones     domain.JSONB
}

type TaskPage struct {
	Tasks       []domain.Task
	CurrentPage int
	TotalPages  int
	TotalTasks  int64
}

type TaskService interface {
	Create(ctx context.Context, actor Actor, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) (*TaskPage, error)
	GetByID(ctx context.Context, id uint) (*domain.Task, error)
	Update(ctx context.Context, actor Actor, id uint, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	SubmitProposal(ctx context.Context, actor Actor, taskID uint, input SubmitProposalInput) (*domain.Task, error)
	WithdrawProposal(ctx context.Context, actor Actor, taskID, proposalID uint) error
	RejectProposal(ctx context.Context, actor Actor, taskID, proposalID uint) (*domain.Task, error)
	AcceptProposal(ctx context.Context, actor Actor, taskID, workerID uint) (*domain.Task, error)
	AdvanceStatus(ctx context.Context, actor Actor, taskID uint, target domain.TaskStatus) (*domain.Task, error)
	Rate(ctx context.Context, actor Actor, taskID uint, rating int) (*domain.Task, error)
	Activity(ctx context.Context, taskID uint) ([]domain.ActivityEvent, error)
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.UserRole
	Phone     string
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
	Skills    []string
	AvatarURL *string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Profile(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uint, current, updated string) error
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	// VerifyToken validates a bearer token and returns the caller identity.
	VerifyToken(token string) (Actor, error)
}

type SendMessageInput struct {
	RecipientID uint
	Content     string
	TaskID      *uint
}

// ConversationSummary is one row of a user's inbox.
type ConversationSummary struct {
	User        *domain.User    `json:"user"`
	LastMessage *domain.Message `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}

type MessageService interface {
	Send(ctx context.Context, senderID uint, input SendMessageInput) (*domain.Message, error)
	Conversations(ctx context.Context, userID uint) ([]ConversationSummary, error)
	Conversation(ctx context.Context, userID, peerID uint) ([]domain.Message, error)
	MarkRead(ctx context.Context, userID, messageID uint) error
}

// MessageNotifier pushes a new message to the recipient if they are connected.
type MessageNotifier interface {
	Notify(userID uint, message *domain.Message)
}

type CreateReviewInput struct {
	TaskID     uint
	RevieweeID uint
	Rating     int
	Comment    string
	ReviewType domain.ReviewType
}

type ReviewService interface {
	Create(ctx context.Context, reviewerID uint, input CreateReviewInput) (*domain.Review, error)
	ForUser(ctx context.Context, userID uint) ([]domain.Review, error)
	ForTask(ctx context.Context, taskID uint) ([]domain.Review, error)
}

// BlobStore uploads files to external storage and returns their public URLs.
type BlobStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	Delete(ctx context.Context, fileID string) error
}

type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, fileID string) error
}
