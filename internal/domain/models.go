package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ==================== ENUMS ====================

type UserRole string

const (
	UserRoleClient UserRole = "client"
	UserRoleWorker UserRole = "worker"
	UserRoleAdmin  UserRole = "admin"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusOpen, TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskCategory string

const (
	TaskCategoryCleaning  TaskCategory = "Cleaning"
	TaskCategoryIT        TaskCategory = "IT & Technology"
	TaskCategoryGardening TaskCategory = "Gardening"
	TaskCategoryHandyman  TaskCategory = "Handyman"
	TaskCategoryDelivery  TaskCategory = "Delivery"
)

func ValidTaskCategory(c TaskCategory) bool {
	switch c {
	case TaskCategoryCleaning, TaskCategoryIT, TaskCategoryGardening, TaskCategoryHandyman, TaskCategoryDelivery:
		return true
	}
	return false
}

type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusAccepted  ProposalStatus = "accepted"
	ProposalStatusRejected  ProposalStatus = "rejected"
	ProposalStatusWithdrawn ProposalStatus = "withdrawn"
)

type ReviewType string

const (
	ReviewTypeClientToWorker ReviewType = "client-to-worker"
	ReviewTypeWorkerToClient ReviewType = "worker-to-client"
)

// ==================== JSON COLUMN TYPES ====================

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return errors.New("failed to scan JSONB: invalid type")
}

// StringList stores a string slice as a JSON array column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return errors.New("failed to scan StringList: invalid type")
}

// ==================== ENTITIES ====================

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirstName    string     `gorm:"size:100;not null" json:"first_name"`
	LastName     string     `gorm:"size:100;not null" json:"last_name"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         UserRole   `gorm:"size:20;not null;default:'client'" json:"role"`
	Phone        string     `gorm:"size:30" json:"phone,omitempty"`
	Bio          string     `gorm:"type:text" json:"bio,omitempty"`
	Skills       StringList `gorm:"type:jsonb" json:"skills,omitempty"`
	AvatarURL    string     `gorm:"size:512" json:"avatar_url,omitempty"`

	// Derived reputation fields, recomputed on rating/review writes.
	Rating         float64 `gorm:"default:0" json:"rating"`
	CompletedTasks int     `gorm:"default:0" json:"completed_tasks"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Task struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    TaskCategory `gorm:"size:50;not null;index" json:"category"`
	Location    string       `gorm:"size:255;not null;index" json:"location"`
	Budget      float64      `gorm:"not null" json:"budget"`
	Deadline    time.Time    `gorm:"not null" json:"deadline"`
	Skills      StringList   `gorm:"type:jsonb" json:"skills"`
	IsUrgent    bool         `gorm:"default:false" json:"is_urgent"`
	Status      TaskStatus   `gorm:"size:20;not null;default:'open';index" json:"status"`

	// Set once, after completion.
	Rating *int `json:"rating,omitempty"`

	ClientID uint  `gorm:"not null;index" json:"client_id"`
	Client   *User `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`

	// Nil until a proposal is accepted.
	WorkerID *uint `gorm:"index" json:"worker_id,omitempty"`
	Worker   *User `json:"worker,omitempty"`

	Proposals []Proposal `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"proposals,omitempty"`
}

// IsOwner reports whether the given user posted this task.
func (t *Task) IsOwner(userID uint) bool {
	return t.ClientID == userID
}

// IsAssignee reports whether the given user is the assigned worker.
func (t *Task) IsAssignee(userID uint) bool {
	return t.WorkerID != nil && *t.WorkerID == userID
}

// ProposalByWorker returns the worker's proposal on this task, if any.
func (t *Task) ProposalByWorker(workerID uint) *Proposal {
	for i := range t.Proposals {
		if t.Proposals[i].WorkerID == workerID {
			return &t.Proposals[i]
		}
	}
	return nil
}

// ProposalByID returns the proposal with the given id, if it belongs to this task.
func (t *Task) ProposalByID(proposalID uint) *Proposal {
	for i := range t.Proposals {
		if t.Proposals[i].ID == proposalID {
			return &t.Proposals[i]
		}
	}
	return nil
}

// taskTransitions lists the direct status moves a caller may request.
// open -> assigned is deliberately absent: assignment only happens through
// proposal acceptance.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusAssigned:   {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusCompleted, TaskStatusCancelled},
}

// CanTransitionTo reports whether a direct move from the task's current
// status to target is allowed.
func (t *Task) CanTransitionTo(target TaskStatus) bool {
	for _, allowed := range taskTransitions[t.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Proposal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID   uint  `gorm:"not null;index" json:"task_id"`
	WorkerID uint  `gorm:"not null;index" json:"worker_id"`
	Worker   *User `json:"worker,omitempty"`

	CoverLetter    string         `gorm:"type:text;not null" json:"cover_letter"`
	ProposedBudget float64        `gorm:"not null" json:"proposed_budget"`
	EstimatedTime  string         `gorm:"size:50;not null" json:"estimated_time"`
	Milestones     JSONB          `gorm:"type:jsonb" json:"milestones,omitempty"`
	Status         ProposalStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
}

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SenderID    uint  `gorm:"not null;index:idx_messages_pair" json:"sender_id"`
	Sender      *User `json:"sender,omitempty"`
	RecipientID uint  `gorm:"not null;index:idx_messages_pair" json:"recipient_id"`
	Recipient   *User `json:"recipient,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`
	TaskID  *uint  `gorm:"index" json:"task_id,omitempty"`
	Task    *Task  `json:"task,omitempty"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID     uint  `gorm:"not null;index" json:"task_id"`
	Task       *Task `json:"task,omitempty"`
	ReviewerID uint  `gorm:"not null;index" json:"reviewer_id"`
	Reviewer   *User `json:"reviewer,omitempty"`
	RevieweeID uint  `gorm:"not null;index" json:"reviewee_id"`

	Rating     int        `gorm:"not null" json:"rating"`
	Comment    string     `gorm:"type:text;not null" json:"comment"`
	ReviewType ReviewType `gorm:"size:30;not null" json:"review_type"`
}

type ActivityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type         string `gorm:"size:100;not null;index" json:"type"`
	Message      string `gorm:"type:text" json:"message"`
	Meta         JSONB  `gorm:"type:jsonb" json:"meta,omitempty"`
	ActorID      uint   `gorm:"index" json:"actor_id"`
	ResourceID   uint   `gorm:"index" json:"resource_id"`
	ResourceType string `gorm:"size:100;index" json:"resource_type"`
}
