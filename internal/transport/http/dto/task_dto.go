package dto

import (
	"time"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
)

type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Budget      float64   `json:"budget"`
	Deadline    time.Time `json:"deadline"`
	Skills      []string  `json:"skills"`
	IsUrgent    bool      `json:"is_urgent"`
}

func (r *CreateTaskRequest) Validate() []string {
	var errors []string

	if r.Title == "" {
		errors = append(errors, "title is required")
	}
	if r.Description == "" {
		errors = append(errors, "description is required")
	}
	if !domain.ValidTaskCategory(domain.TaskCategory(r.Category)) {
		errors = append(errors, "category must be one of: Cleaning, IT & Technology, Gardening, Handyman, Delivery")
	}
	if r.Location == "" {
		errors = append(errors, "location is required")
	}
	if r.Budget <= 0 {
		errors = append(errors, "budget must be a positive number")
	}
	if r.Deadline.IsZero() {
		errors = append(errors, "deadline is required")
	}
	if len(r.Skills) == 0 {
		errors = append(errors, "at least one skill is required")
	}

	return errors
}

func (r *CreateTaskRequest) ToInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.TaskCategory(r.Category),
		Location:    r.Location,
		Budget:      r.Budget,
		Deadline:    r.Deadline,
		Skills:      r.Skills,
		IsUrgent:    r.IsUrgent,
	}
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Location    *string    `json:"location"`
	Budget      *float64   `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	Skills      []string   `json:"skills"`
	IsUrgent    *bool      `json:"is_urgent"`
}

func (r *UpdateTaskRequest) ToInput() ports.UpdateTaskInput {
	input := ports.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Budget:      r.Budget,
		Deadline:    r.Deadline,
		Skills:      r.Skills,
		IsUrgent:    r.IsUrgent,
	}
	if r.Category != nil {
		category := domain.TaskCategory(*r.Category)
		input.Category = &category
	}
	return input
}

type SubmitProposalRequest struct {
	CoverLetter    string       `json:"cover_letter"`
	ProposedBudget float64      `json:"proposed_budget"`
	EstimatedTime  string       `json:"estimated_time"`
	Milestones     domain.JSONB `json:"milestones,omitempty"`
}

func (r *SubmitProposalRequest) Validate() []string {
	var errors []string

	if r.CoverLetter == "" {
		errors = append(errors, "cover letter is required")
	}
	if r.ProposedBudget <= 0 {
		errors = append(errors, "proposed budget must be a positive number")
	}
	if r.EstimatedTime == "" {
		errors = append(errors, "estimated time is required")
	}

	return errors
}

func (r *SubmitProposalRequest) ToInput() ports.SubmitProposalInput {
	return ports.SubmitProposalInput{
		CoverLetter:    r.CoverLetter,
		ProposedBudget: r.ProposedBudget,
		EstimatedTime:  r.EstimatedTime,
		Milestones:     r.Milestones,
	}
}

type AcceptProposalRequest struct {
	WorkerID uint `json:"worker_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type RateTaskRequest struct {
	Rating int `json:"rating"`
}

// ==================== RESPONSES ====================

type UserSummary struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Rating         float64 `json:"rating"`
	CompletedTasks int     `json:"completed_tasks"`
	AvatarURL      string  `json:"avatar_url,omitempty"`
}

func UserToSummary(user *domain.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:             user.ID,
		Name:           user.FullName(),
		Email:          user.Email,
		Rating:         user.Rating,
		CompletedTasks: user.CompletedTasks,
		AvatarURL:      user.AvatarURL,
	}
}

type ProposalResponse struct {
	ID             uint                  `json:"id"`
	WorkerID       uint                  `json:"worker_id"`
	Worker         *UserSummary          `json:"worker,omitempty"`
	CoverLetter    string                `json:"cover_letter"`
	ProposedBudget float64               `json:"proposed_budget"`
	EstimatedTime  string                `json:"estimated_time"`
	Milestones     domain.JSONB          `json:"milestones,omitempty"`
	Status         domain.ProposalStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
}

type TaskResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    domain.TaskCategory `json:"category"`
	Location    string              `json:"location"`
	Budget      float64             `json:"budget"`
	Deadline    time.Time           `json:"deadline"`
	Skills      []string            `json:"skills"`
	IsUrgent    bool                `json:"is_urgent"`
	Status      domain.TaskStatus   `json:"status"`
	Rating      *int                `json:"rating,omitempty"`
	ClientID    uint                `json:"client_id"`
	Client      *UserSummary        `json:"client,omitempty"`
	WorkerID    *uint               `json:"worker_id,omitempty"`
	Worker      *UserSummary        `json:"worker,omitempty"`
	Proposals   []ProposalResponse  `json:"proposals"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func TaskToResponse(task *domain.Task) TaskResponse {
	proposals := make([]ProposalResponse, len(task.Proposals))
	for i, p := range task.Proposals {
		proposals[i] = ProposalResponse{
			ID:             p.ID,
			WorkerID:       p.WorkerID,
			Worker:         UserToSummary(p.Worker),
			CoverLetter:    p.CoverLetter,
			ProposedBudget: p.ProposedBudget,
			EstimatedTime:  p.EstimatedTime,
			Milestones:     p.Milestones,
			Status:         p.Status,
			CreatedAt:      p.CreatedAt,
		}
	}

	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Location:    task.Location,
		Budget:      task.Budget,
		Deadline:    task.Deadline,
		Skills:      task.Skills,
		IsUrgent:    task.IsUrgent,
		Status:      task.Status,
		Rating:      task.Rating,
		ClientID:    task.ClientID,
		Client:      UserToSummary(task.Client),
		WorkerID:    task.WorkerID,
		Worker:      UserToSummary(task.Worker),
		Proposals:   proposals,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type TaskListResponse struct {
	Tasks       []TaskResponse `json:"tasks"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	TotalTasks  int64          `json:"total_tasks"`
}

func TaskPageToResponse(page *ports.TaskPage) TaskListResponse {
	tasks := make([]TaskResponse, len(page.Tasks))
	for i := range page.Tasks {
		tasks[i] = TaskToResponse(&page.Tasks[i])
	}
	return TaskListResponse{
		Tasks:       tasks,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalTasks:  page.TotalTasks,
	}
}
