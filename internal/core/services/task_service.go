package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
)

// estimatedTimePattern accepts an integer followed by an hours/days/weeks unit,
// e.g. "3 days", "1 hour", "2 weeks".
var estimatedTimePattern = regexp.MustCompile(`^[1-9][0-9]* ?(hour|day|week)s?$`)

const (
	coverLetterMinLen = 50
	coverLetterMaxLen = 1000
)

type taskService struct {
	repo        ports.TaskRepository
	users       ports.UserRepository
	activity    ports.ActivityRepository
	logger      *logger.Logger
	mu          sync.Mutex
	locks       map[string]*sync.Mutex
	enableLocks bool
}

type TaskServiceConfig struct {
	Repository  ports.TaskRepository
	UserRepo    ports.UserRepository
	Activity    ports.ActivityRepository
	Logger      *logger.Logger
	EnableLocks bool
}

func NewTaskService(cfg TaskServiceConfig) ports.TaskService {
	return &taskService{
		repo:        cfg.Repository,
		users:       cfg.UserRepo,
		activity:    cfg.Activity,
		logger:      cfg.Logger,
		locks:       make(map[string]*sync.Mutex),
		enableLocks: cfg.EnableLocks,
	}
}

// lockKeys serializes mutations that touch the same task. Acceptance must
// observe a consistent snapshot of the proposal collection, so concurrent
// submit/accept calls against one task take the same stripe.
func (s *taskService) lockKeys(keys ...string) func() {
	if !s.enableLocks || len(keys) == 0 {
		return func() {}
	}
	sort.Strings(keys)
	s.mu.Lock()
	acquired := make([]*sync.Mutex, 0, len(keys))
	for _, k := range keys {
		m := s.locks[k]
		if m == nil {
			m = &sync.Mutex{}
			s.locks[k] = m
		}
		acquired = append(acquired, m)
	}
	s.mu.Unlock()
	for _, m := range acquired {
		m.Lock()
	}
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

func taskKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

func (s *taskService) Create(ctx context.Context, actor ports.Actor, input ports.CreateTaskInput) (*domain.Task, error) {
	if actor.Role != domain.UserRoleClient {
		return nil, ErrClientRoleOnly
	}
	if err := validateTaskFields(input.Title, input.Description, input.Category, input.Location, input.Budget, input.Deadline, input.Skills); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		Skills:      input.Skills,
		IsUrgent:    input.IsUrgent,
		Status:      domain.TaskStatusOpen,
		ClientID:    actor.ID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("task_created", "id", task.ID, "client_id", actor.ID, "category", task.Category)
	s.record(ctx, domain.EventTypeTaskCreated, task.ID, actor.ID, "task posted", nil)
	return task, nil
}

func validateTaskFields(title, description string, category domain.TaskCategory, location string, budget float64, deadline time.Time, skills []string) error {
	if title == "" {
		return validationError("title is required")
	}
	if description == "" {
		return validationError("description is required")
	}
	if !domain.ValidTaskCategory(category) {
		return validationError("invalid category %q", category)
	}
	if location == "" {
		return validationError("location is required")
	}
	if budget <= 0 {
		return validationError("budget must be a positive number")
	}
	if deadline.IsZero() || !deadline.After(time.Now()) {
		return validationError("deadline must be a future date")
	}
	if len(skills) == 0 {
		return validationError("at least one skill is required")
	}
	return nil
}

func (s *taskService) List(ctx context.Context, filter ports.TaskFilter) (*ports.TaskPage, error) {
	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.TaskPage{
		Tasks:       tasks,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalTasks:  total,
	}, nil
}

func (s *taskService) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, actor ports.Actor, id uint, input ports.UpdateTaskInput) (*domain.Task, error) {
	unlock := s.lockKeys(taskKey(id))
	defer unlock()

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if !task.IsOwner(actor.ID) {
		return nil, ErrNotTaskOwner
	}
	// Once negotiation has produced commitments the posting is frozen.
	if task.Status != domain.TaskStatusOpen {
		return nil, ErrTaskNotOpen
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		if !domain.ValidTaskCategory(*input.Category) {
			return nil, validationError("invalid category %q", *input.Category)
		}
		task.Category = *input.Category
	}
	if input.Location != nil {
		task.Location = *input.Location
	}
	if input.Budget != nil {
		if *input.Budget <= 0 {
			return nil, validationError("budget must be a positive number")
		}
		task.Budget = *input.Budget
	}
	if input.Deadline != nil {
		if !input.Deadline.After(time.Now()) {
			return nil, validationError("deadline must be a future date")
		}
		task.Deadline = *input.Deadline
	}
	if input.Skills != nil {
		if len(input.Skills) == 0 {
			return nil, validationError("at least one skill is required")
		}
		task.Skills = input.Skills
	}
	if input.IsUrgent != nil {
		task.IsUrgent = *input.IsUrgent
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.record(ctx, domain.EventTypeTaskUpdated, task.ID, actor.ID, "task updated", nil)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, actor ports.Actor, id uint) error {
	unlock := s.lockKeys(taskKey(id))
	defer unlock()

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrTaskNotFound)
	}
	if !task.IsOwner(actor.ID) {
		return ErrNotTaskOwner
	}
	if task.Status != domain.TaskStatusOpen {
		return ErrTaskNotOpen
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("task_deleted", "id", id, "client_id", actor.ID)
	s.record(ctx, domain.EventTypeTaskDeleted, id, actor.ID, "task removed", nil)
	return nil
}

func (s *taskService) SubmitProposal(ctx context.Context, actor ports.Actor, taskID uint, input ports.SubmitProposalInput) (*domain.Task, error) {
	unlock := s.lockKeys(taskKey(taskID))
	defer unlock()

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if task.Status != domain.TaskStatusOpen {
		return nil, ErrTaskNotOpen
	}
	if actor.Role != domain.UserRoleWorker {
		return nil, ErrWorkerRoleOnly
	}
	if task.ProposalByWorker(actor.ID) != nil {
		return nil, ErrDuplicateProposal
	}
	if err := validateProposal(input); err != nil {
		return nil, err
	}

	task.Proposals = append(task.Proposals, domain.Proposal{
		TaskID:         task.ID,
		WorkerID:       actor.ID,
		CoverLetter:    input.CoverLetter,
		ProposedBudget: input.ProposedBudget,
		EstimatedTime:  input.EstimatedTime,
		Milestones:     input.Milestones,
		Status:         domain.ProposalStatusPending,
	})

	if err := s.repo.SaveWithProposals(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("proposal_submitted", "task_id", task.ID, "worker_id", actor.ID, "proposed_budget", input.ProposedBudget)
	s.record(ctx, domain.EventTypeProposalSubmitted, task.ID, actor.ID, "proposal submitted", domain.JSONB{
		"proposed_budget": input.ProposedBudget,
		"estimated_time":  input.EstimatedTime,
	})
	return task, nil
}

func validateProposal(input ports.SubmitProposalInput) error {
	letterLen := utf8.RuneCountInString(input.CoverLetter)
	if letterLen < coverLetterMinLen || letterLen > coverLetterMaxLen {
		return validationError("cover letter must be between %d and %d characters", coverLetterMinLen, coverLetterMaxLen)
	}
	if input.ProposedBudget <= 0 {
		return validationError("proposed budget must be a positive number")
	}
	if !estimatedTimePattern.MatchString(input.EstimatedTime) {
		return validationError("estimated time must look like '3 days', '1 hour' or '2 weeks'")
	}
	return nil
}

// WithdrawProposal removes the worker's proposal. Only permitted while the
// task is open: once a proposal has been accepted the collection is settled.
func (s *taskService) WithdrawProposal(ctx context.Context, actor ports.Actor, taskID, proposalID uint) error {
	unlock := s.lockKeys(taskKey(taskID))
	defer unlock()

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return notFoundOr(err, ErrTaskNotFound)
	}
	proposal := task.ProposalByID(proposalID)
	if proposal == nil {
		return ErrProposalNotFound
	}
	if proposal.WorkerID != actor.ID {
		return ErrNotProposalOwner
	}
	if task.Status != domain.TaskStatusOpen {
		return ErrTaskNotOpen
	}

	if err := s.repo.DeleteProposal(ctx, proposalID); err != nil {
		return err
	}

	s.logger.Infow("proposal_withdrawn", "task_id", taskID, "proposal_id", proposalID, "worker_id", actor.ID)
	s.record(ctx, domain.EventTypeProposalWithdrawn, taskID, actor.ID, "proposal withdrawn", nil)
	return nil
}

func (s *taskService) RejectProposal(ctx context.Context, actor ports.Actor, taskID, proposalID uint) (*domain.Task, error) {
	unlock := s.lockKeys(taskKey(taskID))
	defer unlock()

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if !task.IsOwner(actor.ID) {
		return nil, ErrNotTaskOwner
	}
	proposal := task.ProposalByID(proposalID)
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	if proposal.Status == domain.ProposalStatusAccepted {
		return nil, ErrProposalSettled
	}

	proposal.Status = domain.ProposalStatusRejected
	if err := s.repo.SaveWithProposals(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("proposal_rejected", "task_id", taskID, "proposal_id", proposalID)
	s.record(ctx, domain.EventTypeProposalRejected, taskID, actor.ID, "proposal rejected", nil)
	return task, nil
}

// AcceptProposal assigns the worker, marks their proposal accepted and every
// other proposal rejected, in a single read-modify-write of the aggregate.
func (s *taskService) AcceptProposal(ctx context.Context, actor ports.Actor, taskID, workerID uint) (*domain.Task, error) {
	unlock := s.lockKeys(taskKey(taskID))
	defer unlock()

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if !task.IsOwner(actor.ID) {
		return nil, ErrNotTaskOwner
	}
	if task.Status != domain.TaskStatusOpen {
		return nil, ErrTaskNotOpen
	}

	accepted := task.ProposalByWorker(workerID)
	if accepted == nil || accepted.Status != domain.ProposalStatusPending {
		return nil, ErrProposalNotFound
	}

	worker := workerID
	task.WorkerID = &worker
	task.Status = domain.TaskStatusAssigned
	for i := range task.Proposals {
		if task.Proposals[i].WorkerID == workerID {
			task.Proposals[i].Status = domain.ProposalStatusAccepted
		} else {
			task.Proposals[i].Status = domain.ProposalStatusRejected
		}
	}

	if err := s.repo.SaveWithProposals(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("proposal_accepted", "task_id", taskID, "worker_id", workerID)
	s.record(ctx, domain.EventTypeProposalAccepted, taskID, actor.ID, "proposal accepted, worker assigned", domain.JSONB{
		"worker_id": workerID,
	})
	return task, nil
}

func (s *taskService) AdvanceStatus(ctx context.Context, actor ports.Actor, taskID uint, target domain.TaskStatus) (*domain.Task, error) {
	unlock := s.lockKeys(taskKey(taskID))
	defer unlock()

	if !domain.ValidTaskStatus(target) {
		return nil, validationError("invalid status %q", target)
	}

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}

	isClient := task.IsOwner(actor.ID)
	isWorker := task.IsAssignee(actor.ID)
	if !isClient && !isWorker {
		return nil, ErrNotParticipant
	}

	if !task.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	switch target {
	case domain.TaskStatusCancelled:
		if !isClient {
			return nil, ErrCancelClientOnly
		}
	case domain.TaskStatusInProgress, domain.TaskStatusCompleted:
		if !isWorker {
			return nil, ErrWorkOnlyAssignee
		}
	}

	previous := task.Status
	task.Status = target
	// A cancelled task has no assignee; the accepted proposal keeps the history.
	if target == domain.TaskStatusCancelled {
		task.WorkerID = nil
		task.Worker = nil
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	if target == domain.TaskStatusCompleted && task.WorkerID != nil {
		if err := s.users.IncrementCompletedTasks(ctx, *task.WorkerID); err != nil {
			s.logger.Errorw("completed_tasks_increment_failed", "task_id", taskID, "worker_id", *task.WorkerID, "error", err)
		}
	}

	s.logger.Infow("task_status_changed", "task_id", taskID, "from", previous, "to", target, "actor_id", actor.ID)
	s.record(ctx, domain.EventTypeStatusChanged, taskID, actor.ID, fmt.Sprintf("status changed from %s to %s", previous, target), nil)
	return task, nil
}

func (s *taskService) Rate(ctx context.Context, actor ports.Actor, taskID uint, rating int) (*domain.Task, error) {
	unlock := s.lockKeys(taskKey(taskID))
	defer unlock()

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if !task.IsOwner(actor.ID) {
		return nil, ErrNotTaskOwner
	}
	if task.Status != domain.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}
	if task.Rating != nil {
		return nil, ErrTaskAlreadyRated
	}
	if rating < 1 || rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}

	task.Rating = &rating
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	// Recompute the worker's aggregate over all their rated tasks. Not atomic
	// with the write above; a concurrent rating may read a stale average.
	if task.WorkerID != nil {
		avg, count, err := s.repo.RatingStats(ctx, *task.WorkerID)
		if err != nil {
			s.logger.Errorw("worker_rating_stats_failed", "worker_id", *task.WorkerID, "error", err)
		} else if count > 0 {
			if err := s.users.UpdateRating(ctx, *task.WorkerID, avg); err != nil {
				s.logger.Errorw("worker_rating_update_failed", "worker_id", *task.WorkerID, "error", err)
			}
		}
	}

	s.logger.Infow("task_rated", "task_id", taskID, "rating", rating)
	s.record(ctx, domain.EventTypeTaskRated, taskID, actor.ID, "task rated", domain.JSONB{"rating": rating})
	return task, nil
}

func (s *taskService) Activity(ctx context.Context, taskID uint) ([]domain.ActivityEvent, error) {
	if _, err := s.repo.GetByID(ctx, taskID); err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	return s.activity.GetByResource(ctx, domain.ResourceTypeTask, taskID)
}

// record appends an activity event; failures are logged, never surfaced.
func (s *taskService) record(ctx context.Context, eventType string, taskID, actorID uint, message string, meta domain.JSONB) {
	event := &domain.ActivityEvent{
		Type:         eventType,
		Message:      message,
		Meta:         meta,
		ActorID:      actorID,
		ResourceID:   taskID,
		ResourceType: domain.ResourceTypeTask,
	}
	if err := s.activity.Create(ctx, event); err != nil {
		s.logger.Warnw("task_activity_record_failed", "type", eventType, "task_id", taskID, "error", err)
	}
}
