package db

import (
	"context"
	"strings"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "title", task.Title, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID, "client_id", task.ClientID)
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Preload("Proposals").
		Preload("Proposals.Worker").
		Preload("Client").
		Preload("Worker").
		First(&task, id).Error
	if err != nil {
		r.log.Warnw("task_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &task, nil
}

var taskSortColumns = map[string]string{
	"created_at": "created_at",
	"budget":     "budget",
	"deadline":   "deadline",
}

func (r *taskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Task{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	if filter.IsUrgent != nil {
		q = q.Where("is_urgent = ?", *filter.IsUrgent)
	}
	if filter.MinBudget != nil {
		q = q.Where("budget >= ?", *filter.MinBudget)
	}
	if filter.MaxBudget != nil {
		q = q.Where("budget <= ?", *filter.MaxBudget)
	}
	if len(filter.Skills) > 0 {
		// Skills are stored as a JSON array; match any of the requested ones.
		clauses := make([]string, 0, len(filter.Skills))
		args := make([]interface{}, 0, len(filter.Skills))
		for _, skill := range filter.Skills {
			clauses = append(clauses, "skills LIKE ?")
			args = append(args, `%"`+skill+`"%`)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.log.Errorw("task_repo_count_failed", "error", err)
		return nil, 0, err
	}

	sortBy, ok := taskSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := "desc"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "asc"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var tasks []domain.Task
	err := q.Order(sortBy + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Proposals").
		Preload("Client").
		Preload("Worker").
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_list_failed", "error", err)
		return nil, 0, err
	}

	r.log.Infow("task_repo_list_ok", "count", len(tasks), "total", total)
	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		r.log.Errorw("task_repo_update_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_update_ok", "id", task.ID, "status", task.Status)
	return nil
}

func (r *taskRepository) SaveWithProposals(ctx context.Context, task *domain.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(task).Error
	})
	if err != nil {
		r.log.Errorw("task_repo_save_with_proposals_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_save_with_proposals_ok", "id", task.ID, "proposals", len(task.Proposals))
	return nil
}

func (r *taskRepository) DeleteProposal(ctx context.Context, proposalID uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Proposal{}, proposalID).Error; err != nil {
		r.log.Errorw("task_repo_delete_proposal_failed", "proposal_id", proposalID, "error", err)
		return err
	}
	r.log.Infow("task_repo_delete_proposal_ok", "proposal_id", proposalID)
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error; err != nil {
		r.log.Errorw("task_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("task_repo_delete_ok", "id", id)
	return nil
}

func (r *taskRepository) RatingStats(ctx context.Context, workerID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("worker_id = ? AND rating IS NOT NULL", workerID).
		Scan(&row).Error
	if err != nil {
		r.log.Errorw("task_repo_rating_stats_failed", "worker_id", workerID, "error", err)
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
