package db

import (
	"context"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepository(db *gorm.DB, log *logger.Logger) ports.ReviewRepository {
	return &reviewRepository{db: db, log: log}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		r.log.Errorw("review_repo_create_failed", "task_id", review.TaskID, "reviewer_id", review.ReviewerID, "error", err)
		return err
	}
	r.log.Infow("review_repo_create_ok", "id", review.ID, "task_id", review.TaskID)
	return nil
}

func (r *reviewRepository) GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND reviewer_id = ?", taskID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByReviewee(ctx context.Context, revieweeID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at desc").
		Preload("Reviewer").
		Preload("Task").
		Find(&reviews).Error
	if err != nil {
		r.log.Errorw("review_repo_list_by_reviewee_failed", "reviewee_id", revieweeID, "error", err)
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByTask(ctx context.Context, taskID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Preload("Reviewer").
		Find(&reviews).Error
	if err != nil {
		r.log.Errorw("review_repo_list_by_task_failed", "task_id", taskID, "error", err)
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) AverageForReviewee(ctx context.Context, revieweeID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("reviewee_id = ?", revieweeID).
		Scan(&row).Error
	if err != nil {
		r.log.Errorw("review_repo_average_failed", "reviewee_id", revieweeID, "error", err)
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
