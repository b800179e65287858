package services

import (
	"context"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
)

type reviewService struct {
	reviews ports.ReviewRepository
	tasks   ports.TaskRepository
	users   ports.UserRepository
	logger  *logger.Logger
}

type ReviewServiceConfig struct {
	ReviewRepo ports.ReviewRepository
	TaskRepo   ports.TaskRepository
	UserRepo   ports.UserRepository
	Logger     *logger.Logger
}

func NewReviewService(cfg ReviewServiceConfig) ports.ReviewService {
	return &reviewService{
		reviews: cfg.ReviewRepo,
		tasks:   cfg.TaskRepo,
		users:   cfg.UserRepo,
		logger:  cfg.Logger,
	}
}

func (s *reviewService) Create(ctx context.Context, reviewerID uint, input ports.CreateReviewInput) (*domain.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}
	if input.Comment == "" {
		return nil, validationError("review comment is required")
	}
	if input.ReviewType != domain.ReviewTypeClientToWorker && input.ReviewType != domain.ReviewTypeWorkerToClient {
		return nil, validationError("invalid review type %q", input.ReviewType)
	}

	task, err := s.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	if task.Status != domain.TaskStatusCompleted {
		return nil, ErrReviewNotCompleted
	}

	isClient := task.IsOwner(reviewerID)
	isWorker := task.IsAssignee(reviewerID)
	if !isClient && !isWorker {
		return nil, ErrNotReviewParticipant
	}
	if input.ReviewType == domain.ReviewTypeClientToWorker && !isClient {
		return nil, ErrReviewTypeMismatch
	}
	if input.ReviewType == domain.ReviewTypeWorkerToClient && !isWorker {
		return nil, ErrReviewTypeMismatch
	}

	if existing, _ := s.reviews.GetByTaskAndReviewer(ctx, input.TaskID, reviewerID); existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &domain.Review{
		TaskID:     input.TaskID,
		ReviewerID: reviewerID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		ReviewType: input.ReviewType,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	avg, count, err := s.reviews.AverageForReviewee(ctx, input.RevieweeID)
	if err != nil {
		s.logger.Errorw("reviewee_average_failed", "reviewee_id", input.RevieweeID, "error", err)
	} else if count > 0 {
		if err := s.users.UpdateRating(ctx, input.RevieweeID, avg); err != nil {
			s.logger.Errorw("reviewee_rating_update_failed", "reviewee_id", input.RevieweeID, "error", err)
		}
	}

	s.logger.Infow("review_created", "id", review.ID, "task_id", input.TaskID, "reviewer_id", reviewerID)
	return review, nil
}

func (s *reviewService) ForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	return s.reviews.ListByReviewee(ctx, userID)
}

func (s *reviewService) ForTask(ctx context.Context, taskID uint) ([]domain.Review, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, notFoundOr(err, ErrTaskNotFound)
	}
	return s.reviews.ListByTask(ctx, taskID)
}
