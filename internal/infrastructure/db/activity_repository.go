package db

import (
	"context"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type activityRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepository(db *gorm.DB, log *logger.Logger) ports.ActivityRepository {
	return &activityRepository{db: db, log: log}
}

func (r *activityRepository) Create(ctx context.Context, event *domain.ActivityEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.log.Errorw("activity_repo_create_failed", "type", event.Type, "error", err)
		return err
	}
	return nil
}

func (r *activityRepository) GetByResource(ctx context.Context, resourceType string, resourceID uint) ([]domain.ActivityEvent, error) {
	var events []domain.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at desc").
		Limit(50).
		Find(&events).Error
	if err != nil {
		r.log.Errorw("activity_repo_get_by_resource_failed", "resource_type", resourceType, "resource_id", resourceID, "error", err)
		return nil, err
	}
	return events, nil
}

func (r *activityRepository) GetAll(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	var events []domain.ActivityEvent
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		r.log.Errorw("activity_repo_list_failed", "error", err)
		return nil, err
	}
	return events, nil
}
