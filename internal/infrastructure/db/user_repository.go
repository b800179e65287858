package db

import (
	"context"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type userRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepository(db *gorm.DB, log *logger.Logger) ports.UserRepository {
	return &userRepository{db: db, log: log}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.log.Errorw("user_repo_create_failed", "email", user.Email, "error", err)
		return err
	}
	r.log.Infow("user_repo_create_ok", "id", user.ID, "role", user.Role)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		r.log.Warnw("user_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		r.log.Errorw("user_repo_update_failed", "id", user.ID, "error", err)
		return err
	}
	r.log.Infow("user_repo_update_ok", "id", user.ID)
	return nil
}

func (r *userRepository) IncrementCompletedTasks(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("completed_tasks", gorm.Expr("completed_tasks + 1")).Error
	if err != nil {
		r.log.Errorw("user_repo_increment_completed_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("user_repo_increment_completed_ok", "id", id)
	return nil
}

func (r *userRepository) UpdateRating(ctx context.Context, id uint, rating float64) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("rating", rating).Error
	if err != nil {
		r.log.Errorw("user_repo_update_rating_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("user_repo_update_rating_ok", "id", id, "rating", rating)
	return nil
}
