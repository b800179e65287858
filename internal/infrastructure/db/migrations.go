package db

import (
	"github.com/TonyDastan/workwave/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Task{},
		&domain.Proposal{},
		&domain.Message{},
		&domain.Review{},
		&domain.ActivityEvent{},
	)
	if err != nil {
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		return err
	}

	return nil
}

func createCustomIndexes(db *gorm.DB) error {
	// One proposal per worker per task
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_proposals_task_worker
		ON proposals (task_id, worker_id)
	`).Error; err != nil {
		return err
	}

	// One review per reviewer per task
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_task_reviewer
		ON reviews (task_id, reviewer_id)
	`).Error; err != nil {
		return err
	}

	// Index for activity feed lookups by resource
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_activity_events_resource
		ON activity_events (resource_type, resource_id)
	`).Error; err != nil {
		return err
	}

	return nil
}
