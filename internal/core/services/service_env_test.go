package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/TonyDastan/workwave/internal/config"
	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	infra "github.com/TonyDastan/workwave/internal/infrastructure/db"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the full service graph against an in-memory sqlite database.
type testEnv struct {
	db       *gorm.DB
	tasks    ports.TaskService
	auth     ports.AuthService
	messages ports.MessageService
	reviews  ports.ReviewService
	notifier *recordingNotifier
}

// recordingNotifier captures pushes instead of writing to websockets.
type recordingNotifier struct {
	pushes []recordedPush
}

type recordedPush struct {
	UserID  uint
	Message *domain.Message
}

func (n *recordingNotifier) Notify(userID uint, message *domain.Message) {
	n.pushes = append(n.pushes, recordedPush{UserID: userID, Message: message})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second connection would see a different in-memory database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := infra.RunMigrations(gdb); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return gdb
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := newTestDB(t)
	log := logger.NewNop()

	taskRepo := infra.NewTaskRepository(gdb, log)
	userRepo := infra.NewUserRepository(gdb, log)
	messageRepo := infra.NewMessageRepository(gdb, log)
	reviewRepo := infra.NewReviewRepository(gdb, log)
	activityRepo := infra.NewActivityRepository(gdb, log)

	notifier := &recordingNotifier{}

	return &testEnv{
		db: gdb,
		tasks: NewTaskService(TaskServiceConfig{
			Repository:  taskRepo,
			UserRepo:    userRepo,
			Activity:    activityRepo,
			Logger:      log,
			EnableLocks: true,
		}),
		auth: NewAuthService(AuthServiceConfig{
			UserRepo: userRepo,
			Logger:   log,
			Config: config.AuthConfig{
				JWTSecret:  "test-secret",
				TokenTTL:   time.Hour,
				BcryptCost: 4,
			},
		}),
		messages: NewMessageService(MessageServiceConfig{
			MessageRepo: messageRepo,
			UserRepo:    userRepo,
			Notifier:    notifier,
			Logger:      log,
		}),
		reviews: NewReviewService(ReviewServiceConfig{
			ReviewRepo: reviewRepo,
			TaskRepo:   taskRepo,
			UserRepo:   userRepo,
			Logger:     log,
		}),
		notifier: notifier,
	}
}

var seededUsers int

func (e *testEnv) seedUser(t *testing.T, role domain.UserRole) *domain.User {
	t.Helper()
	seededUsers++
	user := &domain.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", seededUsers),
		Email:        fmt.Sprintf("user%d-%d@example.com", seededUsers, time.Now().UnixNano()),
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) actor(user *domain.User) ports.Actor {
	return ports.Actor{ID: user.ID, Role: user.Role}
}

func (e *testEnv) reloadUser(t *testing.T, id uint) *domain.User {
	t.Helper()
	var user domain.User
	if err := e.db.First(&user, id).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return &user
}

func validTaskInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       "Deep clean a two bedroom flat",
		Description: "Full clean of kitchen and bathrooms before moving out.",
		Category:    domain.TaskCategoryCleaning,
		Location:    "Rotterdam",
		Budget:      100,
		Deadline:    time.Now().Add(7 * 24 * time.Hour),
		Skills:      []string{"cleaning"},
	}
}

const validCoverLetter = "I have five years of professional cleaning experience and my own supplies, available this week."

func validProposalInput() ports.SubmitProposalInput {
	return ports.SubmitProposalInput{
		CoverLetter:    validCoverLetter,
		ProposedBudget: 90,
		EstimatedTime:  "3 days",
	}
}
