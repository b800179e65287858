package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
)

// completedTask drives a task through the full lifecycle so reviews are allowed.
func completedTask(t *testing.T, env *testEnv) (*domain.Task, *domain.User, *domain.User) {
	t.Helper()
	ctx := context.Background()
	client := env.seedUser(t, domain.UserRoleClient)
	worker := env.seedUser(t, domain.UserRoleWorker)

	task, err := env.tasks.Create(ctx, env.actor(client), validTaskInput())
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := env.tasks.SubmitProposal(ctx, env.actor(worker), task.ID, validProposalInput()); err != nil {
		t.Fatalf("submit proposal: %v", err)
	}
	if _, err := env.tasks.AcceptProposal(ctx, env.actor(client), task.ID, worker.ID); err != nil {
		t.Fatalf("accept proposal: %v", err)
	}
	if _, err := env.tasks.AdvanceStatus(ctx, env.actor(worker), task.ID, domain.TaskStatusInProgress); err != nil {
		t.Fatalf("start work: %v", err)
	}
	task, err = env.tasks.AdvanceStatus(ctx, env.actor(worker), task.ID, domain.TaskStatusCompleted)
	if err != nil {
		t.Fatalf("complete work: %v", err)
	}
	return task, client, worker
}

func TestCreateReviewBothDirections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	task, client, worker := completedTask(t, env)

	review, err := env.reviews.Create(ctx, client.ID, ports.CreateReviewInput{
		TaskID:     task.ID,
		RevieweeID: worker.ID,
		Rating:     4,
		Comment:    "Thorough and on time.",
		ReviewType: domain.ReviewTypeClientToWorker,
	})
	if err != nil {
		t.Fatalf("client review: %v", err)
	}
	if review.ID == 0 {
		t.Error("review not persisted")
	}
	if got := env.reloadUser(t, worker.ID).Rating; got != 4 {
		t.Errorf("worker rating = %v, want 4", got)
	}

	if _, err := env.reviews.Create(ctx, worker.ID, ports.CreateReviewInput{
		TaskID:     task.ID,
		RevieweeID: client.ID,
		Rating:     5,
		Comment:    "Clear instructions, quick payment.",
		ReviewType: domain.ReviewTypeWorkerToClient,
	}); err != nil {
		t.Fatalf("worker review: %v", err)
	}
	if got := env.reloadUser(t, client.ID).Rating; got != 5 {
		t.Errorf("client rating = %v, want 5", got)
	}

	taskReviews, err := env.reviews.ForTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("reviews for task: %v", err)
	}
	if len(taskReviews) != 2 {
		t.Errorf("got %d task reviews, want 2", len(taskReviews))
	}

	workerReviews, err := env.reviews.ForUser(ctx, worker.ID)
	if err != nil {
		t.Fatalf("reviews for worker: %v", err)
	}
	if len(workerReviews) != 1 {
		t.Errorf("got %d worker reviews, want 1", len(workerReviews))
	}
}

func TestReviewAveragesAccumulate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Two completed tasks by the same worker would need two clients; reviews
	// from different tasks all feed the same aggregate.
	taskA, clientA, workerA := completedTask(t, env)
	taskB, clientB, _ := completedTask(t, env)

	if _, err := env.reviews.Create(ctx, clientA.ID, ports.CreateReviewInput{
		TaskID: taskA.ID, RevieweeID: workerA.ID, Rating: 2,
		Comment: "Left the hallway unfinished.", ReviewType: domain.ReviewTypeClientToWorker,
	}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := env.reviews.Create(ctx, clientB.ID, ports.CreateReviewInput{
		TaskID: taskB.ID, RevieweeID: workerA.ID, Rating: 4,
		Comment: "Good work overall.", ReviewType: domain.ReviewTypeClientToWorker,
	}); err != nil {
		t.Fatalf("second review: %v", err)
	}

	if got := env.reloadUser(t, workerA.ID).Rating; got != 3 {
		t.Errorf("aggregated rating = %v, want 3", got)
	}
}

func TestReviewGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	task, client, worker := completedTask(t, env)
	stranger := env.seedUser(t, domain.UserRoleWorker)

	base := ports.CreateReviewInput{
		TaskID:     task.ID,
		RevieweeID: worker.ID,
		Rating:     4,
		Comment:    "Fine.",
		ReviewType: domain.ReviewTypeClientToWorker,
	}

	bad := base
	bad.Rating = 0
	if _, err := env.reviews.Create(ctx, client.ID, bad); !errors.Is(err, ErrValidation) {
		t.Errorf("rating 0: err = %v, want ErrValidation", err)
	}
	bad = base
	bad.Comment = ""
	if _, err := env.reviews.Create(ctx, client.ID, bad); !errors.Is(err, ErrValidation) {
		t.Errorf("empty comment: err = %v, want ErrValidation", err)
	}
	bad = base
	bad.ReviewType = "anonymous"
	if _, err := env.reviews.Create(ctx, client.ID, bad); !errors.Is(err, ErrValidation) {
		t.Errorf("bad type: err = %v, want ErrValidation", err)
	}

	if _, err := env.reviews.Create(ctx, stranger.ID, base); !errors.Is(err, ErrNotReviewParticipant) {
		t.Errorf("stranger review: err = %v, want ErrNotReviewParticipant", err)
	}
	if _, err := env.reviews.Create(ctx, worker.ID, base); !errors.Is(err, ErrReviewTypeMismatch) {
		t.Errorf("worker using client-to-worker type: err = %v, want ErrReviewTypeMismatch", err)
	}

	if _, err := env.reviews.Create(ctx, client.ID, base); err != nil {
		t.Fatalf("review: %v", err)
	}
	if _, err := env.reviews.Create(ctx, client.ID, base); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("second review: err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestReviewRequiresCompletedTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.seedUser(t, domain.UserRoleClient)
	worker := env.seedUser(t, domain.UserRoleWorker)

	task, err := env.tasks.Create(ctx, env.actor(client), validTaskInput())
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := env.reviews.Create(ctx, client.ID, ports.CreateReviewInput{
		TaskID: task.ID, RevieweeID: worker.ID, Rating: 5,
		Comment: "Too early.", ReviewType: domain.ReviewTypeClientToWorker,
	}); !errors.Is(err, ErrReviewNotCompleted) {
		t.Errorf("err = %v, want ErrReviewNotCompleted", err)
	}

	if _, err := env.reviews.ForTask(ctx, task.ID+999); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("reviews of unknown task: err = %v, want ErrTaskNotFound", err)
	}
}
