package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/gofiber/fiber/v2"
)

// listRecorder captures the filter the handler builds from the query string.
type listRecorder struct {
	ports.TaskService
	filter ports.TaskFilter
}

func (s *listRecorder) List(ctx context.Context, filter ports.TaskFilter) (*ports.TaskPage, error) {
	s.filter = filter
	return &ports.TaskPage{CurrentPage: 1, TotalPages: 1}, nil
}

func TestGetTasksUrgentFilterParsing(t *testing.T) {
	svc := &listRecorder{}
	h := NewTaskHandler(svc, logger.NewNop())
	app := fiber.New()
	app.Get("/api/tasks", h.GetTasks)

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{name: "true", query: "?is_urgent=true", want: "true"},
		{name: "false", query: "?is_urgent=false", want: "false"},
		{name: "absent", query: "", want: "unset"},
		{name: "garbage", query: "?is_urgent=maybe", want: "unset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/tasks"+tc.query, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}

			got := "unset"
			if svc.filter.IsUrgent != nil {
				if *svc.filter.IsUrgent {
					got = "true"
				} else {
					got = "false"
				}
			}
			if got != tc.want {
				t.Errorf("is_urgent filter = %s, want %s", got, tc.want)
			}
			svc.filter = ports.TaskFilter{}
		})
	}
}
