package dto

import (
	"testing"
	"time"
)

func validCreateTaskRequest() CreateTaskRequest {
	return CreateTaskRequest{
		Title:       "Paint the fence",
		Description: "Two coats, weatherproof paint provided.",
		Category:    "Handyman",
		Location:    "Utrecht",
		Budget:      120,
		Deadline:    time.Now().Add(48 * time.Hour),
		Skills:      []string{"painting"},
	}
}

func TestCreateTaskRequestValidate(t *testing.T) {
	valid := validCreateTaskRequest()
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("valid request produced errors: %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*CreateTaskRequest)
	}{
		{"missing title", func(r *CreateTaskRequest) { r.Title = "" }},
		{"missing description", func(r *CreateTaskRequest) { r.Description = "" }},
		{"unknown category", func(r *CreateTaskRequest) { r.Category = "Alchemy" }},
		{"missing location", func(r *CreateTaskRequest) { r.Location = "" }},
		{"zero budget", func(r *CreateTaskRequest) { r.Budget = 0 }},
		{"zero deadline", func(r *CreateTaskRequest) { r.Deadline = time.Time{} }},
		{"no skills", func(r *CreateTaskRequest) { r.Skills = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateTaskRequest()
			tc.mutate(&req)
			if errs := req.Validate(); len(errs) == 0 {
				t.Error("expected validation errors, got none")
			}
		})
	}
}

func TestSubmitProposalRequestValidate(t *testing.T) {
	req := SubmitProposalRequest{
		CoverLetter:    "I can do this.",
		ProposedBudget: 80,
		EstimatedTime:  "2 days",
	}
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("valid request produced errors: %v", errs)
	}

	empty := SubmitProposalRequest{}
	if errs := empty.Validate(); len(errs) != 3 {
		t.Errorf("empty request produced %d errors, want 3: %v", len(errs), errs)
	}
}

func TestUpdateTaskRequestToInput(t *testing.T) {
	category := "Gardening"
	budget := 75.0
	req := UpdateTaskRequest{Category: &category, Budget: &budget}

	input := req.ToInput()
	if input.Category == nil || string(*input.Category) != "Gardening" {
		t.Errorf("category = %v", input.Category)
	}
	if input.Budget == nil || *input.Budget != 75 {
		t.Errorf("budget = %v", input.Budget)
	}
	if input.Title != nil || input.Deadline != nil {
		t.Error("unset fields should stay nil")
	}
}
