package dto

import (
	"time"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
)

type CreateReviewRequest struct {
	TaskID     uint   `json:"task_id"`
	RevieweeID uint   `json:"reviewee_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	ReviewType string `json:"review_type"`
}

func (r *CreateReviewRequest) Validate() []string {
	var errors []string

	if r.TaskID == 0 {
		errors = append(errors, "task_id is required")
	}
	if r.RevieweeID == 0 {
		errors = append(errors, "reviewee_id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		errors = append(errors, "rating must be between 1 and 5")
	}
	if r.Comment == "" {
		errors = append(errors, "comment is required")
	}
	if r.ReviewType != string(domain.ReviewTypeClientToWorker) && r.ReviewType != string(domain.ReviewTypeWorkerToClient) {
		errors = append(errors, "review_type must be client-to-worker or worker-to-client")
	}

	return errors
}

func (r *CreateReviewRequest) ToInput() ports.CreateReviewInput {
	return ports.CreateReviewInput{
		TaskID:     r.TaskID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewType: domain.ReviewType(r.ReviewType),
	}
}

type ReviewResponse struct {
	ID         uint              `json:"id"`
	TaskID     uint              `json:"task_id"`
	TaskTitle  string            `json:"task_title,omitempty"`
	ReviewerID uint              `json:"reviewer_id"`
	Reviewer   *UserSummary      `json:"reviewer,omitempty"`
	RevieweeID uint              `json:"reviewee_id"`
	Rating     int               `json:"rating"`
	Comment    string            `json:"comment"`
	ReviewType domain.ReviewType `json:"review_type"`
	CreatedAt  time.Time         `json:"created_at"`
}

func ReviewToResponse(review *domain.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:         review.ID,
		TaskID:     review.TaskID,
		ReviewerID: review.ReviewerID,
		Reviewer:   UserToSummary(review.Reviewer),
		RevieweeID: review.RevieweeID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewType: review.ReviewType,
		CreatedAt:  review.CreatedAt,
	}
	if review.Task != nil {
		resp.TaskTitle = review.Task.Title
	}
	return resp
}

func ReviewsToResponse(reviews []domain.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ReviewToResponse(&reviews[i])
	}
	return responses
}
