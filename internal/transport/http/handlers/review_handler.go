package handlers

import (
	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/TonyDastan/workwave/internal/transport/http/dto"
	httpmw "github.com/TonyDastan/workwave/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	service ports.ReviewService
	logger  *logger.Logger
}

func NewReviewHandler(service ports.ReviewService, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	actor := httpmw.CurrentActor(c)
	review, err := h.service.Create(c.Context(), actor.ID, req.ToInput())
	if err != nil {
		h.logger.Warnw("review_create_failed", "reviewer_id", actor.ID, "task_id", req.TaskID, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ReviewToResponse(review))
}

func (h *ReviewHandler) GetUserReviews(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid user id",
		})
	}

	reviews, err := h.service.ForUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReviewsToResponse(reviews))
}

func (h *ReviewHandler) GetTaskReviews(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	reviews, err := h.service.ForTask(c.Context(), taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReviewsToResponse(reviews))
}
