package handlers

import (
	"strconv"
	"strings"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/TonyDastan/workwave/internal/transport/http/dto"
	httpmw "github.com/TonyDastan/workwave/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.logger.Warnw("task_create_validation_failed", "details", errs)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	actor := httpmw.CurrentActor(c)
	h.logger.Infow("task_create_request", "client_id", actor.ID, "category", req.Category)
	task, err := h.service.Create(c.Context(), actor, req.ToInput())
	if err != nil {
		h.logger.Warnw("task_create_failed", "client_id", actor.ID, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("task_create_success", "id", task.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	filter := ports.TaskFilter{
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		Location:  c.Query("location"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by", "created_at"),
		SortOrder: c.Query("sort_order", "desc"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 10),
	}
	if skills := c.Query("skills"); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}
	if raw := c.Query("min_budget"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinBudget = &v
		}
	}
	if raw := c.Query("max_budget"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxBudget = &v
		}
	}
	if raw := c.Query("is_urgent"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.IsUrgent = &v
		}
	}

	page, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Errorw("tasks_list_failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(dto.TaskPageToResponse(page))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	task, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	task, err := h.service.Update(c.Context(), httpmw.CurrentActor(c), id, req.ToInput())
	if err != nil {
		h.logger.Warnw("task_update_failed", "id", id, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	if err := h.service.Delete(c.Context(), httpmw.CurrentActor(c), id); err != nil {
		h.logger.Warnw("task_delete_failed", "id", id, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "task removed"})
}

func (h *TaskHandler) SubmitProposal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	var req dto.SubmitProposalRequest
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
	h.logger.Infow("proposal_submit_request", "task_id", id, "worker_id", actor.ID)
	task, err := h.service.SubmitProposal(c.Context(), actor, id, req.ToInput())
	if err != nil {
		h.logger.Warnw("proposal_submit_failed", "task_id", id, "worker_id", actor.ID, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) WithdrawProposal(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}
	proposalID, err := parseID(c, "proposalId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid proposal id",
		})
	}

	if err := h.service.WithdrawProposal(c.Context(), httpmw.CurrentActor(c), taskID, proposalID); err != nil {
		h.logger.Warnw("proposal_withdraw_failed", "task_id", taskID, "proposal_id", proposalID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "proposal withdrawn"})
}

func (h *TaskHandler) RejectProposal(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}
	proposalID, err := parseID(c, "proposalId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid proposal id",
		})
	}

	task, err := h.service.RejectProposal(c.Context(), httpmw.CurrentActor(c), taskID, proposalID)
	if err != nil {
		h.logger.Warnw("proposal_reject_failed", "task_id", taskID, "proposal_id", proposalID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) AcceptProposal(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	var req dto.AcceptProposalRequest
	if err := c.BodyParser(&req); err != nil || req.WorkerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "worker_id is required",
		})
	}

	actor := httpmw.CurrentActor(c)
	h.logger.Infow("proposal_accept_request", "task_id", taskID, "worker_id", req.WorkerID, "client_id", actor.ID)
	task, err := h.service.AcceptProposal(c.Context(), actor, taskID, req.WorkerID)
	if err != nil {
		h.logger.Warnw("proposal_accept_failed", "task_id", taskID, "worker_id", req.WorkerID, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("proposal_accept_success", "task_id", taskID, "worker_id", req.WorkerID)
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "status is required",
		})
	}

	task, err := h.service.AdvanceStatus(c.Context(), httpmw.CurrentActor(c), taskID, domain.TaskStatus(req.Status))
	if err != nil {
		h.logger.Warnw("task_status_update_failed", "task_id", taskID, "target", req.Status, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) RateTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	var req dto.RateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	task, err := h.service.Rate(c.Context(), httpmw.CurrentActor(c), taskID, req.Rating)
	if err != nil {
		h.logger.Warnw("task_rate_failed", "task_id", taskID, "rating", req.Rating, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) GetActivity(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid task id",
		})
	}

	events, err := h.service.Activity(c.Context(), taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(events)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
