package handlers

import (
	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/TonyDastan/workwave/internal/transport/http/dto"
	httpmw "github.com/TonyDastan/workwave/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service ports.AuthService
	logger  *logger.Logger
}

func NewAuthHandler(service ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.logger.Warnw("register_validation_failed", "details", errs)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	user, token, err := h.service.Register(c.Context(), req.ToInput())
	if err != nil {
		h.logger.Warnw("register_failed", "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("register_success", "id", user.ID, "role", user.Role)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "user registered successfully",
		Token:   token,
		User:    dto.UserToResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	user, token, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warnw("login_failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(dto.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    dto.UserToResponse(user),
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	actor := httpmw.CurrentActor(c)
	user, err := h.service.Profile(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserToResponse(user))
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	actor := httpmw.CurrentActor(c)
	user, err := h.service.UpdateProfile(c.Context(), actor.ID, req.ToInput())
	if err != nil {
		h.logger.Warnw("profile_update_failed", "user_id", actor.ID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.UserToResponse(user))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	actor := httpmw.CurrentActor(c)
	if err := h.service.ChangePassword(c.Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.logger.Warnw("password_change_failed", "user_id", actor.ID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "password updated successfully"})
}

func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid user id",
		})
	}

	user, err := h.service.GetUser(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserToPublicProfile(user))
}
