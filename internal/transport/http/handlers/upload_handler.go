package handlers

import (
	"io"
	"mime/multipart"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/TonyDastan/workwave/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

// maxUploadFiles caps one multi-file request.
const maxUploadFiles = 5

type UploadHandler struct {
	service ports.UploadService
	logger  *logger.Logger
}

func NewUploadHandler(service ports.UploadService, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{service: service, logger: logger}
}

func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "file is required",
		})
	}

	data, err := h.readFormFile(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "could not read uploaded file",
		})
	}

	url, err := h.service.Upload(c.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		h.logger.Warnw("upload_failed", "filename", fileHeader.Filename, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("upload_success", "filename", fileHeader.Filename, "url", url)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

// UploadFiles stores several files from one multipart request under the
// "files" field.
func (h *UploadHandler) UploadFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "files are required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "files are required",
		})
	}
	if len(files) > maxUploadFiles {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "too many files: the limit is 5 per request",
		})
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		data, err := h.readFormFile(fileHeader)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "could not read uploaded file",
			})
		}

		url, err := h.service.Upload(c.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			h.logger.Warnw("upload_failed", "filename", fileHeader.Filename, "error", err)
			return respondError(c, err)
		}
		urls = append(urls, url)
	}

	h.logger.Infow("multi_upload_success", "count", len(urls))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"urls": urls})
}

func (h *UploadHandler) DeleteFile(c *fiber.Ctx) error {
	fileID := c.Params("id")
	if err := h.service.Remove(c.Context(), fileID); err != nil {
		h.logger.Warnw("upload_delete_failed", "file_id", fileID, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("upload_delete_success", "file_id", fileID)
	return c.JSON(dto.SuccessResponse{Message: "file removed"})
}

func (h *UploadHandler) readFormFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("upload_open_failed", "filename", fileHeader.Filename, "error", err)
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorw("upload_read_failed", "filename", fileHeader.Filename, "error", err)
		return nil, err
	}
	return data, nil
}
