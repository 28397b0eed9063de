package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/brightpath-edu/report-card-api/internal/service"
	"github.com/brightpath-edu/report-card-api/internal/utils"
)

// ReportHandler serves the report-card PDF download.
type ReportHandler struct {
	reports service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches the report-card route to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/code/:code/report-card", h.download)
}

func (h *ReportHandler) download(c *fiber.Ctx) error {
	document, filename, err := h.reports.ReportCardPDF(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to generate report card")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate report card")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(document)
}
