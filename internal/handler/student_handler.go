package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/brightpath-edu/report-card-api/internal/dto"
	"github.com/brightpath-edu/report-card-api/internal/service"
	"github.com/brightpath-edu/report-card-api/internal/utils"
)

// StudentHandler wires student record endpoints.
type StudentHandler struct {
	enrollment service.EnrollmentService
	reports    service.ReportService
	logger     zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(enrollment service.EnrollmentService, reports service.ReportService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		enrollment: enrollment,
		reports:    reports,
		logger:     logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student routes to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.enroll)
	router.Get("/code/:code", h.getByCode)
	router.Get("/code/:code/exists", h.codeExists)
	router.Delete("/code/:code", h.remove)
	router.Get("/:id", h.getByID)
	router.Post("/:id/grades", h.recordGrade)
	router.Get("/:id/stats", h.stats)
}

// RegisterSubjects attaches the standard subject list route.
func (h *StudentHandler) RegisterSubjects(router fiber.Router) {
	router.Get("", h.subjects)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.reports.List(c.Context(), c.Query("search"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) enroll(c *fiber.Ctx) error {
	var payload dto.EnrollStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.enrollment.Enroll(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEnrollmentCode):
			return utils.SendError(c, fiber.StatusConflict, "enrollment code already in use")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to enroll student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to enroll student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student enrolled", student)
}

func (h *StudentHandler) getByCode(c *fiber.Ctx) error {
	report, err := h.reports.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch student")
	}

	return utils.SendSuccess(c, "student retrieved", report)
}

func (h *StudentHandler) codeExists(c *fiber.Ctx) error {
	exists, err := h.reports.CodeExists(c.Context(), c.Params("code"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to check enrollment code")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to check enrollment code")
	}

	return utils.SendSuccess(c, "enrollment code checked", fiber.Map{"exists": exists})
}

func (h *StudentHandler) getByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	student, err := h.reports.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch student")
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) recordGrade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.RecordGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.enrollment.RecordGrade(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownStudent):
			return utils.SendError(c, fiber.StatusNotFound, "unknown student")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record grade")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record grade")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade recorded", entry)
}

func (h *StudentHandler) stats(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	stats, err := h.reports.Stats(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute stats")
	}

	return utils.SendSuccess(c, "stats computed", stats)
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	result, err := h.reports.Remove(c.Context(), c.Params("code"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove student")
	}

	if !result.Removed {
		return utils.SendError(c, fiber.StatusNotFound, result.Message)
	}

	return utils.SendSuccess(c, result.Message, result)
}

func (h *StudentHandler) subjects(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "subjects retrieved", h.enrollment.Subjects())
}
