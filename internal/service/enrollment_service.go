package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/brightpath-edu/report-card-api/internal/dto"
	"github.com/brightpath-edu/report-card-api/internal/grading"
	"github.com/brightpath-edu/report-card-api/internal/models"
	"github.com/brightpath-edu/report-card-api/internal/repository"
)

// EnrollmentService owns the write side of the record store: enrolling
// students and recording grade entries.
type EnrollmentService interface {
	Enroll(ctx context.Context, req dto.EnrollStudentRequest) (dto.StudentResponse, error)
	RecordGrade(ctx context.Context, studentID uint, req dto.RecordGradeRequest) (dto.GradeEntryResponse, error)
	Subjects() []string
}

type enrollmentService struct {
	students  repository.StudentRepository
	entries   repository.GradeEntryRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(students repository.StudentRepository, entries repository.GradeEntryRepository, validator *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		students:  students,
		entries:   entries,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll creates the student and one grade entry per submitted subject. The
// evaluator fixes each entry's average and status at creation time; they are
// never recomputed afterwards.
func (s *enrollmentService) Enroll(ctx context.Context, req dto.EnrollStudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	tracer := otel.Tracer("github.com/brightpath-edu/report-card-api/internal/service/enrollment")
	ctx, span := tracer.Start(ctx, "enrollment.enroll")
	defer span.End()

	code := strings.TrimSpace(req.EnrollmentCode)
	span.SetAttributes(attribute.String("enrollment_code", code))

	exists, err := s.students.CodeExists(ctx, code)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if exists {
		return dto.StudentResponse{}, ErrDuplicateEnrollmentCode
	}

	student := models.Student{
		Name:           s.clean(req.Name),
		Birthdate:      strings.TrimSpace(req.Birthdate),
		GradeLevel:     s.clean(req.GradeLevel),
		Guardian:       s.clean(req.Guardian),
		EnrollmentCode: code,
	}

	if err := s.students.Create(ctx, &student); err != nil {
		// The unique index is the authority under concurrent enrollments;
		// the pre-check above only produces a friendlier path.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StudentResponse{}, ErrDuplicateEnrollmentCode
		}
		return dto.StudentResponse{}, err
	}

	for _, grades := range req.Grades {
		average, status := grading.Evaluate(grades.Term1, grades.Term2, grades.Attendance)
		entry := models.GradeEntry{
			StudentID:  student.ID,
			Subject:    s.clean(grades.Subject),
			Term1:      grades.Term1,
			Term2:      grades.Term2,
			Average:    average,
			Attendance: grades.Attendance,
			Status:     string(status),
		}
		if err := s.entries.Create(ctx, &entry); err != nil {
			return dto.StudentResponse{}, err
		}
	}

	s.logger.Info().
		Uint("student_id", student.ID).
		Str("enrollment_code", student.EnrollmentCode).
		Int("subjects", len(req.Grades)).
		Msg("student enrolled")

	return dto.NewStudentResponse(student), nil
}

// RecordGrade appends one grade entry. Repeated subjects coexist; the store
// never deduplicates by subject.
func (s *enrollmentService) RecordGrade(ctx context.Context, studentID uint, req dto.RecordGradeRequest) (dto.GradeEntryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GradeEntryResponse{}, err
	}

	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return dto.GradeEntryResponse{}, err
	}
	if !exists {
		return dto.GradeEntryResponse{}, ErrUnknownStudent
	}

	average, status := grading.Evaluate(req.Term1, req.Term2, req.Attendance)
	entry := models.GradeEntry{
		StudentID:  studentID,
		Subject:    s.clean(req.Subject),
		Term1:      req.Term1,
		Term2:      req.Term2,
		Average:    average,
		Attendance: req.Attendance,
		Status:     string(status),
	}

	if err := s.entries.Create(ctx, &entry); err != nil {
		return dto.GradeEntryResponse{}, err
	}

	s.logger.Info().
		Uint("student_id", studentID).
		Str("subject", entry.Subject).
		Str("status", entry.Status).
		Msg("grade recorded")

	return dto.NewGradeEntryResponse(entry), nil
}

// Subjects returns the fixed curriculum used to drive per-subject input forms.
func (s *enrollmentService) Subjects() []string {
	return grading.StandardSubjects()
}

func (s *enrollmentService) clean(input string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(input))
}
