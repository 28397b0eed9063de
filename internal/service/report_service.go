package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/brightpath-edu/report-card-api/internal/dto"
	"github.com/brightpath-edu/report-card-api/internal/models"
	"github.com/brightpath-edu/report-card-api/internal/repository"
	"github.com/brightpath-edu/report-card-api/pkg/reportpdf"
)

// ReportService owns the read side of the record store plus student removal
// and report-card export.
type ReportService interface {
	List(ctx context.Context, search string) ([]dto.StudentResponse, error)
	GetByCode(ctx context.Context, code string) (dto.ReportCardResponse, error)
	GetByID(ctx context.Context, id uint) (dto.StudentResponse, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Stats(ctx context.Context, studentID uint) (dto.StudentStatsResponse, error)
	Remove(ctx context.Context, code string) (dto.RemoveStudentResponse, error)
	ReportCardPDF(ctx context.Context, code string) ([]byte, string, error)
}

type reportService struct {
	students repository.StudentRepository
	entries  repository.GradeEntryRepository
	exporter *reportpdf.Generator
	logger   zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(students repository.StudentRepository, entries repository.GradeEntryRepository, exporter *reportpdf.Generator, logger zerolog.Logger) ReportService {
	return &reportService{
		students: students,
		entries:  entries,
		exporter: exporter,
		logger:   logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) List(ctx context.Context, search string) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}

	return responses, nil
}

func (s *reportService) GetByCode(ctx context.Context, code string) (dto.ReportCardResponse, error) {
	student, entries, err := s.studentWithEntries(ctx, code)
	if err != nil {
		return dto.ReportCardResponse{}, err
	}

	responses := make([]dto.GradeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewGradeEntryResponse(entry))
	}

	return dto.ReportCardResponse{
		Student: dto.NewStudentResponse(student),
		Entries: responses,
	}, nil
}

func (s *reportService) GetByID(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *reportService) CodeExists(ctx context.Context, code string) (bool, error) {
	return s.students.CodeExists(ctx, strings.TrimSpace(code))
}

func (s *reportService) Stats(ctx context.Context, studentID uint) (dto.StudentStatsResponse, error) {
	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}
	if !exists {
		return dto.StudentStatsResponse{}, ErrStudentNotFound
	}

	stats, err := s.entries.Stats(ctx, studentID)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	return dto.StudentStatsResponse{
		EntryCount:        stats.EntryCount,
		AverageOfAverages: stats.AverageOfAverages,
		AverageAttendance: stats.AverageAttendance,
	}, nil
}

// Remove deletes a student and all grade entries as one transaction. A
// missing enrollment code is an ordinary result so callers can branch
// without error handling; storage failures still surface as errors.
func (s *reportService) Remove(ctx context.Context, code string) (dto.RemoveStudentResponse, error) {
	tracer := otel.Tracer("github.com/brightpath-edu/report-card-api/internal/service/report")
	ctx, span := tracer.Start(ctx, "student.remove")
	defer span.End()
	span.SetAttributes(attribute.String("enrollment_code", code))

	student, err := s.students.FindByEnrollmentCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RemoveStudentResponse{Removed: false, Message: "student not found"}, nil
		}
		return dto.RemoveStudentResponse{}, err
	}

	if err := s.students.DeleteWithEntries(ctx, student.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RemoveStudentResponse{Removed: false, Message: "student not found"}, nil
		}
		return dto.RemoveStudentResponse{}, err
	}

	s.logger.Info().
		Uint("student_id", student.ID).
		Str("enrollment_code", student.EnrollmentCode).
		Msg("student removed")

	return dto.RemoveStudentResponse{Removed: true, Message: "student removed"}, nil
}

// ReportCardPDF renders the report card document. The exporter only
// transcribes stored values; every number it prints was computed when the
// grade entry was created.
func (s *reportService) ReportCardPDF(ctx context.Context, code string) ([]byte, string, error) {
	student, entries, err := s.studentWithEntries(ctx, code)
	if err != nil {
		return nil, "", err
	}

	rows := make([]reportpdf.Entry, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, reportpdf.Entry{
			Subject:    entry.Subject,
			Term1:      entry.Term1,
			Term2:      entry.Term2,
			Average:    entry.Average,
			Attendance: entry.Attendance,
			Status:     entry.Status,
		})
	}

	document, err := s.exporter.Generate(reportpdf.Student{
		Name:           student.Name,
		EnrollmentCode: student.EnrollmentCode,
		GradeLevel:     student.GradeLevel,
		Birthdate:      student.Birthdate,
		Guardian:       student.Guardian,
	}, rows)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("report_card_%s.pdf", strings.ReplaceAll(student.Name, " ", "_"))
	return document, filename, nil
}

func (s *reportService) studentWithEntries(ctx context.Context, code string) (models.Student, []models.GradeEntry, error) {
	student, err := s.students.FindByEnrollmentCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, nil, ErrStudentNotFound
		}
		return models.Student{}, nil, err
	}

	entries, err := s.entries.ListForStudent(ctx, student.ID)
	if err != nil {
		return models.Student{}, nil, err
	}

	return student, entries, nil
}
