package dto

import (
	"time"

	"github.com/brightpath-edu/report-card-api/internal/models"
)

// SubjectGradesInput carries one subject's raw scores at enrollment time.
type SubjectGradesInput struct {
	Subject    string  `json:"subject" validate:"required"`
	Term1      float64 `json:"term1" validate:"gte=0,lte=10"`
	Term2      float64 `json:"term2" validate:"gte=0,lte=10"`
	Attendance float64 `json:"attendance" validate:"gte=0,lte=100"`
}

// EnrollStudentRequest is the payload for enrolling a new student together
// with their initial per-subject grades.
type EnrollStudentRequest struct {
	Name           string               `json:"name" validate:"required"`
	Birthdate      string               `json:"birthdate" validate:"required"`
	GradeLevel     string               `json:"grade_level" validate:"required"`
	Guardian       string               `json:"guardian" validate:"required"`
	EnrollmentCode string               `json:"enrollment_code" validate:"required"`
	Grades         []SubjectGradesInput `json:"grades" validate:"dive"`
}

// RecordGradeRequest appends one grade entry to an existing student.
type RecordGradeRequest struct {
	Subject    string  `json:"subject" validate:"required"`
	Term1      float64 `json:"term1" validate:"gte=0,lte=10"`
	Term2      float64 `json:"term2" validate:"gte=0,lte=10"`
	Attendance float64 `json:"attendance" validate:"gte=0,lte=100"`
}

// StudentResponse is the public representation of a student.
type StudentResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Birthdate      string    `json:"birthdate"`
	GradeLevel     string    `json:"grade_level"`
	Guardian       string    `json:"guardian"`
	EnrollmentCode string    `json:"enrollment_code"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewStudentResponse maps a student model to its response form.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:             student.ID,
		Name:           student.Name,
		Birthdate:      student.Birthdate,
		GradeLevel:     student.GradeLevel,
		Guardian:       student.Guardian,
		EnrollmentCode: student.EnrollmentCode,
		CreatedAt:      student.CreatedAt,
	}
}

// RemoveStudentResponse reports the outcome of a removal. A missing student
// is a regular result here, not an error.
type RemoveStudentResponse struct {
	Removed bool   `json:"removed"`
	Message string `json:"message"`
}
