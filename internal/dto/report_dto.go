package dto

import (
	"time"

	"github.com/brightpath-edu/report-card-api/internal/models"
)

// GradeEntryResponse is the public representation of one subject's grades.
type GradeEntryResponse struct {
	ID         uint      `json:"id"`
	Subject    string    `json:"subject"`
	Term1      float64   `json:"term1"`
	Term2      float64   `json:"term2"`
	Average    float64   `json:"average"`
	Attendance float64   `json:"attendance"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewGradeEntryResponse maps a grade entry model to its response form.
func NewGradeEntryResponse(entry models.GradeEntry) GradeEntryResponse {
	return GradeEntryResponse{
		ID:         entry.ID,
		Subject:    entry.Subject,
		Term1:      entry.Term1,
		Term2:      entry.Term2,
		Average:    entry.Average,
		Attendance: entry.Attendance,
		Status:     entry.Status,
		CreatedAt:  entry.CreatedAt,
	}
}

// ReportCardResponse bundles a student with their grade entries in
// insertion order.
type ReportCardResponse struct {
	Student StudentResponse      `json:"student"`
	Entries []GradeEntryResponse `json:"entries"`
}

// StudentStatsResponse aggregates a student's grade entries. The averages
// are null when the student has no entries yet.
type StudentStatsResponse struct {
	EntryCount        int64    `json:"entry_count"`
	AverageOfAverages *float64 `json:"average_of_averages"`
	AverageAttendance *float64 `json:"average_attendance"`
}
