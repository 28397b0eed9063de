package models

import "time"

// GradeEntry holds one subject's scores for one student. Average and Status
// are computed by the evaluator when the entry is created and are never
// recomputed or updated afterwards; a repeated subject simply appends a new
// entry. Entries only disappear through the owning student's cascading
// delete.
type GradeEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	Subject    string    `gorm:"size:128;not null" json:"subject"`
	Term1      float64   `gorm:"not null" json:"term1"`
	Term2      float64   `gorm:"not null" json:"term2"`
	Average    float64   `gorm:"not null" json:"average"`
	Attendance float64   `gorm:"not null" json:"attendance"`
	Status     string    `gorm:"size:32;not null" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
