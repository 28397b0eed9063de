package models

import "time"

// Student represents an enrolled learner. The enrollment code is the
// external identifier printed on documents; the numeric ID stays internal.
// Students are never edited in place: they are enrolled once and removed
// together with their grade entries.
type Student struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"size:255;not null" json:"name"`
	Birthdate      string       `gorm:"size:32;not null" json:"birthdate"`
	GradeLevel     string       `gorm:"size:64;not null" json:"grade_level"`
	Guardian       string       `gorm:"size:255;not null" json:"guardian"`
	EnrollmentCode string       `gorm:"size:64;uniqueIndex;not null" json:"enrollment_code"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	GradeEntries   []GradeEntry `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"grade_entries,omitempty"`
}
