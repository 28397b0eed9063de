package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightpath-edu/report-card-api/internal/models"
)

// AggregateStats summarises a student's grade entries. Both averages are nil
// when the student has no entries; callers must not assume a numeric zero.
type AggregateStats struct {
	EntryCount        int64    `json:"entry_count"`
	AverageOfAverages *float64 `json:"average_of_averages"`
	AverageAttendance *float64 `json:"average_attendance"`
}

// GradeEntryRepository provides access to per-subject grade entries.
type GradeEntryRepository interface {
	Create(ctx context.Context, entry *models.GradeEntry) error
	ListForStudent(ctx context.Context, studentID uint) ([]models.GradeEntry, error)
	Stats(ctx context.Context, studentID uint) (AggregateStats, error)
}

type gradeEntryRepository struct {
	db *gorm.DB
}

// NewGradeEntryRepository constructs a grade entry repository.
func NewGradeEntryRepository(db *gorm.DB) GradeEntryRepository {
	return &gradeEntryRepository{db: db}
}

func (r *gradeEntryRepository) Create(ctx context.Context, entry *models.GradeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListForStudent returns entries in insertion order. No cross-subject
// ordering beyond that is promised.
func (r *gradeEntryRepository) ListForStudent(ctx context.Context, studentID uint) ([]models.GradeEntry, error) {
	var entries []models.GradeEntry
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *gradeEntryRepository) Stats(ctx context.Context, studentID uint) (AggregateStats, error) {
	var stats AggregateStats
	err := r.db.WithContext(ctx).Model(&models.GradeEntry{}).
		Select("COUNT(*) AS entry_count, AVG(average) AS average_of_averages, AVG(attendance) AS average_attendance").
		Where("student_id = ?", studentID).
		Scan(&stats).Error
	if err != nil {
		return AggregateStats{}, err
	}

	return stats, nil
}
