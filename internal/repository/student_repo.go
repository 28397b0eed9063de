package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/brightpath-edu/report-card-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context, search string) ([]models.Student, error)
	FindByID(ctx context.Context, id uint) (models.Student, error)
	FindByEnrollmentCode(ctx context.Context, code string) (models.Student, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	DeleteWithEntries(ctx context.Context, id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// List returns students ordered by name. A non-empty search term matches
// name or enrollment code as a case-insensitive substring; lowering both
// sides keeps the semantics identical on postgres and sqlite.
func (r *studentRepository) List(ctx context.Context, search string) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(enrollment_code) LIKE ?", like, like)
	}

	var students []models.Student
	if err := query.Order("name ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) FindByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByEnrollmentCode(ctx context.Context, code string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("enrollment_code = ?", code).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("enrollment_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// DeleteWithEntries removes the student and every grade entry in a single
// transaction so a mid-sequence failure leaves no partial deletion behind.
func (r *studentRepository) DeleteWithEntries(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&models.GradeEntry{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Student{}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
