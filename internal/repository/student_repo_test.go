package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brightpath-edu/report-card-api/internal/models"
)

func TestStudentRepositoryCreateRejectsDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	first := newStudent("Ana Silva", "A1")
	require.NoError(t, repo.Create(context.Background(), &first))
	require.NotZero(t, first.ID)

	second := newStudent("Another Ana", "A1")
	err := repo.Create(context.Background(), &second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Where("enrollment_code = ?", "A1").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestStudentRepositoryListOrdersAndSearchesCaseInsensitively(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	pedro := newStudent("Pedro Costa", "P1")
	ana := newStudent("Ana Silva", "A1")
	require.NoError(t, repo.Create(context.Background(), &pedro))
	require.NoError(t, repo.Create(context.Background(), &ana))

	all, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Ana Silva", all[0].Name)
	require.Equal(t, "Pedro Costa", all[1].Name)

	matched, err := repo.List(context.Background(), "an")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Ana Silva", matched[0].Name)

	byCode, err := repo.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	require.Equal(t, "Pedro Costa", byCode[0].Name)

	none, err := repo.List(context.Background(), "zzz")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestStudentRepositoryFindAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	ana := newStudent("Ana Silva", "A1")
	require.NoError(t, repo.Create(context.Background(), &ana))

	found, err := repo.FindByEnrollmentCode(context.Background(), "A1")
	require.NoError(t, err)
	require.Equal(t, ana.ID, found.ID)

	_, err = repo.FindByEnrollmentCode(context.Background(), "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	byID, err := repo.FindByID(context.Background(), ana.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Silva", byID.Name)

	exists, err := repo.CodeExists(context.Background(), "A1")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.CodeExists(context.Background(), "B2")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestStudentRepositoryDeleteWithEntriesCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	entryRepo := NewGradeEntryRepository(db)

	ana := newStudent("Ana Silva", "A1")
	require.NoError(t, repo.Create(context.Background(), &ana))

	for _, subject := range []string{"Mathematics", "History"} {
		entry := models.GradeEntry{StudentID: ana.ID, Subject: subject, Term1: 8, Term2: 9, Average: 8.5, Attendance: 90, Status: "Approved"}
		require.NoError(t, entryRepo.Create(context.Background(), &entry))
	}

	require.NoError(t, repo.DeleteWithEntries(context.Background(), ana.ID))

	_, err := repo.FindByEnrollmentCode(context.Background(), "A1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var orphaned int64
	require.NoError(t, db.Model(&models.GradeEntry{}).Where("student_id = ?", ana.ID).Count(&orphaned).Error)
	require.Zero(t, orphaned)

	require.ErrorIs(t, repo.DeleteWithEntries(context.Background(), ana.ID), gorm.ErrRecordNotFound)
}

func newStudent(name, code string) models.Student {
	return models.Student{
		Name:           name,
		Birthdate:      "2008-01-01",
		GradeLevel:     "9th Grade",
		Guardian:       "Guardian " + name,
		EnrollmentCode: code,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.GradeEntry{}))
	return db
}
