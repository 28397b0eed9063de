package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brightpath-edu/report-card-api/internal/dto"
	"github.com/brightpath-edu/report-card-api/internal/handler"
	"github.com/brightpath-edu/report-card-api/internal/models"
	"github.com/brightpath-edu/report-card-api/internal/repository"
	"github.com/brightpath-edu/report-card-api/internal/service"
	"github.com/brightpath-edu/report-card-api/pkg/reportpdf"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.GradeEntry{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	studentRepo := repository.NewStudentRepository(db)
	gradeRepo := repository.NewGradeEntryRepository(db)
	enrollment := service.NewEnrollmentService(studentRepo, gradeRepo, validate, zerolog.Nop())
	reports := service.NewReportService(studentRepo, gradeRepo, reportpdf.New("Test School"), zerolog.Nop())

	studentHandler := handler.NewStudentHandler(enrollment, reports, zerolog.Nop())
	reportHandler := handler.NewReportHandler(reports, zerolog.Nop())

	app := fiber.New()
	students := app.Group("/api/v1/students")
	studentHandler.Register(students)
	reportHandler.Register(students)
	studentHandler.RegisterSubjects(app.Group("/api/v1/subjects"))

	return app, db
}

func enrollBody(name, code string) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"name":            name,
		"birthdate":       "2008-03-15",
		"grade_level":     "9th Grade",
		"guardian":        "A Guardian",
		"enrollment_code": code,
		"grades": []map[string]interface{}{
			{"subject": "Mathematics", "term1": 8.0, "term2": 9.0, "attendance": 95.0},
			{"subject": "History", "term1": 4.0, "term2": 4.0, "attendance": 60.0},
		},
	})
	return payload
}

func postJSON(t *testing.T, app *fiber.App, path string, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}

func TestStudentHandlerEnrollAndFetch(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, "Ana Silva", created.Data.Name)
	require.NotZero(t, created.Data.ID)

	resp = get(t, app, "/api/v1/students/code/A1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Data dto.ReportCardResponse `json:"data"`
	}
	decodeResponse(t, resp, &report)
	require.Equal(t, "A1", report.Data.Student.EnrollmentCode)
	require.Len(t, report.Data.Entries, 2)
	require.Equal(t, "Approved", report.Data.Entries[0].Status)
	require.Equal(t, "Failed", report.Data.Entries[1].Status)
}

func TestStudentHandlerEnrollDuplicateConflict(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/students", enrollBody("Another Ana", "A1"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStudentHandlerEnrollValidation(t *testing.T) {
	app, _ := setupApp(t)

	payload, _ := json.Marshal(map[string]interface{}{"name": "No Code"})
	resp := postJSON(t, app, "/api/v1/students", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStudentHandlerListAndSearch(t *testing.T) {
	app, _ := setupApp(t)

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/api/v1/students", enrollBody("Pedro Costa", "P1")).StatusCode)
	require.Equal(t, http.StatusCreated, postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1")).StatusCode)

	resp := get(t, app, "/api/v1/students")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Data []dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &listed)
	require.Len(t, listed.Data, 2)
	require.Equal(t, "Ana Silva", listed.Data[0].Name)

	resp = get(t, app, "/api/v1/students?search=an")
	decodeResponse(t, resp, &listed)
	require.Len(t, listed.Data, 1)
	require.Equal(t, "Ana Silva", listed.Data[0].Name)
}

func TestStudentHandlerRecordGrade(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1"))
	var created struct {
		Data dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)

	gradeBody, _ := json.Marshal(map[string]interface{}{
		"subject": "Science", "term1": 7.0, "term2": 7.0, "attendance": 80.0,
	})
	resp = postJSON(t, app, fmt.Sprintf("/api/v1/students/%d/grades", created.Data.ID), gradeBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var entry struct {
		Data dto.GradeEntryResponse `json:"data"`
	}
	decodeResponse(t, resp, &entry)
	require.Equal(t, "Approved", entry.Data.Status)

	resp = postJSON(t, app, "/api/v1/students/99999/grades", gradeBody)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStudentHandlerStats(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1"))
	var created struct {
		Data dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)

	resp = get(t, app, fmt.Sprintf("/api/v1/students/%d/stats", created.Data.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Data dto.StudentStatsResponse `json:"data"`
	}
	decodeResponse(t, resp, &stats)
	require.Equal(t, int64(2), stats.Data.EntryCount)
	require.NotNil(t, stats.Data.AverageOfAverages)

	resp = get(t, app, "/api/v1/students/99999/stats")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStudentHandlerRemove(t *testing.T) {
	app, db := setupApp(t)

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1")).StatusCode)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/students/code/A1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/api/v1/students/code/A1")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var entryCount int64
	require.NoError(t, db.Model(&models.GradeEntry{}).Count(&entryCount).Error)
	require.Zero(t, entryCount)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/students/code/A1", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStudentHandlerCodeExists(t *testing.T) {
	app, _ := setupApp(t)

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1")).StatusCode)

	var payload struct {
		Data map[string]bool `json:"data"`
	}
	resp := get(t, app, "/api/v1/students/code/A1/exists")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Data["exists"])

	resp = get(t, app, "/api/v1/students/code/B2/exists")
	decodeResponse(t, resp, &payload)
	require.False(t, payload.Data["exists"])
}

func TestStudentHandlerSubjectsAndReportCard(t *testing.T) {
	app, _ := setupApp(t)

	var subjects struct {
		Data []string `json:"data"`
	}
	resp := get(t, app, "/api/v1/subjects")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &subjects)
	require.Len(t, subjects.Data, 8)

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/api/v1/students", enrollBody("Ana Silva", "A1")).StatusCode)

	resp = get(t, app, "/api/v1/students/code/A1/report-card")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, "%PDF", string(body[:4]))

	resp = get(t, app, "/api/v1/students/code/B9/report-card")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
