// Package reportpdf renders a student's report card as a PDF document. It
// transcribes the values it is given; no grade computation happens here.
package reportpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Student carries the identification block printed on the report card.
type Student struct {
	Name           string
	EnrollmentCode string
	GradeLevel     string
	Birthdate      string
	Guardian       string
}

// Entry is one row of the grades table.
type Entry struct {
	Subject    string
	Term1      float64
	Term2      float64
	Average    float64
	Attendance float64
	Status     string
}

// Generator produces report-card documents for one school.
type Generator struct {
	schoolName string
	now        func() time.Time
}

// New constructs a generator. The school name appears in the page header.
func New(schoolName string) *Generator {
	return &Generator{schoolName: schoolName, now: time.Now}
}

// Generate renders the report card and returns the PDF bytes.
func (g *Generator) Generate(student Student, entries []Entry) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, g.schoolName, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "SCHOOL REPORT CARD", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "STUDENT INFORMATION", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	info := fmt.Sprintf("Name: %s\nEnrollment code: %s\nGrade level: %s\nDate of birth: %s\nGuardian: %s",
		student.Name, student.EnrollmentCode, student.GradeLevel, student.Birthdate, student.Guardian)
	pdf.MultiCell(0, 8, info, "", "L", false)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "ACADEMIC PERFORMANCE", "", 1, "L", false, 0, "")

	pdf.SetFillColor(200, 200, 200)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 10, "Subject", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 10, "Term 1", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 10, "Term 2", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 10, "Average", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 10, "Att. %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 10, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, entry := range entries {
		subject := entry.Subject
		if len(subject) > 25 {
			subject = subject[:25]
		}
		pdf.CellFormat(60, 8, subject, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", entry.Term1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", entry.Term2), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", entry.Average), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f%%", entry.Attendance), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, entry.Status, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	issued := fmt.Sprintf("Issued on: %s", g.now().Format("02/01/2006 15:04"))
	pdf.CellFormat(0, 10, issued, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report card: %w", err)
	}

	return buf.Bytes(), nil
}
