package grading

// standardSubjects is the fixed curriculum every report card covers. The
// order is significant: enrollment payloads pair score arrays with subjects
// positionally.
var standardSubjects = []string{
	"Mathematics",
	"Portuguese Language",
	"Science",
	"History",
	"Geography",
	"English",
	"Arts",
	"Physical Education",
}

// StandardSubjects returns the ordered list of subjects taught at the school.
// Callers receive a copy and may not mutate the canonical list.
func StandardSubjects() []string {
	subjects := make([]string, len(standardSubjects))
	copy(subjects, standardSubjects)
	return subjects
}
