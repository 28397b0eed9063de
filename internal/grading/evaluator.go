package grading

// Status classifies a grade entry after evaluation.
type Status string

// Possible evaluation outcomes.
const (
	StatusApproved Status = "Approved"
	StatusRecovery Status = "Recovery"
	StatusFailed   Status = "Failed"
)

// Thresholds applied by Evaluate, in precedence order.
const (
	ApprovalAverage   = 7.0
	RecoveryAverage   = 5.0
	MinimumAttendance = 75.0
)

// Evaluate computes the final average of two term scores and classifies the
// result. The first matching tier wins: Approved requires both the approval
// average and minimum attendance, Recovery requires the recovery average and
// minimum attendance, everything else fails. Inputs are accepted as-is;
// range validation belongs to the caller.
func Evaluate(term1, term2, attendance float64) (float64, Status) {
	average := (term1 + term2) / 2

	switch {
	case average >= ApprovalAverage && attendance >= MinimumAttendance:
		return average, StatusApproved
	case average >= RecoveryAverage && attendance >= MinimumAttendance:
		return average, StatusRecovery
	default:
		return average, StatusFailed
	}
}
