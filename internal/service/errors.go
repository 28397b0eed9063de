package service

import "errors"

var (
	// ErrDuplicateEnrollmentCode indicates the enrollment code is already in use.
	ErrDuplicateEnrollmentCode = errors.New("enrollment code already in use")
	// ErrUnknownStudent indicates a grade entry referenced a nonexistent student.
	ErrUnknownStudent = errors.New("unknown student")
	// ErrStudentNotFound indicates the requested student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
