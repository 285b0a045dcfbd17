package controllers

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy. Every controller failure wraps exactly one of these
// sentinels so the transport layer can map it to a status code with
// errors.Is without inspecting messages.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrAccountInactive    = fmt.Errorf("account is inactive: %w", ErrForbidden)
	ErrEmailTaken         = fmt.Errorf("user with this email already exists: %w", ErrConflict)
	ErrEmployeeNotFound   = fmt.Errorf("employee not found: %w", ErrNotFound)

	ErrAlreadyCheckedIn  = fmt.Errorf("already checked in today: %w", ErrConflict)
	ErrAlreadyCheckedOut = fmt.Errorf("already checked out: %w", ErrConflict)
	ErrNoCheckIn         = fmt.Errorf("no check-in found for today: %w", ErrInvalidState)

	ErrInvalidLeaveID   = fmt.Errorf("invalid leave id: %w", ErrInvalidInput)
	ErrInvalidDateRange = fmt.Errorf("end date is before start date: %w", ErrInvalidInput)
	ErrLeaveNotFound    = fmt.Errorf("leave request not found: %w", ErrNotFound)
	ErrLeaveReviewed    = fmt.Errorf("leave request already reviewed: %w", ErrInvalidState)

	ErrSalaryNotFound = fmt.Errorf("salary information not found: %w", ErrNotFound)
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
