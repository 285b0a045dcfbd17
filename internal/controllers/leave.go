package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dayflowhq/dayflow/internal/entity"
)

// LeaveController drives the leave request lifecycle: pending at
// submission, then exactly one admin decision to approved or rejected.
// Terminal requests are never re-reviewed; the decision write is filtered
// on status = 'pending' so a second review fails instead of overwriting.
type LeaveController struct {
	deps *Dependens
}

func NewLeaveController(deps *Dependens) *LeaveController {
	return &LeaveController{
		deps: deps,
	}
}

const leaveColumns = "id, employee_id, employee_name, leave_type, start_date, end_date, days, reason, status, admin_comment, applied_on, reviewed_at, reviewed_by"

func scanLeave(row pgx.Row) (entity.LeaveRequest, error) {
	var req entity.LeaveRequest
	var start, end time.Time
	if err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.LeaveType,
		&start, &end, &req.Days, &req.Reason, &req.Status, &req.AdminComment,
		&req.AppliedOn, &req.ReviewedAt, &req.ReviewedBy); err != nil {
		return entity.LeaveRequest{}, err
	}

	req.StartDate = start.Format(entity.DateFormat)
	req.EndDate = end.Format(entity.DateFormat)
	return req, nil
}

func (c *LeaveController) ApplyLeave(ctx context.Context, employeeID, employeeName string, req *entity.ApplyLeaveRequest) (*entity.LeaveRequest, error) {
	if !entity.ValidLeaveType(req.LeaveType) {
		return nil, fmt.Errorf("unknown leave type %q: %w", req.LeaveType, ErrInvalidInput)
	}

	days, err := computeLeaveDays(req.StartDate, req.EndDate)
	if err != nil {
		c.deps.Logger.Warn("Invalid leave dates", slog.String("employeeId", employeeID), slog.String("error", err.Error()))
		return nil, err
	}

	leave := entity.LeaveRequest{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		LeaveType:    req.LeaveType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Days:         days,
		Reason:       req.Reason,
		Status:       entity.LeavePending,
	}

	if err := c.deps.DB.QueryRow(ctx, `
		INSERT INTO leaves (id, employee_id, employee_name, leave_type, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING applied_on
	`, leave.ID, employeeID, employeeName, req.LeaveType, req.StartDate, req.EndDate,
		days, req.Reason, entity.LeavePending,
	).Scan(&leave.AppliedOn); err != nil {
		c.deps.Logger.Error("Error inserting leave request", slog.String("error", err.Error()))
		return nil, err
	}

	return &leave, nil
}

// GetLeaves lists requests visible to the principal: admins see all,
// optionally narrowed to one employee; everyone else sees only their own
// and the filter is ignored.
func (c *LeaveController) GetLeaves(ctx context.Context, claims *entity.Claims, employeeFilter *string) ([]entity.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leaves`
	args := []any{}

	if CanAdminister(claims) {
		if employeeFilter != nil && *employeeFilter != "" {
			query += ` WHERE employee_id = $1`
			args = append(args, *employeeFilter)
		}
	} else {
		query += ` WHERE employee_id = $1`
		args = append(args, claims.UserID)
	}
	query += ` ORDER BY applied_on DESC`

	rows, err := c.deps.DB.Query(ctx, query, args...)
	if err != nil {
		c.deps.Logger.Error("Error querying leaves", slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	var leaves []entity.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			c.deps.Logger.Error("Error scanning leave", slog.String("error", err.Error()))
			return nil, err
		}
		leaves = append(leaves, leave)
	}

	return leaves, rows.Err()
}

// ReviewLeave moves a pending request to its terminal state. The comment
// is only written when one was supplied.
func (c *LeaveController) ReviewLeave(ctx context.Context, leaveID, reviewerID string, req *entity.ReviewLeaveRequest) (*entity.LeaveRequest, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return nil, ErrInvalidLeaveID
	}
	if !entity.TerminalLeaveStatus(req.Status) {
		return nil, fmt.Errorf("decision must be %q or %q: %w", entity.LeaveApproved, entity.LeaveRejected, ErrInvalidInput)
	}

	query := `UPDATE leaves SET status = $1, reviewed_at = now(), reviewed_by = $2`
	args := []any{req.Status, reviewerID}
	if req.AdminComment != nil && *req.AdminComment != "" {
		query += `, admin_comment = $3`
		args = append(args, *req.AdminComment)
	}
	query += fmt.Sprintf(` WHERE id = $%d AND status = $%d RETURNING %s`, len(args)+1, len(args)+2, leaveColumns)
	args = append(args, leaveID, entity.LeavePending)

	leave, err := scanLeave(c.deps.DB.QueryRow(ctx, query, args...))
	if err == nil {
		return &leave, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		c.deps.Logger.Error("Error reviewing leave", slog.String("error", err.Error()))
		return nil, err
	}

	// Either the id does not exist or the request already left pending.
	var status string
	if lookupErr := c.deps.DB.QueryRow(ctx, `SELECT status FROM leaves WHERE id = $1`, leaveID).Scan(&status); lookupErr != nil {
		if errors.Is(lookupErr, pgx.ErrNoRows) {
			return nil, ErrLeaveNotFound
		}

		c.deps.Logger.Error("Error querying leave", slog.String("error", lookupErr.Error()))
		return nil, lookupErr
	}

	c.deps.Logger.Warn("Review of terminal leave request", slog.String("leaveId", leaveID), slog.String("status", status))
	return nil, ErrLeaveReviewed
}

// computeLeaveDays returns the inclusive day count of a leave range.
func computeLeaveDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(entity.DateFormat, startDate)
	if err != nil {
		return 0, fmt.Errorf("malformed start date %q: %w", startDate, ErrInvalidInput)
	}
	end, err := time.Parse(entity.DateFormat, endDate)
	if err != nil {
		return 0, fmt.Errorf("malformed end date %q: %w", endDate, ErrInvalidInput)
	}

	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}

	return int(end.Sub(start).Hours()/24) + 1, nil
}
