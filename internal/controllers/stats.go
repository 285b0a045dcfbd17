package controllers

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/dayflowhq/dayflow/internal/entity"
)

// StatsController serves read-only dashboard projections. It only ever
// queries committed state and never mutates it.
type StatsController struct {
	deps *Dependens
}

func NewStatsController(deps *Dependens) *StatsController {
	return &StatsController{
		deps: deps,
	}
}

func (c *StatsController) AdminStats(ctx context.Context, now time.Time) (*entity.AdminStats, error) {
	stats := &entity.AdminStats{}
	today := now.UTC().Truncate(24 * time.Hour)

	if err := c.deps.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`,
		entity.RoleEmployee).Scan(&stats.TotalEmployees); err != nil {
		c.deps.Logger.Error("Error counting employees", slog.String("error", err.Error()))
		return nil, err
	}

	if err := c.deps.DB.QueryRow(ctx, `SELECT COUNT(*) FROM attendance WHERE day = $1 AND status = $2`,
		today, entity.AttendancePresent).Scan(&stats.PresentToday); err != nil {
		c.deps.Logger.Error("Error counting attendance", slog.String("error", err.Error()))
		return nil, err
	}

	if err := c.deps.DB.QueryRow(ctx, `SELECT COUNT(*) FROM leaves WHERE status = $1`,
		entity.LeavePending).Scan(&stats.PendingLeaves); err != nil {
		c.deps.Logger.Error("Error counting leaves", slog.String("error", err.Error()))
		return nil, err
	}

	var payroll float64
	if err := c.deps.DB.QueryRow(ctx, `SELECT COALESCE(SUM(net_salary), 0) FROM salaries`).Scan(&payroll); err != nil {
		c.deps.Logger.Error("Error summing payroll", slog.String("error", err.Error()))
		return nil, err
	}
	stats.MonthlyPayroll = math.Round(payroll*100) / 100

	return stats, nil
}

func (c *StatsController) EmployeeStats(ctx context.Context, employeeID string, now time.Time) (*entity.EmployeeStats, error) {
	stats := &entity.EmployeeStats{}
	utc := now.UTC()
	firstOfMonth := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)

	if err := c.deps.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance WHERE employee_id = $1 AND day >= $2 AND status = $3
	`, employeeID, firstOfMonth, entity.AttendancePresent).Scan(&stats.AttendanceThisMonth); err != nil {
		c.deps.Logger.Error("Error counting attendance", slog.String("error", err.Error()))
		return nil, err
	}

	var hours float64
	if err := c.deps.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_hours), 0) FROM attendance WHERE employee_id = $1 AND day >= $2
	`, employeeID, firstOfMonth).Scan(&hours); err != nil {
		c.deps.Logger.Error("Error summing hours", slog.String("error", err.Error()))
		return nil, err
	}
	stats.TotalHours = math.Round(hours*10) / 10

	if err := c.deps.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM leaves WHERE employee_id = $1 AND status = $2
	`, employeeID, entity.LeaveApproved).Scan(&stats.LeavesTaken); err != nil {
		c.deps.Logger.Error("Error counting approved leaves", slog.String("error", err.Error()))
		return nil, err
	}

	if err := c.deps.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM leaves WHERE employee_id = $1 AND status = $2
	`, employeeID, entity.LeavePending).Scan(&stats.PendingLeaves); err != nil {
		c.deps.Logger.Error("Error counting pending leaves", slog.String("error", err.Error()))
		return nil, err
	}

	return stats, nil
}
