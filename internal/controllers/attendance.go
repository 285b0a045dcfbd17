package controllers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dayflowhq/dayflow/internal/entity"
)

const (
	// attendancePageSize caps attendance listings.
	attendancePageSize = 100

	// defaultWorkdayHours is recorded when a stored clock string cannot be
	// parsed back; the checkout itself must not fail on bad stored data.
	defaultWorkdayHours = 8.0
)

// AttendanceController drives the per-day check-in/check-out cycle.
// Each (employee, day) moves through exactly one record, created open at
// check-in and closed at check-out. The preconditions
// are enforced by the store: the (employee_id, day) unique index makes
// check-in an atomic insert-if-absent, and checkout writes through a
// "check_out IS NULL" filter so a racing duplicate loses.
type AttendanceController struct {
	deps *Dependens
}

func NewAttendanceController(deps *Dependens) *AttendanceController {
	return &AttendanceController{
		deps: deps,
	}
}

func (c *AttendanceController) CheckIn(ctx context.Context, employeeID string, now time.Time) (*entity.CheckInResponse, error) {
	day := now.UTC().Truncate(24 * time.Hour)
	checkIn := now.UTC().Format(entity.ClockFormat)

	var id string
	err := c.deps.DB.QueryRow(ctx, `
		INSERT INTO attendance (id, employee_id, day, check_in, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, day) DO NOTHING
		RETURNING id
	`, uuid.NewString(), employeeID, day, checkIn, entity.AttendancePresent).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Duplicate check-in", slog.String("employeeId", employeeID))
			return nil, ErrAlreadyCheckedIn
		}

		c.deps.Logger.Error("Error inserting attendance", slog.String("error", err.Error()))
		return nil, err
	}

	return &entity.CheckInResponse{
		Message: "Checked in successfully",
		CheckIn: checkIn,
		Date:    day.Format(entity.DateFormat),
	}, nil
}

func (c *AttendanceController) CheckOut(ctx context.Context, employeeID string, now time.Time) (*entity.CheckOutResponse, error) {
	day := now.UTC().Truncate(24 * time.Hour)

	var id, checkIn string
	var checkOut *string
	err := c.deps.DB.QueryRow(ctx, `
		SELECT id, check_in, check_out FROM attendance WHERE employee_id = $1 AND day = $2
	`, employeeID, day).Scan(&id, &checkIn, &checkOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Checkout without check-in", slog.String("employeeId", employeeID))
			return nil, ErrNoCheckIn
		}

		c.deps.Logger.Error("Error querying attendance", slog.String("error", err.Error()))
		return nil, err
	}

	if checkOut != nil {
		c.deps.Logger.Warn("Duplicate checkout", slog.String("employeeId", employeeID))
		return nil, ErrAlreadyCheckedOut
	}

	checkOutStr := now.UTC().Format(entity.ClockFormat)
	hours := computeTotalHours(checkIn, checkOutStr)

	result, err := c.deps.DB.Exec(ctx, `
		UPDATE attendance SET check_out = $1, total_hours = $2
		WHERE id = $3 AND check_out IS NULL
	`, checkOutStr, hours, id)
	if err != nil {
		c.deps.Logger.Error("Error updating attendance", slog.String("error", err.Error()))
		return nil, err
	}
	if result.RowsAffected() == 0 {
		// Lost the race against a concurrent checkout.
		return nil, ErrAlreadyCheckedOut
	}

	return &entity.CheckOutResponse{
		Message:    "Checked out successfully",
		CheckOut:   checkOutStr,
		TotalHours: hours,
	}, nil
}

func (c *AttendanceController) GetAttendance(ctx context.Context, employeeID string) ([]entity.AttendanceRecord, error) {
	rows, err := c.deps.DB.Query(ctx, `
		SELECT id, employee_id, day, check_in, check_out, status, total_hours, created_at
		FROM attendance
		WHERE employee_id = $1
		ORDER BY day DESC
		LIMIT $2
	`, employeeID, attendancePageSize)
	if err != nil {
		c.deps.Logger.Error("Error querying attendance", slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	var records []entity.AttendanceRecord
	for rows.Next() {
		var rec entity.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn,
			&rec.CheckOut, &rec.Status, &rec.TotalHours, &rec.CreatedAt); err != nil {
			c.deps.Logger.Error("Error scanning attendance", slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// computeTotalHours derives worked hours from two stored clock strings,
// rounded to one decimal. A checkout clock-value earlier than check-in is
// a midnight crossing and wraps by 24 hours. Unparseable input yields the
// fixed default instead of an error.
func computeTotalHours(checkIn, checkOut string) float64 {
	in, errIn := time.Parse(entity.ClockFormat, checkIn)
	out, errOut := time.Parse(entity.ClockFormat, checkOut)
	if errIn != nil || errOut != nil {
		return defaultWorkdayHours
	}

	hours := out.Sub(in).Hours()
	if hours < 0 {
		hours += 24
	}

	return math.Round(hours*10) / 10
}
