package database

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// The unique indexes below are load-bearing: email and (employee_id, day)
// uniqueness turn the check-then-act sequences in the controllers into
// atomic insert-if-absent writes, and user_ids makes public id generation
// race-free across concurrent registrations.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'employee',
		status TEXT NOT NULL DEFAULT 'active',
		phone TEXT,
		department TEXT,
		designation TEXT,
		avatar TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE SEQUENCE IF NOT EXISTS user_ids`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		day DATE NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT,
		status TEXT NOT NULL DEFAULT 'present',
		total_hours DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (employee_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS leaves (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		days INT NOT NULL,
		reason TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_comment TEXT,
		applied_on TIMESTAMPTZ NOT NULL DEFAULT now(),
		reviewed_at TIMESTAMPTZ,
		reviewed_by TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS salaries (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL UNIQUE,
		employee_name TEXT NOT NULL,
		basic_salary DOUBLE PRECISION NOT NULL,
		housing_allowance DOUBLE PRECISION NOT NULL DEFAULT 0,
		transport_allowance DOUBLE PRECISION NOT NULL DEFAULT 0,
		medical_allowance DOUBLE PRECISION NOT NULL DEFAULT 0,
		other_allowances DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax_deduction DOUBLE PRECISION NOT NULL DEFAULT 0,
		insurance_deduction DOUBLE PRECISION NOT NULL DEFAULT 0,
		other_deductions DOUBLE PRECISION NOT NULL DEFAULT 0,
		net_salary DOUBLE PRECISION NOT NULL,
		effective_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS leaves_employee_idx ON leaves (employee_id, applied_on DESC)`,
	`CREATE INDEX IF NOT EXISTS attendance_day_idx ON attendance (day)`,
}

func EnsureSchema(ctx context.Context, conn *pgx.Conn, logger *slog.Logger) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			logger.Error("Error applying schema statement", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("Schema is up to date")
	return nil
}
