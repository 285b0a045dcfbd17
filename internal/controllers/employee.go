package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/dayflowhq/dayflow/internal/entity"
)

const userColumns = "id, user_id, name, email, password, role, status, phone, department, designation, avatar, created_at, updated_at"

func scanUser(row pgx.Row) (entity.User, error) {
	var user entity.User
	var rowID int64
	if err := row.Scan(&rowID, &user.UserID, &user.Name, &user.Email, &user.Password,
		&user.Role, &user.Status, &user.Phone, &user.Department, &user.Designation,
		&user.Avatar, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return entity.User{}, err
	}

	user.ID = strconv.FormatInt(rowID, 10)
	return user, nil
}

type EmployeeController struct {
	deps *Dependens
}

func NewEmployeeController(deps *Dependens) *EmployeeController {
	return &EmployeeController{
		deps: deps,
	}
}

func (c *EmployeeController) GetEmployees(ctx context.Context, department *string) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if department != nil && *department != "" {
		query += ` WHERE department = $1`
		args = append(args, *department)
	}
	query += ` ORDER BY user_id`

	rows, err := c.deps.DB.Query(ctx, query, args...)
	if err != nil {
		c.deps.Logger.Error("Error querying employees", slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	var employees []entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			c.deps.Logger.Error("Error scanning employee", slog.String("error", err.Error()))
			return nil, err
		}

		user.Password = ""
		employees = append(employees, user)
	}

	return employees, rows.Err()
}

func (c *EmployeeController) GetEmployeeByID(ctx context.Context, userID string) (*entity.User, error) {
	row := c.deps.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Employee not found", slog.String("userId", userID))
			return nil, ErrEmployeeNotFound
		}

		c.deps.Logger.Error("Error querying employee", slog.String("error", err.Error()))
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// UpdateEmployee applies a role-filtered profile update. Fields outside the
// actor's allow-list are dropped before the statement is built, so the
// write never contains a column the role may not set.
func (c *EmployeeController) UpdateEmployee(ctx context.Context, userID, actorRole string, req entity.UpdateUserRequest) (*entity.User, error) {
	cols, vals := FilterUpdate(actorRole, req)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no valid fields to update: %w", ErrInvalidInput)
	}

	query := `UPDATE users SET `
	for i, col := range cols {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", col, i+1)
	}
	query += fmt.Sprintf(", updated_at = now() WHERE user_id = $%d RETURNING %s", len(cols)+1, userColumns)
	vals = append(vals, userID)

	row := c.deps.DB.QueryRow(ctx, query, vals...)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Employee not found", slog.String("userId", userID))
			return nil, ErrEmployeeNotFound
		}

		c.deps.Logger.Error("Error updating employee", slog.String("error", err.Error()))
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

func (c *EmployeeController) DeleteEmployee(ctx context.Context, userID string) error {
	result, err := c.deps.DB.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		c.deps.Logger.Error("Error deleting employee", slog.String("error", err.Error()))
		return err
	}

	if result.RowsAffected() == 0 {
		c.deps.Logger.Warn("Employee not found", slog.String("userId", userID))
		return ErrEmployeeNotFound
	}

	return nil
}
