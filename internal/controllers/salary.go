package controllers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dayflowhq/dayflow/internal/entity"
)

type SalaryController struct {
	deps *Dependens
}

func NewSalaryController(deps *Dependens) *SalaryController {
	return &SalaryController{
		deps: deps,
	}
}

const salaryColumns = "id, employee_id, employee_name, basic_salary, housing_allowance, transport_allowance, medical_allowance, other_allowances, tax_deduction, insurance_deduction, other_deductions, net_salary, effective_date, updated_at"

func scanSalary(row pgx.Row) (entity.SalaryProfile, error) {
	var s entity.SalaryProfile
	err := row.Scan(&s.ID, &s.EmployeeID, &s.EmployeeName, &s.BasicSalary,
		&s.HousingAllowance, &s.TransportAllowance, &s.MedicalAllowance, &s.OtherAllowances,
		&s.TaxDeduction, &s.InsuranceDeduction, &s.OtherDeductions, &s.NetSalary,
		&s.EffectiveDate, &s.UpdatedAt)
	return s, err
}

// Upsert replaces the employee's salary profile wholesale. The net salary
// is recomputed from the components on every write, never carried over.
func (c *SalaryController) Upsert(ctx context.Context, req *entity.UpsertSalaryRequest) (*entity.SalaryProfile, error) {
	var employeeName string
	if err := c.deps.DB.QueryRow(ctx, `SELECT name FROM users WHERE user_id = $1`, req.EmployeeID).Scan(&employeeName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Salary upsert for unknown employee", slog.String("employeeId", req.EmployeeID))
			return nil, ErrEmployeeNotFound
		}

		c.deps.Logger.Error("Error querying employee", slog.String("error", err.Error()))
		return nil, err
	}

	row := c.deps.DB.QueryRow(ctx, `
		INSERT INTO salaries (id, employee_id, employee_name, basic_salary, housing_allowance,
			transport_allowance, medical_allowance, other_allowances, tax_deduction,
			insurance_deduction, other_deductions, net_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			basic_salary = EXCLUDED.basic_salary,
			housing_allowance = EXCLUDED.housing_allowance,
			transport_allowance = EXCLUDED.transport_allowance,
			medical_allowance = EXCLUDED.medical_allowance,
			other_allowances = EXCLUDED.other_allowances,
			tax_deduction = EXCLUDED.tax_deduction,
			insurance_deduction = EXCLUDED.insurance_deduction,
			other_deductions = EXCLUDED.other_deductions,
			net_salary = EXCLUDED.net_salary,
			effective_date = now(),
			updated_at = now()
		RETURNING `+salaryColumns,
		uuid.NewString(), req.EmployeeID, employeeName, req.BasicSalary, req.HousingAllowance,
		req.TransportAllowance, req.MedicalAllowance, req.OtherAllowances, req.TaxDeduction,
		req.InsuranceDeduction, req.OtherDeductions, req.Net())

	salary, err := scanSalary(row)
	if err != nil {
		c.deps.Logger.Error("Error upserting salary", slog.String("error", err.Error()))
		return nil, err
	}

	return &salary, nil
}

func (c *SalaryController) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.SalaryProfile, error) {
	row := c.deps.DB.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE employee_id = $1`, employeeID)
	salary, err := scanSalary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Salary not found", slog.String("employeeId", employeeID))
			return nil, ErrSalaryNotFound
		}

		c.deps.Logger.Error("Error querying salary", slog.String("error", err.Error()))
		return nil, err
	}

	return &salary, nil
}

func (c *SalaryController) GetAll(ctx context.Context) ([]entity.SalaryProfile, error) {
	rows, err := c.deps.DB.Query(ctx, `SELECT `+salaryColumns+` FROM salaries ORDER BY employee_id`)
	if err != nil {
		c.deps.Logger.Error("Error querying salaries", slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	var salaries []entity.SalaryProfile
	for rows.Next() {
		salary, err := scanSalary(rows)
		if err != nil {
			c.deps.Logger.Error("Error scanning salary", slog.String("error", err.Error()))
			return nil, err
		}
		salaries = append(salaries, salary)
	}

	return salaries, rows.Err()
}
