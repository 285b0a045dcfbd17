package controllers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/dayflowhq/dayflow/internal/config"
)

type Controllers struct {
	AuthController       *AuthController
	EmployeeController   *EmployeeController
	AttendanceController *AttendanceController
	LeaveController      *LeaveController
	SalaryController     *SalaryController
	StatsController      *StatsController
}

func NewControllers(deps *Dependens) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(deps),
		EmployeeController:   NewEmployeeController(deps),
		AttendanceController: NewAttendanceController(deps),
		LeaveController:      NewLeaveController(deps),
		SalaryController:     NewSalaryController(deps),
		StatsController:      NewStatsController(deps),
	}
}

type Dependens struct {
	DB interface {
		Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
		Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	}
	Redis interface {
		Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
		Get(ctx context.Context, key string) *redis.StringCmd
		Del(ctx context.Context, keys ...string) *redis.IntCmd
	}
	Logger *slog.Logger
	Config *config.Config
}
