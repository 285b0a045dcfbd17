package controllers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/dayflowhq/dayflow/internal/config"
	"github.com/dayflowhq/dayflow/internal/entity"
)

// MockDB implements the Dependens.DB interface.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := append([]interface{}{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgx.Rows), callArgs.Error(1)
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	mockArgs := append([]interface{}{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgx.Row)
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := append([]interface{}{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgconn.CommandTag), callArgs.Error(1)
}

// assignScanValue copies one mock column value into a Scan destination.
// Nil values leave the destination at its zero value, matching how NULL
// columns scan into pointer destinations.
func assignScanValue(dest, val interface{}) {
	if val == nil {
		return
	}

	switch d := dest.(type) {
	case *int64:
		if v, ok := val.(int64); ok {
			*d = v
		}
	case *int:
		if v, ok := val.(int); ok {
			*d = v
		}
	case *string:
		switch v := val.(type) {
		case string:
			*d = v
		case *string:
			if v != nil {
				*d = *v
			}
		}
	case **string:
		switch v := val.(type) {
		case string:
			s := v
			*d = &s
		case *string:
			*d = v
		}
	case *float64:
		if v, ok := val.(float64); ok {
			*d = v
		}
	case **float64:
		switch v := val.(type) {
		case float64:
			f := v
			*d = &f
		case *float64:
			*d = v
		}
	case *time.Time:
		if v, ok := val.(time.Time); ok {
			*d = v
		}
	case **time.Time:
		switch v := val.(type) {
		case time.Time:
			t := v
			*d = &t
		case *time.Time:
			*d = v
		}
	case *interface{}:
		*d = val
	}
}

// MockRow represents a single mocked result row.
type MockRow struct {
	data []interface{}
	err  error
}

func NewMockRow(data []interface{}, err error) *MockRow {
	return &MockRow{data: data, err: err}
}

func (m *MockRow) Scan(dest ...interface{}) error {
	if m.err != nil {
		return m.err
	}

	for i, val := range m.data {
		if i < len(dest) {
			assignScanValue(dest[i], val)
		}
	}
	return nil
}

// MockRows represents a mocked result set.
type MockRows struct {
	rows [][]interface{}
	pos  int
	err  error
}

func NewMockRows(rows [][]interface{}, err error) *MockRows {
	return &MockRows{rows: rows, pos: -1, err: err}
}

func (m *MockRows) Next() bool {
	m.pos++
	return m.pos < len(m.rows)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	if m.err != nil {
		return m.err
	}
	if m.pos >= len(m.rows) {
		return nil
	}

	for i, val := range m.rows[m.pos] {
		if i < len(dest) {
			assignScanValue(dest[i], val)
		}
	}
	return nil
}

func (m *MockRows) Close()                                       {}
func (m *MockRows) Err() error                                   { return m.err }
func (m *MockRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("") }
func (m *MockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *MockRows) Values() ([]interface{}, error) {
	if m.pos >= len(m.rows) {
		return nil, nil
	}
	return m.rows[m.pos], nil
}
func (m *MockRows) RawValues() [][]byte { return nil }
func (m *MockRows) Conn() *pgx.Conn     { return nil }

// MockRedis implements the Dependens.Redis interface.
type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	if statusCmd, ok := args.Get(0).(*redis.StatusCmd); ok {
		return statusCmd
	}

	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	if stringCmd, ok := args.Get(0).(*redis.StringCmd); ok {
		return stringCmd
	}

	return redis.NewStringCmd(ctx)
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	if intCmd, ok := args.Get(0).(*redis.IntCmd); ok {
		return intCmd
	}

	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

func CreateTestDependencies(mockDB *MockDB, mockRedis *MockRedis) *Dependens {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := &config.Config{}
	cfg.Server.JWTSecret = "test-secret-key"
	cfg.Redis.AccessTokenTTL = 24 * time.Hour

	return &Dependens{
		DB:     mockDB,
		Redis:  mockRedis,
		Logger: logger,
		Config: cfg,
	}
}

func CreateTestUser() entity.User {
	now := time.Now().UTC()
	return entity.User{
		ID:        "1",
		UserID:    "EMP001",
		Name:      "John Doe",
		Email:     "john@example.com",
		Role:      entity.RoleEmployee,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func CreateTestClaims(userID, role string) *entity.Claims {
	return &entity.Claims{
		UserID: userID,
		Email:  userID + "@example.com",
		Role:   role,
	}
}

// userRowData lays out mock column values in userColumns order.
func userRowData(user entity.User, passwordHash string) []interface{} {
	return []interface{}{
		int64(1), user.UserID, user.Name, user.Email, passwordHash,
		user.Role, user.Status, user.Phone, user.Department, user.Designation,
		user.Avatar, user.CreatedAt, user.UpdatedAt,
	}
}

func StringPtr(s string) *string {
	return &s
}
