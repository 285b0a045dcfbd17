package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dayflowhq/dayflow/internal/entity"
)

func TestComputeLeaveDays(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		want      int
		wantErr   error
	}{
		{
			name:      "single day",
			startDate: "2026-01-05",
			endDate:   "2026-01-05",
			want:      1,
		},
		{
			name:      "range is inclusive on both ends",
			startDate: "2026-01-01",
			endDate:   "2026-01-03",
			want:      3,
		},
		{
			name:      "range across a month boundary",
			startDate: "2026-01-30",
			endDate:   "2026-02-02",
			want:      4,
		},
		{
			name:      "end before start",
			startDate: "2026-01-10",
			endDate:   "2026-01-05",
			wantErr:   ErrInvalidDateRange,
		},
		{
			name:      "malformed start date",
			startDate: "05-01-2026",
			endDate:   "2026-01-10",
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "malformed end date",
			startDate: "2026-01-05",
			endDate:   "tomorrow",
			wantErr:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := computeLeaveDays(tt.startDate, tt.endDate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func leaveRowData(leave entity.LeaveRequest) []interface{} {
	start, _ := time.Parse(entity.DateFormat, leave.StartDate)
	end, _ := time.Parse(entity.DateFormat, leave.EndDate)
	return []interface{}{
		leave.ID, leave.EmployeeID, leave.EmployeeName, leave.LeaveType,
		start, end, leave.Days, leave.Reason, leave.Status,
		leave.AdminComment, leave.AppliedOn, leave.ReviewedAt, leave.ReviewedBy,
	}
}

func TestLeaveController_ApplyLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("successful application", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		appliedOn := time.Now().UTC()
		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"),
			mock.Anything, "EMP001", "John Doe", entity.LeaveTypePaid,
			"2026-04-01", "2026-04-03", 3, "family trip", entity.LeavePending).
			Return(NewMockRow([]interface{}{appliedOn}, nil))

		leave, err := controller.ApplyLeave(ctx, "EMP001", "John Doe", &entity.ApplyLeaveRequest{
			LeaveType: entity.LeaveTypePaid,
			StartDate: "2026-04-01",
			EndDate:   "2026-04-03",
			Reason:    "family trip",
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.LeavePending, leave.Status)
		assert.Equal(t, 3, leave.Days)
		assert.Equal(t, appliedOn, leave.AppliedOn)
		mockDB.AssertExpectations(t)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		_, err := controller.ApplyLeave(ctx, "EMP001", "John Doe", &entity.ApplyLeaveRequest{
			LeaveType: "sabbatical",
			StartDate: "2026-04-01",
			EndDate:   "2026-04-03",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		mockDB.AssertNotCalled(t, "QueryRow")
	})

	t.Run("inverted date range", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		_, err := controller.ApplyLeave(ctx, "EMP001", "John Doe", &entity.ApplyLeaveRequest{
			LeaveType: entity.LeaveTypeSick,
			StartDate: "2026-04-03",
			EndDate:   "2026-04-01",
		})

		assert.ErrorIs(t, err, ErrInvalidDateRange)
		mockDB.AssertNotCalled(t, "QueryRow")
	})
}

func TestLeaveController_GetLeaves(t *testing.T) {
	ctx := context.Background()

	pendingLeave := entity.LeaveRequest{
		ID:           uuid.NewString(),
		EmployeeID:   "EMP001",
		EmployeeName: "John Doe",
		LeaveType:    entity.LeaveTypePaid,
		StartDate:    "2026-04-01",
		EndDate:      "2026-04-03",
		Days:         3,
		Reason:       "family trip",
		Status:       entity.LeavePending,
		AppliedOn:    time.Now().UTC(),
	}

	t.Run("employee sees only own requests", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		mockDB.On("Query", mock.Anything, mock.AnythingOfType("string"), "EMP001").
			Return(NewMockRows([][]interface{}{leaveRowData(pendingLeave)}, nil), nil)

		// The employee filter is ignored for non-admins.
		leaves, err := controller.GetLeaves(ctx, CreateTestClaims("EMP001", entity.RoleEmployee), StringPtr("EMP999"))

		assert.NoError(t, err)
		assert.Len(t, leaves, 1)
		assert.Equal(t, "EMP001", leaves[0].EmployeeID)
		assert.Equal(t, "2026-04-01", leaves[0].StartDate)
		mockDB.AssertExpectations(t)
	})

	t.Run("admin sees all requests", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		mockDB.On("Query", mock.Anything, mock.AnythingOfType("string")).
			Return(NewMockRows([][]interface{}{leaveRowData(pendingLeave)}, nil), nil)

		leaves, err := controller.GetLeaves(ctx, CreateTestClaims("ADM001", entity.RoleAdmin), nil)

		assert.NoError(t, err)
		assert.Len(t, leaves, 1)
		mockDB.AssertExpectations(t)
	})

	t.Run("admin filter narrows to one employee", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		mockDB.On("Query", mock.Anything, mock.AnythingOfType("string"), "EMP001").
			Return(NewMockRows(nil, nil), nil)

		leaves, err := controller.GetLeaves(ctx, CreateTestClaims("ADM001", entity.RoleAdmin), StringPtr("EMP001"))

		assert.NoError(t, err)
		assert.Empty(t, leaves)
		mockDB.AssertExpectations(t)
	})
}

func TestLeaveController_ReviewLeave(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.NewString()

	t.Run("approve pending request", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		reviewedAt := time.Now().UTC()
		approved := entity.LeaveRequest{
			ID:         leaveID,
			EmployeeID: "EMP001",
			StartDate:  "2026-04-01",
			EndDate:    "2026-04-03",
			Days:       3,
			Status:     entity.LeaveApproved,
			ReviewedAt: &reviewedAt,
			ReviewedBy: StringPtr("ADM001"),
		}
		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"),
			entity.LeaveApproved, "ADM001", leaveID, entity.LeavePending).
			Return(NewMockRow(leaveRowData(approved), nil))

		leave, err := controller.ReviewLeave(ctx, leaveID, "ADM001", &entity.ReviewLeaveRequest{
			Status: entity.LeaveApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.LeaveApproved, leave.Status)
		assert.NotNil(t, leave.ReviewedAt)
		mockDB.AssertExpectations(t)
	})

	t.Run("rejection with comment", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		rejected := entity.LeaveRequest{
			ID:           leaveID,
			EmployeeID:   "EMP001",
			StartDate:    "2026-04-01",
			EndDate:      "2026-04-03",
			Status:       entity.LeaveRejected,
			AdminComment: StringPtr("short staffed that week"),
		}
		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"),
			entity.LeaveRejected, "ADM001", "short staffed that week", leaveID, entity.LeavePending).
			Return(NewMockRow(leaveRowData(rejected), nil))

		leave, err := controller.ReviewLeave(ctx, leaveID, "ADM001", &entity.ReviewLeaveRequest{
			Status:       entity.LeaveRejected,
			AdminComment: StringPtr("short staffed that week"),
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.LeaveRejected, leave.Status)
		assert.Equal(t, "short staffed that week", *leave.AdminComment)
		mockDB.AssertExpectations(t)
	})

	t.Run("malformed leave id", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		_, err := controller.ReviewLeave(ctx, "not-a-uuid", "ADM001", &entity.ReviewLeaveRequest{
			Status: entity.LeaveApproved,
		})

		assert.ErrorIs(t, err, ErrInvalidLeaveID)
		mockDB.AssertNotCalled(t, "QueryRow")
	})

	t.Run("decision must be terminal", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		_, err := controller.ReviewLeave(ctx, leaveID, "ADM001", &entity.ReviewLeaveRequest{
			Status: entity.LeavePending,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		mockDB.AssertNotCalled(t, "QueryRow")
	})

	t.Run("unknown leave id", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"),
			entity.LeaveApproved, "ADM001", leaveID, entity.LeavePending).
			Return(NewMockRow(nil, pgx.ErrNoRows))
		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), leaveID).
			Return(NewMockRow(nil, pgx.ErrNoRows))

		_, err := controller.ReviewLeave(ctx, leaveID, "ADM001", &entity.ReviewLeaveRequest{
			Status: entity.LeaveApproved,
		})

		assert.ErrorIs(t, err, ErrLeaveNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already reviewed request", func(t *testing.T) {
		mockDB := new(MockDB)
		controller := NewLeaveController(CreateTestDependencies(mockDB, new(MockRedis)))

		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"),
			entity.LeaveRejected, "ADM001", leaveID, entity.LeavePending).
			Return(NewMockRow(nil, pgx.ErrNoRows))
		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), leaveID).
			Return(NewMockRow([]interface{}{entity.LeaveApproved}, nil))

		_, err := controller.ReviewLeave(ctx, leaveID, "ADM001", &entity.ReviewLeaveRequest{
			Status: entity.LeaveRejected,
		})

		assert.ErrorIs(t, err, ErrLeaveReviewed)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
