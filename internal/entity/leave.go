package entity

import "time"

const (
	LeaveTypePaid   = "paid"
	LeaveTypeSick   = "sick"
	LeaveTypeUnpaid = "unpaid"

	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// DateFormat is the calendar-date layout used for leave ranges.
const DateFormat = "2006-01-02"

type LeaveRequest struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	LeaveType    string     `json:"leaveType"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminComment *string    `json:"adminComment"`
	AppliedOn    time.Time  `json:"appliedOn"`
	ReviewedAt   *time.Time `json:"reviewedAt"`
	ReviewedBy   *string    `json:"reviewedBy"`
}

type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type ReviewLeaveRequest struct {
	Status       string  `json:"status"`
	AdminComment *string `json:"adminComment"`
}

func ValidLeaveType(t string) bool {
	return t == LeaveTypePaid || t == LeaveTypeSick || t == LeaveTypeUnpaid
}

func TerminalLeaveStatus(s string) bool {
	return s == LeaveApproved || s == LeaveRejected
}
