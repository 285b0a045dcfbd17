package entity

import "time"

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half-day"
	AttendanceLeave   = "leave"
)

// ClockFormat is the 12-hour wall-clock layout check-in and check-out times
// are stored and served in, e.g. "09:15 AM".
const ClockFormat = "03:04 PM"

type AttendanceRecord struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   *string   `json:"checkOut"`
	Status     string    `json:"status"`
	TotalHours *float64  `json:"totalHours"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CheckInResponse struct {
	Message string `json:"message"`
	CheckIn string `json:"checkIn"`
	Date    string `json:"date"`
}

type CheckOutResponse struct {
	Message    string  `json:"message"`
	CheckOut   string  `json:"checkOut"`
	TotalHours float64 `json:"totalHours"`
}
