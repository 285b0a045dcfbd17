package entity

type AdminStats struct {
	TotalEmployees int64   `json:"totalEmployees"`
	PresentToday   int64   `json:"presentToday"`
	PendingLeaves  int64   `json:"pendingLeaves"`
	MonthlyPayroll float64 `json:"monthlyPayroll"`
}

type EmployeeStats struct {
	AttendanceThisMonth int64   `json:"attendanceThisMonth"`
	TotalHours          float64 `json:"totalHours"`
	LeavesTaken         int64   `json:"leavesTaken"`
	PendingLeaves       int64   `json:"pendingLeaves"`
}
