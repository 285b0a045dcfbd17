package entity

import "time"

type SalaryProfile struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employeeId"`
	EmployeeName       string    `json:"employeeName"`
	BasicSalary        float64   `json:"basicSalary"`
	HousingAllowance   float64   `json:"housingAllowance"`
	TransportAllowance float64   `json:"transportAllowance"`
	MedicalAllowance   float64   `json:"medicalAllowance"`
	OtherAllowances    float64   `json:"otherAllowances"`
	TaxDeduction       float64   `json:"taxDeduction"`
	InsuranceDeduction float64   `json:"insuranceDeduction"`
	OtherDeductions    float64   `json:"otherDeductions"`
	NetSalary          float64   `json:"netSalary"`
	EffectiveDate      time.Time `json:"effectiveDate"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type UpsertSalaryRequest struct {
	EmployeeID         string  `json:"employeeId"`
	BasicSalary        float64 `json:"basicSalary"`
	HousingAllowance   float64 `json:"housingAllowance"`
	TransportAllowance float64 `json:"transportAllowance"`
	MedicalAllowance   float64 `json:"medicalAllowance"`
	OtherAllowances    float64 `json:"otherAllowances"`
	TaxDeduction       float64 `json:"taxDeduction"`
	InsuranceDeduction float64 `json:"insuranceDeduction"`
	OtherDeductions    float64 `json:"otherDeductions"`
}

// Net is the derived salary: basic plus allowances minus deductions.
// It is recomputed on every write and may be negative.
func (r UpsertSalaryRequest) Net() float64 {
	allowances := r.HousingAllowance + r.TransportAllowance + r.MedicalAllowance + r.OtherAllowances
	deductions := r.TaxDeduction + r.InsuranceDeduction + r.OtherDeductions
	return r.BasicSalary + allowances - deductions
}
