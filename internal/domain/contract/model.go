package contract

// LaborType is the kind of labor contract
type LaborType string

const (
	Permanent  LaborType = "표준(무기)"
	FixedTerm  LaborType = "표준(유기)"
	ShortHours LaborType = "단시간"
	Freelance  LaborType = "프리랜서"
)

// SalaryType is the unit the contracted salary is paid in
type SalaryType string

const (
	Monthly SalaryType = "월급"
	Hourly  SalaryType = "시급"
	Daily   SalaryType = "일당"
)

// WorkDay is the schedule of one weekday
type WorkDay struct {
	Active     bool   `json:"active"`
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

// Allowance is a named bonus or allowance line
type Allowance struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Contract is a stored labor contract
type Contract struct {
	ID              string             `json:"id"`
	LaborType       LaborType          `json:"laborType"`
	EmployeeName    string             `json:"employeeName"`
	ResidentIDFront string             `json:"residentIdFront"`
	ResidentIDBack  string             `json:"residentIdBack"`
	EmployeePhone   string             `json:"employeePhone,omitempty"`
	EmployeeAddress string             `json:"employeeAddress,omitempty"`
	CompanyName     string             `json:"companyName"`
	CEOName         string             `json:"ceoName,omitempty"`
	CompanyAddress  string             `json:"companyAddress,omitempty"`
	CompanyPhone    string             `json:"companyPhone,omitempty"`
	StartDate       string             `json:"startDate"`
	EndDate         string             `json:"endDate,omitempty"`
	WorkPlace       string             `json:"workPlace,omitempty"`
	JobDuties       string             `json:"jobDuties,omitempty"`
	Schedule        map[string]WorkDay `json:"schedule,omitempty"`
	SalaryType      SalaryType         `json:"salaryType"`
	SalaryAmount    int64              `json:"salaryAmount"`
	Bonuses         []Allowance        `json:"bonusItems,omitempty"`
	PayDay          int                `json:"payDay,omitempty"`
	Insurance       []string           `json:"insurance,omitempty"`
	BankName        string             `json:"bankName,omitempty"`
	AccountNumber   string             `json:"accountNumber,omitempty"`
	AccountHolder   string             `json:"accountHolder,omitempty"`
	ContractDate    string             `json:"contractDate"`
	SpecialTerms    string             `json:"specialTerms,omitempty"`
}

// ResidentID joins the two halves of the resident registration number.
func (c Contract) ResidentID() string {
	if c.ResidentIDFront == "" && c.ResidentIDBack == "" {
		return ""
	}
	return c.ResidentIDFront + "-" + c.ResidentIDBack
}

// PaidHourly reports whether the contract is settled as hourly part-time work.
func (c Contract) PaidHourly() bool {
	return c.LaborType == ShortHours || c.SalaryType == Hourly
}
