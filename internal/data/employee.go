package data

import "encoding/json"

const (
	FieldId               string = "id"
	FieldFirstName        string = "firstName"
	FieldLastName         string = "lastName"
	FieldDateOfEmployment string = "dateOfEmployment"
	FieldDateOfBirth      string = "dateOfBirth"
	FieldPhone            string = "phone"
	FieldEmail            string = "email"
	FieldDepartment       string = "department"
	FieldPosition         string = "position"
)

const (
	DepartmentAnalytics string = "Analytics"
	DepartmentTech      string = "Tech"
)

const (
	PositionJunior string = "Junior"
	PositionMedior string = "Medior"
	PositionSenior string = "Senior"
)

// DateLayout is the layout used for dateOfEmployment and dateOfBirth, they're
// calendar dates rather than timestamps
const DateLayout string = "2006-01-02"

var (
	Departments = []string{DepartmentAnalytics, DepartmentTech}
	Positions   = []string{PositionJunior, PositionMedior, PositionSenior}
)

// Employee is both the wire format and the format persisted in the
// employees slot, the json tags must not change
type Employee struct {
	Id               string `json:"id,omitempty"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	Position         string `json:"position"`
}

func (e *Employee) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Employee) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}

func (e *Employee) Copy() *Employee {
	employee := &Employee{}
	*employee = *e
	return employee
}

// FullName is what's displayed and searched, first and last name separated
// by a single space
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// RequiredFields returns the value of every field that must be non-empty
// for an employee to be persisted, in a stable order
func (e *Employee) RequiredFields() []struct {
	Name  string
	Value string
} {
	return []struct {
		Name  string
		Value string
	}{
		{FieldFirstName, e.FirstName},
		{FieldLastName, e.LastName},
		{FieldDateOfEmployment, e.DateOfEmployment},
		{FieldDateOfBirth, e.DateOfBirth},
		{FieldPhone, e.Phone},
		{FieldEmail, e.Email},
		{FieldDepartment, e.Department},
		{FieldPosition, e.Position},
	}
}
