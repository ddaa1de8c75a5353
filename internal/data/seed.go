package data

// SeedEmployees returns the employees installed when the employees slot
// is empty; every call returns new copies
func SeedEmployees() []*Employee {
	return []*Employee{
		{Id: "1", FirstName: "Ahmet", LastName: "Sourtimes", DateOfEmployment: "2022-09-23", DateOfBirth: "1990-01-05", Phone: "5325558899", Email: "ahmet@sourtimes.org", Department: DepartmentAnalytics, Position: PositionJunior},
		{Id: "2", FirstName: "Ayşe", LastName: "Yılmaz", DateOfEmployment: "2021-03-15", DateOfBirth: "1988-07-21", Phone: "5334567890", Email: "ayse.yilmaz@example.com", Department: DepartmentTech, Position: PositionSenior},
		{Id: "3", FirstName: "Mehmet", LastName: "Demir", DateOfEmployment: "2020-11-02", DateOfBirth: "1985-12-10", Phone: "5351234567", Email: "mehmet.demir@example.com", Department: DepartmentTech, Position: PositionMedior},
		{Id: "4", FirstName: "Elif", LastName: "Kaya", DateOfEmployment: "2023-01-09", DateOfBirth: "1995-04-30", Phone: "5429876543", Email: "elif.kaya@example.com", Department: DepartmentAnalytics, Position: PositionMedior},
		{Id: "5", FirstName: "Can", LastName: "Öztürk", DateOfEmployment: "2019-06-17", DateOfBirth: "1983-09-14", Phone: "5301112233", Email: "can.ozturk@example.com", Department: DepartmentTech, Position: PositionSenior},
		{Id: "6", FirstName: "Zeynep", LastName: "Arslan", DateOfEmployment: "2024-02-01", DateOfBirth: "1999-11-03", Phone: "5443332211", Email: "zeynep.arslan@example.com", Department: DepartmentAnalytics, Position: PositionJunior},
	}
}
