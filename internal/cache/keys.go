package cache

// Cache keys are enumerable so mutations can invalidate exactly the
// entries their write could have staled.
const (
	KeyEmployeesAll   = "employees:all"
	KeyDepartmentsAll = "departments:all"
)

// KeyEmployee scopes a detail read to one identity.
func KeyEmployee(id string) string {
	return "employee:" + id
}

// KeyEmployeesByDepartment scopes a listing to one department name.
func KeyEmployeesByDepartment(department string) string {
	return "employees:dept:" + department
}
