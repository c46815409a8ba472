package schemas

import "github.com/autocrud/autocrud/internal/discovery"

// Units lists this package's source files for schema discovery, one unit per
// file. Role assignment comes from the declared names.
func Units() []discovery.SourceUnit {
	return []discovery.SourceUnit{
		{Name: "user", Decls: []discovery.Decl{
			{Name: "UserBase", Value: UserBase},
			{Name: "UserCreate", Value: UserCreate},
			{Name: "UserUpdate", Value: UserUpdate},
			{Name: "UserResponse", Value: UserResponse},
		}},
		{Name: "admin", Decls: []discovery.Decl{
			{Name: "AdminBase", Value: AdminBase},
			{Name: "AdminCreate", Value: AdminCreate},
			{Name: "AdminUpdate", Value: AdminUpdate},
			{Name: "AdminResponse", Value: AdminResponse},
		}},
		{Name: "employee", Decls: []discovery.Decl{
			{Name: "EmployeeBase", Value: EmployeeBase},
			{Name: "EmployeeCreate", Value: EmployeeCreate},
			{Name: "EmployeeUpdate", Value: EmployeeUpdate},
			{Name: "EmployeeResponse", Value: EmployeeResponse},
		}},
	}
}
