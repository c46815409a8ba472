package models

import "github.com/autocrud/autocrud/internal/discovery"

// Units lists this package's source files for model discovery, one unit per
// file. Adding a model file means adding its unit here; the unit name
// becomes the registry key and route prefix.
func Units() []discovery.SourceUnit {
	return []discovery.SourceUnit{
		{Name: "user", Decls: []discovery.Decl{{Name: "User", Value: &User{}}}},
		{Name: "admin", Decls: []discovery.Decl{{Name: "Admin", Value: &Admin{}}}},
		{Name: "employee", Decls: []discovery.Decl{{Name: "Employee", Value: &Employee{}}}},
	}
}
