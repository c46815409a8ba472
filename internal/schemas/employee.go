package schemas

import "github.com/autocrud/autocrud/internal/spec"

// EmployeeBase holds the fields shared by employee payloads.
var EmployeeBase = spec.New("EmployeeBase", map[string]spec.Field{
	"employee_id": {Kind: spec.Text, Required: true},
	"first_name":  {Kind: spec.Text, Required: true},
	"last_name":   {Kind: spec.Text, Required: true},
	"email":       {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"phone":       {Kind: spec.Text},
	"department":  {Kind: spec.Text},
	"position":    {Kind: spec.Text},
})

// EmployeeCreate validates employee creation payloads.
var EmployeeCreate = spec.New("EmployeeCreate", map[string]spec.Field{
	"employee_id": {Kind: spec.Text, Required: true},
	"first_name":  {Kind: spec.Text, Required: true},
	"last_name":   {Kind: spec.Text, Required: true},
	"email":       {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"phone":       {Kind: spec.Text},
	"department":  {Kind: spec.Text},
	"position":    {Kind: spec.Text},
	"salary":      {Kind: spec.Decimal},
	"hire_date":   {Kind: spec.Timestamp},
	"manager_id":  {Kind: spec.Text},
	"address":     {Kind: spec.Text},
	"is_active":   {Kind: spec.Boolean, Default: true},
})

// EmployeeUpdate validates partial employee updates.
var EmployeeUpdate = spec.New("EmployeeUpdate", map[string]spec.Field{
	"employee_id": {Kind: spec.Text},
	"first_name":  {Kind: spec.Text},
	"last_name":   {Kind: spec.Text},
	"email":       {Kind: spec.Text, Format: spec.FormatEmail},
	"phone":       {Kind: spec.Text},
	"department":  {Kind: spec.Text},
	"position":    {Kind: spec.Text},
	"salary":      {Kind: spec.Decimal},
	"hire_date":   {Kind: spec.Timestamp},
	"manager_id":  {Kind: spec.Text},
	"address":     {Kind: spec.Text},
	"is_active":   {Kind: spec.Boolean},
})

// EmployeeResponse describes serialized employee rows.
var EmployeeResponse = spec.New("EmployeeResponse", map[string]spec.Field{
	"id":          {Kind: spec.Text, Required: true},
	"employee_id": {Kind: spec.Text, Required: true},
	"first_name":  {Kind: spec.Text, Required: true},
	"last_name":   {Kind: spec.Text, Required: true},
	"email":       {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"phone":       {Kind: spec.Text},
	"department":  {Kind: spec.Text},
	"position":    {Kind: spec.Text},
	"salary":      {Kind: spec.Decimal},
	"hire_date":   {Kind: spec.Timestamp},
	"manager_id":  {Kind: spec.Text},
	"address":     {Kind: spec.Text},
	"is_active":   {Kind: spec.Boolean, Required: true},
	"created_at":  {Kind: spec.Timestamp, Required: true},
	"updated_at":  {Kind: spec.Timestamp, Required: true},
})
