package schemas

import "github.com/autocrud/autocrud/internal/spec"

// AdminBase holds the fields shared by admin payloads.
var AdminBase = spec.New("AdminBase", map[string]spec.Field{
	"username":    {Kind: spec.Text, Required: true},
	"email":       {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"full_name":   {Kind: spec.Text},
	"role":        {Kind: spec.Text, Default: "admin"},
	"permissions": {Kind: spec.Text},
})

// AdminCreate validates admin creation payloads.
var AdminCreate = spec.New("AdminCreate", map[string]spec.Field{
	"username":       {Kind: spec.Text, Required: true},
	"email":          {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"password_hash":  {Kind: spec.Text, Required: true},
	"full_name":      {Kind: spec.Text},
	"role":           {Kind: spec.Text, Default: "admin"},
	"permissions":    {Kind: spec.Text},
	"is_super_admin": {Kind: spec.Boolean, Default: false},
	"is_active":      {Kind: spec.Boolean, Default: true},
})

// AdminUpdate validates partial admin updates.
var AdminUpdate = spec.New("AdminUpdate", map[string]spec.Field{
	"username":       {Kind: spec.Text},
	"email":          {Kind: spec.Text, Format: spec.FormatEmail},
	"password_hash":  {Kind: spec.Text},
	"full_name":      {Kind: spec.Text},
	"role":           {Kind: spec.Text},
	"permissions":    {Kind: spec.Text},
	"is_super_admin": {Kind: spec.Boolean},
	"is_active":      {Kind: spec.Boolean},
	"last_login":     {Kind: spec.Timestamp},
})

// AdminResponse describes serialized admin rows.
var AdminResponse = spec.New("AdminResponse", map[string]spec.Field{
	"id":             {Kind: spec.Text, Required: true},
	"username":       {Kind: spec.Text, Required: true},
	"email":          {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"full_name":      {Kind: spec.Text},
	"role":           {Kind: spec.Text},
	"permissions":    {Kind: spec.Text},
	"is_super_admin": {Kind: spec.Boolean, Required: true},
	"is_active":      {Kind: spec.Boolean, Required: true},
	"last_login":     {Kind: spec.Timestamp},
	"created_at":     {Kind: spec.Timestamp, Required: true},
	"updated_at":     {Kind: spec.Timestamp, Required: true},
})
