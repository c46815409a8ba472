// Package schemas holds the hand-written validation schemas. Each file
// mirrors a model key and declares role-named schema values; files listed in
// Units are picked up by discovery and matched to models by key. A key with
// an incomplete set here falls back to synthesized schemas.
package schemas

import "github.com/autocrud/autocrud/internal/spec"

// UserBase holds the fields shared by user payloads.
var UserBase = spec.New("UserBase", map[string]spec.Field{
	"name":  {Kind: spec.Text, Required: true},
	"email": {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"phone": {Kind: spec.Text},
	"age":   {Kind: spec.Integer},
})

// UserCreate validates user creation payloads.
var UserCreate = spec.New("UserCreate", map[string]spec.Field{
	"name":      {Kind: spec.Text, Required: true},
	"email":     {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"phone":     {Kind: spec.Text},
	"age":       {Kind: spec.Integer},
	"is_active": {Kind: spec.Boolean, Default: true},
})

// UserUpdate validates partial user updates.
var UserUpdate = spec.New("UserUpdate", map[string]spec.Field{
	"name":      {Kind: spec.Text},
	"email":     {Kind: spec.Text, Format: spec.FormatEmail},
	"phone":     {Kind: spec.Text},
	"age":       {Kind: spec.Integer},
	"is_active": {Kind: spec.Boolean},
})

// UserResponse describes serialized user rows.
var UserResponse = spec.New("UserResponse", map[string]spec.Field{
	"id":         {Kind: spec.Text, Required: true},
	"name":       {Kind: spec.Text, Required: true},
	"email":      {Kind: spec.Text, Required: true, Format: spec.FormatEmail},
	"phone":      {Kind: spec.Text},
	"age":        {Kind: spec.Integer},
	"is_active":  {Kind: spec.Boolean, Required: true},
	"created_at": {Kind: spec.Timestamp, Required: true},
	"updated_at": {Kind: spec.Timestamp, Required: true},
})
