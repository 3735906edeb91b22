package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// IsAdmin reports whether the user may create, edit and delete posts.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate normalizes the user and fills in the default role.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	u.Name = NormalizeName(u.Name)
	if u.Role == "" {
		u.Role = RoleMember
	}
	return u.Validate()
}

// NormalizeEmail folds an address to the form it is stored and looked up by.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(email)))
}

// NormalizeName trims a display name and puts it in NFC.
func NormalizeName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}
