package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation failures are surfaced to callers verbatim, so the messages are
// part of the contract.
var (
	ErrEmailRequired    = errors.New("Email is required")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrRoleRequired     = errors.New("Role is required")
	ErrInvalidRole      = fmt.Errorf("Invalid role. Must be one of: %s", RoleNames())
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
)

// Record is one raw input row from a bulk upload, before validation.
type Record struct {
	Email      string
	Password   string
	Role       string
	GivenName  string
	FamilyName string
	Name       string
}

// Validate checks the record against the bulk-import rules, short-circuiting
// on the first failure. It is pure: no trimming or mutation happens here.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(r.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Role) == "" {
		return ErrRoleRequired
	}
	if _, ok := ParseRole(r.Role); !ok {
		return ErrInvalidRole
	}
	if r.Password != "" && len(r.Password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

// Identifier is the value reported for this record in batch error lists.
func (r Record) Identifier() string {
	if r.Email == "" {
		return "N/A"
	}
	return r.Email
}
