package identity

import (
	"errors"
	"strings"
)

// Role is the closed set of account roles. It is resolved once when a token
// is issued or validated and carried through calls as a typed value, so
// handlers branch on the enum rather than re-querying membership.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleCompany:
		return RoleCompany, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}

// CanPostJobs reports whether the role may create or manage job postings.
func (r Role) CanPostJobs() bool {
	return r == RoleCompany || r == RoleAdmin
}

// CanTakeAssessments reports whether the role may submit skill assessments.
func (r Role) CanTakeAssessments() bool {
	return r == RoleStudent || r == RoleAdmin
}

// CanManageSkills reports whether the role may edit the skill catalog.
func (r Role) CanManageSkills() bool {
	return r == RoleAdmin
}
