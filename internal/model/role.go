package model

import "strings"

// Role is the account role stored on a user row.  Capabilities are
// always derived from the role at the moment of the check, never
// stored or cached alongside it.
type Role string

const (
    RoleAdmin    Role = "ADMIN"
    RoleSubAdmin Role = "SUB_ADMIN"
    RoleUser     Role = "USER"
)

// ParseRole normalizes raw input (case, surrounding space) into a
// Role.  The second return is false for anything outside the three
// known roles.
func ParseRole(raw string) (Role, bool) {
    switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
    case RoleAdmin:
        return RoleAdmin, true
    case RoleSubAdmin:
        return RoleSubAdmin, true
    case RoleUser:
        return RoleUser, true
    default:
        return "", false
    }
}

// CanReserve reports whether the role may create reservations.  All
// three roles can book; the distinction matters for management.
func (r Role) CanReserve() bool {
    switch r {
    case RoleAdmin, RoleSubAdmin, RoleUser:
        return true
    default:
        return false
    }
}

// CanManage reports whether the role may use the staff surface:
// catalog writes, room administration and reservation decisions.
func (r Role) CanManage() bool {
    return r == RoleAdmin || r == RoleSubAdmin
}

func (r Role) String() string { return string(r) }
