package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleTeacher        UserRole = "teacher"
	RoleLibrarian      UserRole = "librarian"
	RoleDepartmentHead UserRole = "department-head"
	RoleSuperAdmin     UserRole = "super-admin"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleLibrarian, RoleDepartmentHead, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// staffRoleLabels is the fixed label to role mapping used when admins register
// staff. Bengali labels are carried over from the original admin forms.
var staffRoleLabels = map[string]UserRole{
	"teacher":         RoleTeacher,
	"শিক্ষক":          RoleTeacher,
	"librarian":       RoleLibrarian,
	"লাইব্রেরিয়ান":    RoleLibrarian,
	"department-head": RoleDepartmentHead,
	"বিভাগীয় প্রধান":  RoleDepartmentHead,
}

// StaffRoleFromLabel resolves a role label to its enum value.
func StaffRoleFromLabel(label string) (UserRole, bool) {
	role, ok := staffRoleLabels[label]
	return role, ok
}

// User is a login-capable account. Exactly one Staff record exists per
// non-admin user, joined on UID.
type User struct {
	UID          string   `json:"uid"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Role         UserRole `json:"role"`
	Department   string   `json:"department,omitempty"`
	SchoolID     string   `json:"schoolId,omitempty"`
}

// Sanitized returns a copy safe to hand to clients and sessions.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
