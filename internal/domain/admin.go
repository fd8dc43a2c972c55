package domain

import "time"

// AdminRole scopes what an admin account may do.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "superadmin"
	RoleReviewer   AdminRole = "reviewer"
)

func (r AdminRole) Valid() bool {
	return r == RoleSuperAdmin || r == RoleReviewer
}

// Admin is a staff account. Admin privilege is decided by the presence of
// an active row here, never by comparing emails against a constant.
type Admin struct {
	AdminID   string    `json:"admin_id"`
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      AdminRole `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// UserAccount is a locally managed credential record, used when the local
// identity provider is configured instead of Firebase.
type UserAccount struct {
	UUID         string    `json:"uuid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"is_verified"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// ApplicationStatistics is the admin dashboard rollup.
type ApplicationStatistics struct {
	TotalApplications    int `json:"total_applications"`
	PendingApplications  int `json:"pending_applications"`
	ApprovedApplications int `json:"approved_applications"`
	RejectedApplications int `json:"rejected_applications"`
	ApplicationsToday    int `json:"applications_today"`
}
