package api

import "time"

// Status is the backend-owned incident lifecycle state.
type Status string

// Incident statuses.
const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

// Priority is the incident priority level.
type Priority string

// Incident priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ReporterType identifies the kind of organization reporting an incident.
type ReporterType string

// Reporter types.
const (
	ReporterEnterprise ReporterType = "ENTERPRISE"
	ReporterGovernment ReporterType = "GOVERNMENT"
)

// UserProfile is the backend's user representation. The cached copy in the
// session store mirrors this; the in-memory copy held by the session
// manager is authoritative for the current process.
type UserProfile struct {
	DateJoined  *time.Time `json:"date_joined,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Address     string     `json:"address,omitempty"`
	Pincode     string     `json:"pincode,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	UserType    string     `json:"user_type,omitempty"`
	ID          int64      `json:"id"`
}

// FullName returns the profile's display name.
func (u UserProfile) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup request payload. PasswordConfirm must match
// Password; the backend enforces the same rule.
type Registration struct {
	Username        string `json:"username"         validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Address         string `json:"address,omitempty"`
	Pincode         string `json:"pincode,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
	Password        string `json:"password"         validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// ProfileUpdate carries the editable profile fields. Zero values are
// omitted so partial updates leave other fields untouched.
type ProfileUpdate struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"        validate:"omitempty,email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// PasswordResetRequest asks the backend to start a password reset.
// The caller does not have to be authenticated.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetResponse is backend-defined; surfaced as-is.
type PasswordResetResponse map[string]any

// AuthResponse is the login/register success body.
type AuthResponse struct {
	User    UserProfile `json:"user"`
	Token   string      `json:"token"`
	Message string      `json:"message,omitempty"`
}

// Incident is the externally owned business entity. The client reads its
// fields but never validates them beyond the closed-edit rule.
type Incident struct {
	ReportedDate    *time.Time   `json:"reported_date,omitempty"`
	UpdatedDate     *time.Time   `json:"updated_date,omitempty"`
	ReporterDetails *UserProfile `json:"reporter_details,omitempty"`
	IncidentID      string       `json:"incident_id"`
	ReporterName    string       `json:"reporter_name,omitempty"`
	ReporterEmail   string       `json:"reporter_email,omitempty"`
	ReporterType    ReporterType `json:"reporter_type"`
	IncidentDetails string       `json:"incident_details"`
	Priority        Priority     `json:"priority"`
	Status          Status       `json:"status"`
	ID              int64        `json:"id"`
	Reporter        int64        `json:"reporter,omitempty"`
	IsEditable      bool         `json:"is_editable"`
}

// Editable reports whether the incident may still be modified.
// Closed incidents are read-only.
func (i Incident) Editable() bool {
	return i.Status != StatusClosed
}

// IncidentCreate is the payload for reporting a new incident.
type IncidentCreate struct {
	ReporterType    ReporterType `json:"reporter_type"      validate:"required,oneof=ENTERPRISE GOVERNMENT"`
	IncidentDetails string       `json:"incident_details"   validate:"required"`
	Priority        Priority     `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// IncidentUpdate is the payload for editing an open incident.
type IncidentUpdate struct {
	IncidentDetails string   `json:"incident_details,omitempty"`
	Priority        Priority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status          Status   `json:"status,omitempty"   validate:"omitempty,oneof=OPEN IN_PROGRESS CLOSED"`
}

// Stats is the per-user incident statistics payload.
type Stats struct {
	TotalIncidents      int `json:"total_incidents"`
	OpenIncidents       int `json:"open_incidents"`
	InProgressIncidents int `json:"in_progress_incidents"`
	ClosedIncidents     int `json:"closed_incidents"`
	HighPriority        int `json:"high_priority"`
	MediumPriority      int `json:"medium_priority"`
	LowPriority         int `json:"low_priority"`
}

// PincodeInfo is the pincode lookup response used to auto-fill
// address fields.
type PincodeInfo struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}
