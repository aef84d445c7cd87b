package rmg

import (
	"github.com/reportmygrievance/rmg-go/pkg/api"
	"github.com/reportmygrievance/rmg-go/pkg/session"
)

// Type aliases - public API
type (
	// Result is the uniform outcome of every SDK operation.
	Result[T any] = api.Result[T]

	// ErrorPayload is the normalized error body of a failed operation.
	ErrorPayload = api.ErrorPayload

	// UserProfile is the backend's user representation.
	UserProfile = api.UserProfile

	// Credentials is the login payload.
	Credentials = api.Credentials

	// Registration is the signup payload.
	Registration = api.Registration

	// ProfileUpdate carries editable profile fields.
	ProfileUpdate = api.ProfileUpdate

	// PasswordResetRequest starts a password reset flow.
	PasswordResetRequest = api.PasswordResetRequest

	// Incident is the externally owned incident entity.
	Incident = api.Incident

	// IncidentCreate is the payload for reporting an incident.
	IncidentCreate = api.IncidentCreate

	// IncidentUpdate is the payload for editing an incident.
	IncidentUpdate = api.IncidentUpdate

	// Stats is the incident statistics payload.
	Stats = api.Stats

	// PincodeInfo is the pincode lookup response.
	PincodeInfo = api.PincodeInfo

	// State is a snapshot of the session state machine.
	State = session.State
)

// Incident field enumerations re-exported for call sites that only
// import the root package.
const (
	StatusOpen       = api.StatusOpen
	StatusInProgress = api.StatusInProgress
	StatusClosed     = api.StatusClosed

	PriorityLow    = api.PriorityLow
	PriorityMedium = api.PriorityMedium
	PriorityHigh   = api.PriorityHigh

	ReporterEnterprise = api.ReporterEnterprise
	ReporterGovernment = api.ReporterGovernment
)
