// Package api provides the HTTP request client and typed operations for
// the ReportMyGrievance REST backend.
//
// The Client is the single point of outgoing HTTP configuration: base URL,
// timeout, JSON content negotiation, auth token injection from a session
// source, and global handling of rejected sessions. On an HTTP 401 from
// any request the client clears the persisted session and emits a
// session-invalidated signal to registered subscribers; what happens next
// (state reset, navigation) is the subscriber's decision.
//
// The service facades (AuthService, IncidentsService, UtilsService)
// translate each backend endpoint into a uniform Result: Success with the
// response body on any 2xx, Failure with the backend's error body on a
// structured failure, or a synthesized per-operation message when the
// transport itself fails. Transport errors never escape a facade
// operation. Request payloads are validated locally before any network
// call; violations return a field-keyed Failure without touching the wire.
package api
