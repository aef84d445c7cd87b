// Package sessionstore persists the client session: an opaque auth token
// and a cached user object, stored and cleared together.
//
// Three backends implement the generic Store interface: Memory for tests
// and ephemeral sessions, File for a durable single-user session that
// survives process restarts, and Redis for processes sharing one session.
// No backend tracks expiry; the backend invalidates stale tokens remotely
// and the request client reacts to the resulting 401.
package sessionstore
