// Package session owns the client-side authentication lifecycle.
//
// The Manager is the stateful heart of the SDK: a state machine over
// {loading, authenticated, user} that initializes from persisted storage,
// validates restored sessions against the backend, and keeps in-memory
// state, the session store, and the backend in sync through login,
// registration, logout, and profile updates. It is constructed explicitly
// and passed by reference; there is no package-level session.
package session
