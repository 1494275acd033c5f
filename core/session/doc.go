// Package session implements the access-control gate and the upload workflow
// state of a portal session.
//
// # States
//
//	Unauthenticated --token--> Authenticated --upload--> ActiveFile
//	      ^                          ^                        |
//	      +------ wrong token -------+------- new token ------+
//
// Snapshot holds a decoded state and exposes the pure transitions (Authorize,
// Activate, Reset). Manager applies them to fiber's server-side session store.
// Only an opaque session id travels in the cookie; the token and the active
// file name stay on the server.
//
// # Storage
//
// Sessions live in memory unless a database is configured, in which case
// GormStorage persists them in the portal_sessions table and StartCleanup
// removes expired rows periodically.
package session
