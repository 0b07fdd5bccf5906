// Package userapi is the client SDK for the user management service.
//
// It provides a typed Client for the unauthenticated endpoints
// (register, login, refresh), a Session that attaches bearer tokens and
// transparently rotates them when the server answers 401, and a
// SessionStore abstraction (with a bbolt implementation) that persists
// the session across process restarts.
//
// The error values in this package double as the server's wire errors:
// handlers write them with WriteError and the SDK parses responses back
// into the same *Error type, so both sides agree on the taxonomy.
package userapi
