// Package common contains shared constants and sentinel errors used across
// DreamNotes components.
package common

// AuthHeaderName is the HTTP header that carries the bearer access token.
const AuthHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the auth header value.
const BearerPrefix = "Bearer "
