// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// TokenPair bundles the two credentials issued on login: a short-lived
// access token presented per request and a longer-lived refresh token used
// to obtain new access tokens without re-authenticating.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TemporaryToken is a single-use token for email verification or password
// reset. Unhashed is embedded in the outbound link and exists only
// transiently; Hashed is the only form that is ever persisted.
type TemporaryToken struct {
	Unhashed  string
	Hashed    string
	ExpiresAt time.Time
}
