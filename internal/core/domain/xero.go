package domain

import "time"

// XeroTokenSet is the payload returned by the Xero token endpoint. It is
// persisted as a single row and also handed back to the caller verbatim.
type XeroTokenSet struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	Expiry       time.Time `json:"expiry"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OAuthState is an anti-replay state token issued with an authorization URL.
// The callback must present a state we issued; each state is single-use.
type OAuthState struct {
	State    string
	IssuedAt time.Time
}
