package domain

import "time"

// MaskSentinel is what secret fields are replaced with on read-back. An
// update carrying this exact value leaves the stored secret untouched, so
// the settings form can round-trip without ever re-displaying secrets.
const MaskSentinel = "********"

// DefaultXeroScope is the scope string requested during Xero authorization
// unless overridden in settings.
const DefaultXeroScope = "offline_access accounting.transactions accounting.settings"

// XeroConfig holds the OAuth client configuration for the Xero integration.
type XeroConfig struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectUri"`
	Scope        string `json:"scope"`
}

// Settings is the process-wide credential set. Exactly one row exists in
// storage (fixed ID), lazily created with empty fields on first read.
type Settings struct {
	VisionAPIKey string     `json:"visionApiKey"`
	DextAPIKey   string     `json:"dextApiKey"`
	Xero         XeroConfig `json:"xeroConfig"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Masked returns a copy safe for display: every non-empty secret is replaced
// with MaskSentinel, empty fields stay empty. The redirect URI and scope are
// not secrets and pass through unchanged.
func (s Settings) Masked() Settings {
	out := s
	out.VisionAPIKey = maskValue(s.VisionAPIKey)
	out.DextAPIKey = maskValue(s.DextAPIKey)
	out.Xero.ClientID = maskValue(s.Xero.ClientID)
	out.Xero.ClientSecret = maskValue(s.Xero.ClientSecret)
	return out
}

func maskValue(v string) string {
	if v == "" {
		return ""
	}
	return MaskSentinel
}
