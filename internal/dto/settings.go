package dto

import "invoice-reconciler/internal/core/domain"

// UpdateXeroConfigRequest is the Xero sub-object of a settings update.
// Pointer fields distinguish "absent, keep stored value" from an explicit
// empty string (which clears the field).
type UpdateXeroConfigRequest struct {
	ClientID     *string `json:"clientId"`
	ClientSecret *string `json:"clientSecret"`
	RedirectURI  *string `json:"redirectUri"`
	Scope        *string `json:"scope"`
}

// UpdateSettingsRequest is a partial settings document. Secret fields whose
// value equals the mask sentinel are treated as absent, so the settings form
// can post back exactly what it displayed without clobbering stored secrets.
type UpdateSettingsRequest struct {
	VisionAPIKey *string                  `json:"visionApiKey"`
	DextAPIKey   *string                  `json:"dextApiKey"`
	Xero         *UpdateXeroConfigRequest `json:"xeroConfig"`
}

// SettingsResponse is the display view of the settings document. It is only
// ever built from a masked domain.Settings.
type SettingsResponse struct {
	VisionAPIKey string             `json:"visionApiKey"`
	DextAPIKey   string             `json:"dextApiKey"`
	Xero         XeroConfigResponse `json:"xeroConfig"`
}

// XeroConfigResponse mirrors domain.XeroConfig for display.
type XeroConfigResponse struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectUri"`
	Scope        string `json:"scope"`
}

// ToSettingsResponse converts (already masked) settings to the display DTO.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		VisionAPIKey: s.VisionAPIKey,
		DextAPIKey:   s.DextAPIKey,
		Xero: XeroConfigResponse{
			ClientID:     s.Xero.ClientID,
			ClientSecret: s.Xero.ClientSecret,
			RedirectURI:  s.Xero.RedirectURI,
			Scope:        s.Xero.Scope,
		},
	}
}
