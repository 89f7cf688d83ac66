package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"invoice-reconciler/internal/apperrors"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/dto"
	"invoice-reconciler/internal/middleware"
	"invoice-reconciler/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// xeroHandler handles the Xero OAuth flow endpoints.
type xeroHandler struct {
	xeroService     portssvc.XeroSvcFacade
	frontendBaseURL string
}

// newXeroHandler creates a new xeroHandler.
func newXeroHandler(xs portssvc.XeroSvcFacade, cfg *config.Config) *xeroHandler {
	return &xeroHandler{
		xeroService:     xs,
		frontendBaseURL: cfg.FrontendBaseURL,
	}
}

// RegisterXeroRoutes registers routes related to the Xero integration.
func RegisterXeroRoutes(rg *gin.RouterGroup, xeroService portssvc.XeroSvcFacade, cfg *config.Config) {
	h := newXeroHandler(xeroService, cfg)

	xero := rg.Group("/xero")
	{
		xero.GET("/auth-url", h.getAuthURL)
		xero.GET("/callback", h.callback)
		xero.GET("/status", h.getStatus)
	}
}

// getAuthURL godoc
// @Summary Get Xero authorization URL
// @Description Builds the authorization-request URL with a fresh anti-replay state token
// @Tags xero
// @Produce  json
// @Success 200 {object} dto.AuthURLResponse
// @Failure 400 {object} map[string]string "Xero configuration not found"
// @Failure 500 {object} map[string]string "Error generating authorization URL"
// @Router /xero/auth-url [get]
func (h *xeroHandler) getAuthURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authURL, err := h.xeroService.BuildAuthorizationURL(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingClientID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Xero configuration not found"})
			return
		}
		logger.Error("Failed to build authorization URL", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating authorization URL"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthURL: authURL})
}

// callback godoc
// @Summary Xero OAuth callback
// @Description Verifies the state, exchanges the code for tokens and redirects to the frontend settings page with a coarse reason code
// @Tags xero
// @Param   code query string false "Authorization code"
// @Param   state query string false "Anti-replay state token"
// @Success 307 "Redirect to the frontend settings page"
// @Router /xero/callback [get]
func (h *xeroHandler) callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	code := c.Query("code")
	state := c.Query("state")

	_, err := h.xeroService.ExchangeCode(ctx, code, state)
	if err != nil {
		// Raw provider error bodies never reach the end user; the frontend
		// only gets a coarse reason code.
		reason := "server_error"
		switch {
		case errors.Is(err, apperrors.ErrNoAuthCode):
			reason = "no_code"
		case errors.Is(err, apperrors.ErrStateMismatch):
			reason = "state_mismatch"
		case errors.Is(err, apperrors.ErrNoOAuthCredentials):
			reason = "no_settings"
		case errors.Is(err, apperrors.ErrProviderRejected):
			reason = "token_exchange_failed"
		}
		logger.Warn("Xero callback failed", slog.String("reason", reason), slog.String("error", err.Error()))
		c.Redirect(http.StatusTemporaryRedirect, h.frontendBaseURL+"/settings?xero=error&message="+reason)
		return
	}

	logger.Info("Xero token exchange completed")
	c.Redirect(http.StatusTemporaryRedirect, h.frontendBaseURL+"/settings?xero=success")
}

// getStatus godoc
// @Summary Xero connection status
// @Description Reports whether a token set is stored and when it expires
// @Tags xero
// @Produce  json
// @Success 200 {object} dto.XeroStatusResponse
// @Failure 500 {object} map[string]string "Error fetching connection status"
// @Router /xero/status [get]
func (h *xeroHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tokens, err := h.xeroService.GetConnectionStatus(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.XeroStatusResponse{Connected: false})
			return
		}
		logger.Error("Failed to load xero connection status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching connection status"})
		return
	}

	c.JSON(http.StatusOK, dto.ToXeroStatusResponse(tokens))
}
