package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"invoice-reconciler/internal/apperrors"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/dto"
	"invoice-reconciler/internal/middleware"

	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests related to provider credentials.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// newSettingsHandler creates a new settingsHandler.
func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{
		settingsService: ss,
	}
}

// registerSettingsRoutes registers routes related to settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.POST("", h.updateSettings)
	}
}

// getSettings godoc
// @Summary Get settings
// @Description Returns the provider configuration with every secret masked
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} map[string]string "Error fetching settings"
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	masked, err := h.settingsService.GetMaskedSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(masked))
}

// updateSettings godoc
// @Summary Update settings
// @Description Merges a partial credential set; fields equal to the mask sentinel keep their stored value
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Partial settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Failed to save settings"
// @Router /settings [post]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settings update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.settingsService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Settings update failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		}
		return
	}

	logger.Info("Settings updated")
	masked := updated.Masked()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated successfully",
		"settings": dto.ToSettingsResponse(&masked),
	})
}
