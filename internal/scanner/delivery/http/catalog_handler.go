package http

import (
	"net/http"

	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/internal/scanner/service"
	"golang-stock-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the screening profiles and the ticker universe.
type CatalogHandler struct {
	scanService service.ScanService
	logger      *logger.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(scanService service.ScanService, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{scanService: scanService, logger: logger}
}

// RegisterRoutes registers the catalog routes to the Echo group.
func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profiles", h.GetProfiles)
	g.GET("/universe", h.GetUniverse)
}

// GetProfiles godoc
// @Summary List screening profiles
// @Description List the built-in and configured screening profiles
// @Tags catalog
// @Produce  json
// @Success 200 {array} screener.Profile
// @Router /profiles [get]
func (h *CatalogHandler) GetProfiles(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scanService.Profiles())
}

// GetUniverse godoc
// @Summary Get the ticker universe
// @Description Get the tickers a scan without overrides would process
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.UniverseResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /universe [get]
func (h *CatalogHandler) GetUniverse(c echo.Context) error {
	tickers, err := h.scanService.Universe(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to load universe", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, dto.UniverseResponse{Count: len(tickers), Tickers: tickers})
}
