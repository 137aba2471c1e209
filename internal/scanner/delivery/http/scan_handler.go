package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/internal/scanner/service"
	"golang-stock-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScanHandler handles HTTP requests for scan runs.
type ScanHandler struct {
	scanService service.ScanService
	logger      *logger.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{scanService: scanService, logger: logger}
}

// RegisterRoutes registers the scan routes to the Echo group.
func (h *ScanHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.TriggerScan)
	g.GET("/latest", h.GetLatestScan)
}

// TriggerScan godoc
// @Summary Start a scan
// @Description Start a background scan of the ticker universe. Only one scan runs at a time.
// @Tags scans
// @Accept  json
// @Produce  json
// @Param   scan  body    dto.TriggerScanRequest   false    "Scan options"
// @Success 202 {object} dto.ScanRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scans [post]
func (h *ScanHandler) TriggerScan(c echo.Context) error {
	var req dto.TriggerScanRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
		}
	}

	run, err := h.scanService.Trigger(c.Request().Context(), service.TriggerOptions{
		Profile: req.Profile,
		Notify:  req.Notify,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrRunInProgress):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case service.IsClientError(err):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			h.logger.ErrorContext(c.Request().Context(), "Failed to trigger scan", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusAccepted, dto.NewScanRunResponse(run, false))
}

// GetLatestScan godoc
// @Summary Get the latest scan
// @Description Get the running or most recently finished scan, with candidates sorted by probability
// @Tags scans
// @Produce  json
// @Param   outcomes  query    bool false    "Include per-ticker outcomes"
// @Success 200 {object} dto.ScanRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /scans/latest [get]
func (h *ScanHandler) GetLatestScan(c echo.Context) error {
	withOutcomes := false
	if raw := c.QueryParam("outcomes"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid outcomes flag"})
		}
		withOutcomes = v
	}

	return c.JSON(http.StatusOK, dto.NewScanRunResponse(h.scanService.Latest(), withOutcomes))
}
