package http

import (
	"net/http"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/service"
	"golang-stock-scanner/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// ProgressHandler streams scan progress over a websocket.
type ProgressHandler struct {
	scanService service.ScanService
	logger      *logger.Logger
	upgrader    websocket.Upgrader
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(scanService service.ScanService, logger *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		scanService: scanService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes registers the progress route to the Echo group.
func (h *ProgressHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/progress", h.StreamProgress)
}

// StreamProgress godoc
// @Summary Stream scan progress
// @Description Upgrade to a websocket that receives one JSON progress event per processed ticker
// @Tags scans
// @Success 101
// @Router /scans/progress [get]
func (h *ProgressHandler) StreamProgress(c echo.Context) error {
	ctx := c.Request().Context()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to upgrade progress connection", logger.ErrorField(err))
		return nil
	}
	defer conn.Close()

	events, unsubscribe := h.scanService.Subscribe()
	defer unsubscribe()

	if latest := h.scanService.Latest(); latest != nil {
		if err := h.write(conn, snapshotProgress(latest)); err != nil {
			return nil
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return nil
		case p, ok := <-events:
			if !ok {
				return nil
			}
			if err := h.write(conn, p); err != nil {
				h.logger.DebugContext(ctx, "Progress client went away", logger.ErrorField(err))
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

func (h *ProgressHandler) write(conn *websocket.Conn, p entity.Progress) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(p)
}

func snapshotProgress(run *entity.ScanRun) entity.Progress {
	return entity.Progress{
		RunID:     run.ID,
		Processed: run.Processed,
		Total:     run.Total,
		Fraction:  run.Fraction(),
		Done:      run.Status != entity.RunStatusRunning,
	}
}
