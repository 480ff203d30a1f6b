package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/skycast/internal/domain/forecast"
	"github.com/yanqian/skycast/internal/domain/location"
	"github.com/yanqian/skycast/internal/domain/widget"
	apperrors "github.com/yanqian/skycast/pkg/errors"
	"github.com/yanqian/skycast/pkg/util"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	widgetSvc widget.Service
	hub       *widget.Hub
	resolver  location.Resolver
	fetcher   forecast.Fetcher
	formatter widget.Formatter
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(widgetSvc widget.Service, hub *widget.Hub, resolver location.Resolver, fetcher forecast.Fetcher, formatter widget.Formatter, logger *slog.Logger) *Handler {
	return &Handler{
		widgetSvc: widgetSvc,
		hub:       hub,
		resolver:  resolver,
		fetcher:   fetcher,
		formatter: formatter,
		logger:    logger.With("component", "http.handler"),
		now:       util.NowUTC,
	}
}

type sessionResponse struct {
	SessionID string       `json:"sessionId"`
	State     widget.State `json:"state"`
}

type searchRequest struct {
	City    string         `json:"city"`
	Trigger widget.Trigger `json:"trigger"`
}

type locateRequest struct {
	Supported bool     `json:"supported"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

func (r locateRequest) report() location.PositionReport {
	report := location.PositionReport{Supported: r.Supported}
	if !r.Supported {
		return report
	}
	if r.Error == "" && r.Latitude != nil && r.Longitude != nil {
		report.Coords = &location.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
		return report
	}
	report.Failure = location.PositionFailure(r.Error)
	if report.Failure == "" {
		report.Failure = location.FailurePositionUnavailable
	}
	return report
}

// OpenSession creates a widget session and runs its initial load.
func (h *Handler) OpenSession(c *gin.Context) {
	st, err := h.widgetSvc.Open(c.Request.Context())
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, sessionResponse{SessionID: st.SessionID, State: st})
}

// GetSession returns the current state of a session.
func (h *Handler) GetSession(c *gin.Context) {
	st, err := h.widgetSvc.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, st)
}

// ReloadSession repeats the initial load of a session.
func (h *Handler) ReloadSession(c *gin.Context) {
	st, err := h.widgetSvc.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, st)
}

// Search runs a city query for a session. Query failures are reported inside
// the returned state, not as HTTP errors.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", apperrors.MessageOf(err), err))
		return
	}
	switch req.Trigger {
	case "":
		req.Trigger = widget.TriggerSearchButton
	case widget.TriggerSearchButton, widget.TriggerEnterKey:
	default:
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "trigger must be search_button or enter_key", nil))
		return
	}

	st, err := h.widgetSvc.Search(c.Request.Context(), c.Param("id"), req.Trigger, req.City)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, st)
}

// Locate runs a current-location query from the browser's geolocation outcome.
func (h *Handler) Locate(c *gin.Context) {
	var req locateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", apperrors.MessageOf(err), err))
		return
	}

	st, err := h.widgetSvc.Locate(c.Request.Context(), c.Param("id"), req.report())
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, st)
}

// Weather is a stateless lookup by city or by coordinates.
func (h *Handler) Weather(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		loc location.Location
		err error
	)
	lat, lon := c.Query("lat"), c.Query("lon")
	if lat != "" || lon != "" {
		coords, parseErr := parseCoordinates(lat, lon)
		if parseErr != nil {
			abortWithError(c, toHTTPError(parseErr))
			return
		}
		loc, err = h.resolver.ResolveByGeolocation(ctx, location.PositionReport{Supported: true, Coords: &coords})
	} else {
		loc, err = h.resolver.ResolveByName(ctx, c.Query("city"))
	}
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}

	weather, err := h.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, h.formatter.Format(&loc, weather, h.now()))
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseCoordinates(lat, lon string) (location.Coordinates, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return location.Coordinates{}, apperrors.Wrap(apperrors.CodeInvalidInput, "lat must be a number", err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return location.Coordinates{}, apperrors.Wrap(apperrors.CodeInvalidInput, "lon must be a number", err)
	}
	return location.Coordinates{Latitude: latitude, Longitude: longitude}, nil
}
