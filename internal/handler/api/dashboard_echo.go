package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	models "SentiTrade/internal/domain/models"
	"SentiTrade/internal/usecase"
	"SentiTrade/pkg/config"
	xhttp "SentiTrade/pkg/http"
	"SentiTrade/pkg/http/middleware"
	xlogger "SentiTrade/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

func init() {
	if err := xhttp.RegisterValidation("sentiment", "%s must name Fear & Greed bands", models.ValidBandList); err != nil {
		panic(err)
	}
}

// DashboardEchoHandler serves the dashboard page and its JSON and PNG endpoints.
type DashboardEchoHandler struct {
	logger  *xlogger.Logger
	dash    *usecase.Dashboard
	cfg     *config.Config
	limiter *middleware.Limiter
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dash *usecase.Dashboard, cfg *config.Config) *DashboardEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &DashboardEchoHandler{
		logger:  logger,
		dash:    dash,
		cfg:     cfg,
		limiter: middleware.NewLimiter(cfg.Dashboard.ChartBurst, cfg.Dashboard.ChartRate),
	}
}

var _ xhttp.Handler = (*DashboardEchoHandler)(nil)

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/options", h.Options)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/trades", h.Trades)
	g.GET("/charts/:name", h.Chart, middleware.RateLimit(h.limiter, h.logger))
}

func (h *DashboardEchoHandler) Page(c echo.Context) error {
	data := struct {
		Title   string
		Capital float64
		Risk    float64
		RiskMin float64
		RiskMax float64
		Bands   []models.Band
	}{
		Title:   usecase.ReportHeader,
		Capital: h.cfg.Dashboard.DefaultCapital,
		Risk:    h.cfg.Dashboard.DefaultRisk,
		RiskMin: usecase.RiskMin,
		RiskMax: usecase.RiskMax,
		Bands:   models.Bands(),
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("dashboard page render error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *DashboardEchoHandler) Options(c echo.Context) error {
	res, err := h.dash.Options(c.Request().Context())
	if err != nil {
		return h.fail(c, "options", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	req := h.filterRequest()
	f, ok, err := h.bind(c, &req, &req)
	if !ok {
		return err
	}

	res, err := h.dash.Summary(c.Request().Context(), f)
	if errors.Is(err, models.ErrEmptyFilteredSet) {
		return xhttp.WarningResponse(c, err.Error(), models.Dashboard{Filter: f})
	}
	if err != nil {
		return h.fail(c, "dashboard", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Trades(c echo.Context) error {
	req := &models.TradesRequest{FilterRequest: h.filterRequest()}
	f, ok, err := h.bind(c, req, &req.FilterRequest)
	if !ok {
		return err
	}

	rows, total, err := h.dash.Trades(c.Request().Context(), f, req.Limit)
	if errors.Is(err, models.ErrEmptyFilteredSet) {
		return xhttp.WarningResponse(c, err.Error(), &xhttp.ListDataResponse{Rows: []models.MergedRecord{}})
	}
	if err != nil {
		return h.fail(c, "trades", err)
	}
	return xhttp.ListResponse(c, rows, int64(total))
}

func (h *DashboardEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{FilterRequest: h.filterRequest()}
	f, ok, err := h.bind(c, req, &req.FilterRequest)
	if !ok {
		return err
	}

	png, err := h.dash.Chart(c.Request().Context(), req.Name, f)
	if errors.Is(err, models.ErrEmptyFilteredSet) {
		return xhttp.NoContentResponse(c)
	}
	if err != nil {
		return h.fail(c, "chart", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return c.Blob(http.StatusOK, "image/png", png)
}

// filterRequest starts a request from the configured defaults so that the
// binder only overrides what the client sent.
func (h *DashboardEchoHandler) filterRequest() models.FilterRequest {
	return models.FilterRequest{
		Capital: h.cfg.Dashboard.DefaultCapital,
		Risk:    h.cfg.Dashboard.DefaultRisk,
	}
}

// bind reads and validates req, then turns its filter part into a Filter.
// When ok is false a 400 has been written and err is the write result.
func (h *DashboardEchoHandler) bind(c echo.Context, req interface{}, fr *models.FilterRequest) (f models.Filter, ok bool, err error) {
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return f, false, xhttp.BadRequestResponse(c, verr)
	}
	f, ferr := fr.Filter()
	if ferr != nil {
		return f, false, xhttp.AppErrorResponse(c, xhttp.BadFilterError("", ferr.Error()).WithError(ferr))
	}
	return f, true, nil
}

func (h *DashboardEchoHandler) fail(c echo.Context, op string, err error) error {
	if errors.Is(err, usecase.ErrDatasetUnavailable) {
		h.logger.Error(op+": dataset unavailable", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("trade data could not be loaded").WithError(err))
	}
	h.logger.Error(op+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError("request failed").WithError(err))
}
