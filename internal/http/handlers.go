package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fyrsmithlabs/luna/internal/cycle"
	"github.com/fyrsmithlabs/luna/internal/forecast"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/logging"
	"github.com/fyrsmithlabs/luna/internal/risk"
)

func (s *Server) handleHealth(c echo.Context) error {
	resp := HealthResponse{
		Status:     "ok",
		ModelReady: s.svc.Ready(),
	}
	if !resp.ModelReady {
		resp.Status = "degraded"
	}
	if s.telemetry != nil {
		h := s.telemetry.Health()
		resp.Telemetry = &h
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCycle(c echo.Context) error {
	var req CycleRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	last, err := time.Parse(dateLayout, req.LastPeriodDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "last_period_date must be YYYY-MM-DD")
	}
	today, err := parseDate(req.Today)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "today must be YYYY-MM-DD")
	}

	res, err := s.svc.Cycle(c.Request().Context(), cycle.Profile{LastPeriod: last, CycleLength: req.length()}, today)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleRisk(c echo.Context) error {
	var req RiskRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	a, err := s.svc.Assess(c.Request().Context(), req.Symptoms)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) handleCatalogue(c echo.Context) error {
	return c.JSON(http.StatusOK, CatalogueResponse{Symptoms: risk.Catalogue()})
}

// handleForecast leaves input validation to the forecaster, which checks for a zero
// height before anything else.
func (s *Server) handleForecast(c echo.Context) error {
	var in forecast.Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := s.svc.Forecast(c.Request().Context(), in)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleModel(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.ModelInfo())
}

func (s *Server) handleAddLog(c echo.Context) error {
	var req LogRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	userID := s.withUser(c)

	e, err := req.entry(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	stored, err := s.svc.AddLog(c.Request().Context(), e)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, stored)
}

func (s *Server) handleSummary(c echo.Context) error {
	userID := s.withUser(c)
	today, err := parseDate(c.QueryParam("today"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "today must be YYYY-MM-DD")
	}

	sum, err := s.svc.WeeklySummary(c.Request().Context(), userID, today)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (s *Server) handleSeries(c echo.Context) error {
	userID := s.withUser(c)
	from, err := parseDate(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := parseDate(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
	}

	pts, err := s.svc.Series(c.Request().Context(), userID, logbook.DateRange{From: from, To: to})
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, pts)
}

// bind decodes the body into req and validates it.
func (s *Server) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return s.httpError(c, err)
	}
	return nil
}

// withUser returns the :user path parameter and, when it is safe to log, adds it to the
// request context.
func (s *Server) withUser(c echo.Context) string {
	userID := c.Param("user")
	if ctx, err := logging.WithUserID(c.Request().Context(), userID); err == nil {
		c.SetRequest(c.Request().WithContext(ctx))
	}
	return userID
}

// parseDate parses a YYYY-MM-DD value. An empty value yields the zero time, which the
// service reads as "today" or as an open range bound.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, v)
}
