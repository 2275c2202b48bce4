package ui

import (
	"bytes"
	"errors"
	"net/http"

	"burnoutlens/adapters/chart"
	"burnoutlens/domain/filters"
	apperrors "burnoutlens/internal/errors"
	"burnoutlens/internal/report"
	"burnoutlens/ui/middleware"

	"github.com/gin-gonic/gin"
)

// pageData feeds dashboard.html
type pageData struct {
	Title     string
	LoadError *loadErrorView
	Options   filters.Options
	Selection filters.Selection
	Dashboard report.Dashboard
	ChartURL  string
}

type loadErrorView struct {
	Code     string
	Message  string
	Details  []string
	Guidance string
}

func newLoadErrorView(err error) *loadErrorView {
	v := &loadErrorView{
		Code:    apperrors.GetCode(err),
		Message: err.Error(),
		Details: apperrors.GetDetails(err),
	}
	switch {
	case apperrors.IsDataLoad(err):
		v.Guidance = "Make sure the cleaned survey file exists and point BURNOUT_DATA_FILE at it, then restart."
	case apperrors.IsSchema(err):
		v.Guidance = "The file must contain every required column. Re-run the cleaning step that produces it."
	default:
		v.Guidance = "Check the server logs for details."
	}
	return v
}

// respondError writes the JSON error envelope used by every API route
func respondError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    apperrors.GetCode(err),
		"message": err.Error(),
		"details": apperrors.GetDetails(err),
	}})
}

// requireDataset answers 503 on data routes while no dataset is available
func (s *Server) requireDataset(c *gin.Context) {
	if s.builder == nil {
		respondError(c, http.StatusServiceUnavailable, s.loadErr)
		return
	}
	c.Next()
}

// resolveSelection returns the selection carried by the query, or the session's
// stored one when the query has none. persist stores a query selection.
func (s *Server) resolveSelection(c *gin.Context) (filters.Selection, bool) {
	if sel, ok := selectionFromQuery(c.Request.URL.Query(), s.builder.Options()); ok {
		return sel, true
	}
	if sess, ok := middleware.Current(c); ok {
		return sess.Selection, false
	}
	return filters.NewSelection(), false
}

// remember stores the validated selection of a built dashboard in the session
func (s *Server) remember(c *gin.Context, d report.Dashboard) {
	sess, ok := middleware.Current(c)
	if !ok {
		return
	}
	if err := s.sessions.SetSelection(sess.ID, d.Selection); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID.String()).Msg("could not store selection")
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	if s.builder == nil {
		s.renderTemplate(c, http.StatusServiceUnavailable, "dashboard.html", pageData{
			Title:     "Teacher Burnout Dashboard",
			LoadError: newLoadErrorView(s.loadErr),
		})
		return
	}

	sel, fromQuery := s.resolveSelection(c)
	d := s.builder.Build(sel)
	if fromQuery {
		s.remember(c, d)
	}

	chartURL := ""
	if !d.Distribution.Empty() {
		chartURL = "/api/chart.png"
		if q := selectionQuery(d.Selection, s.builder.Options()).Encode(); q != "" {
			chartURL += "?" + q
		}
	}

	s.renderTemplate(c, http.StatusOK, "dashboard.html", pageData{
		Title:     "Teacher Burnout Dashboard",
		Options:   s.builder.Options(),
		Selection: d.Selection,
		Dashboard: d,
		ChartURL:  chartURL,
	})
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": s.builder.Options()})
}

func (s *Server) handleDashboard(c *gin.Context) {
	sel, fromQuery := s.resolveSelection(c)
	d := s.builder.Build(sel)
	if fromQuery {
		s.remember(c, d)
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleSetSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apperrors.InvalidInput("invalid selection body: "+err.Error()))
		return
	}
	d := s.builder.Build(req.toSelection())
	s.remember(c, d)
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleSession(c *gin.Context) {
	sess, ok := middleware.Current(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, apperrors.InternalError("no session resolved"))
		return
	}
	current, err := s.sessions.Get(sess.ID.String())
	if err != nil {
		respondError(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

func (s *Server) handleChart(c *gin.Context) {
	sel, _ := s.resolveSelection(c)
	d := s.builder.Build(sel)

	var buf bytes.Buffer
	if err := s.charts.RenderDistribution(d.Distribution, &buf); err != nil {
		if errors.Is(err, chart.ErrEmptyChart) {
			respondError(c, http.StatusNotFound, apperrors.NotFound("burnout levels for the current selection"))
			return
		}
		s.logger.Error().Err(err).Msg("chart rendering failed")
		respondError(c, http.StatusInternalServerError, apperrors.Wrap(err, "chart rendering failed"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.builder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error": gin.H{
				"code":    apperrors.GetCode(s.loadErr),
				"message": s.loadErr.Error(),
			},
		})
		return
	}
	ds := s.builder.Dataset()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"dataset": gin.H{
			"source":  ds.Source,
			"rows":    ds.Len(),
			"columns": len(ds.Columns),
		},
	})
}
