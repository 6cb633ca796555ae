package projection

import (
	"context"
	"errors"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	httperr "github.com/aevon-lab/playstats/internal/core/errors"
	"github.com/aevon-lab/playstats/internal/core/fingerprint"
	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// Stats is what the HTTP layer needs from the store owner.
type Stats interface {
	QueryMonth(ctx context.Context, month string) ([]v1.PeriodEntry, error)
	QueryYear(ctx context.Context, year string) ([]v1.PeriodEntry, error)
	DeleteCounter(ctx context.Context, month, trackKey string) error
	RecomputePeriod(ctx context.Context, p string, isYear bool) (int, error)
}

// Handler serves the stats API.
type Handler struct {
	stats Stats
	nowFn func() time.Time
}

func NewHandler(stats Stats) *Handler {
	if stats == nil {
		panic("projection: stats must not be nil")
	}
	return &Handler{stats: stats, nowFn: time.Now}
}

// RegisterRoutes registers all stats API routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/stats/current", h.HandleCurrent)
	r.GET("/v1/stats/months/:period", h.HandleMonth)
	r.GET("/v1/stats/years/:period", h.HandleYear)
	r.DELETE("/v1/stats/months/:period/tracks/:track_key", h.HandleDeleteCounter)
	r.POST("/v1/stats/:period/recompute", h.HandleRecompute)
}

type listQuery struct {
	Sort  string `form:"sort"`
	Order string `form:"order"`
}

// HandleMonth handles GET /v1/stats/months/:period
// Query parameters: sort, order
func (h *Handler) HandleMonth(c *gin.Context) {
	p, err := period.ParseMonth(c.Param("period"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, p)
}

// HandleYear handles GET /v1/stats/years/:period
func (h *Handler) HandleYear(c *gin.Context) {
	p, err := period.ParseYear(c.Param("period"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, p)
}

// HandleCurrent handles GET /v1/stats/current?granularity=month|year
func (h *Handler) HandleCurrent(c *gin.Context) {
	p := period.Of(h.nowFn())
	switch c.DefaultQuery("granularity", "month") {
	case "month":
	case "year":
		p = p.YearOf()
	default:
		writeError(c, invalidQueryf("granularity must be month or year"))
		return
	}
	h.respond(c, p)
}

func (h *Handler) respond(c *gin.Context, p period.Period) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, invalidQueryf("%v", err))
		return
	}
	col, err := ParseSortColumn(query.Sort)
	if err != nil {
		writeError(c, err)
		return
	}
	ascending, err := ParseOrder(col, query.Order)
	if err != nil {
		writeError(c, err)
		return
	}

	var entries []v1.PeriodEntry
	if p.IsYear() {
		entries, err = h.stats.QueryYear(c.Request.Context(), p.String())
	} else {
		entries, err = h.stats.QueryMonth(c.Request.Context(), p.String())
	}
	if err != nil {
		writeError(c, err)
		return
	}

	if query.Sort != "" || query.Order != "" {
		SortEntries(entries, col, ascending)
	}
	c.JSON(http.StatusOK, NewPeriodResponse(p, entries))
}

// HandleDeleteCounter handles DELETE /v1/stats/months/:period/tracks/:track_key
func (h *Handler) HandleDeleteCounter(c *gin.Context) {
	p, err := period.ParseMonth(c.Param("period"))
	if err != nil {
		writeError(c, err)
		return
	}
	key := c.Param("track_key")
	if _, err := fingerprint.ParseKey(key); err != nil {
		writeError(c, invalidQueryf("%v", err))
		return
	}

	if err := h.stats.DeleteCounter(c.Request.Context(), p.String(), key); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleRecompute handles POST /v1/stats/:period/recompute. A year period rebuilds its twelve months.
func (h *Handler) HandleRecompute(c *gin.Context) {
	p, err := period.Parse(c.Param("period"))
	if err != nil {
		writeError(c, err)
		return
	}

	counters, err := h.stats.RecomputePeriod(c.Request.Context(), p.String(), p.IsYear())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":   p.String(),
		"months":   len(p.Months()),
		"counters": counters,
	})
}

// writeError maps domain errors onto the shared error body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, period.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidPeriodError,
			Message:   "Invalid period",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid stats query",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpCounterNotFound,
			Message:   "No counter for that track in that month",
		})
	case errors.Is(err, storage.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStoreUnavailable,
			Message:   "Play store is not open",
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query stats",
			Details:   err.Error(),
		})
	}
}
