package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/redcell-sec/reportbot/src/reportbot/components/taxonomy"
	"github.com/redcell-sec/reportbot/src/shared/export"
	"github.com/redcell-sec/reportbot/src/shared/store"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	exportRecent     = 25
)

type Reports struct {
	store *store.Store
}

func NewReports(st *store.Store) Reports {
	return Reports{store: st}
}

// List returns stored reports, newest first. An optional reporter query
// narrows the listing to one account.
func (r Reports) List(c *gin.Context) {
	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid limit"})
			return
		}
		limit = n
	}

	if v := c.Query("reporter"); v != "" {
		reporterID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid reporter id"})
			return
		}
		reports, err := r.store.ListByReporter(c.Request.Context(), reporterID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports})
		return
	}

	reports, err := r.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Stats returns the total plus the per-category breakdown.
func (r Reports) Stats(c *gin.Context) {
	total, err := r.store.Total(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	stats, err := r.store.AggregateByCategory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "categories": stats})
}

// Categories lists the static registry.
func (r Reports) Categories(c *gin.Context) {
	out := make([]gin.H, 0, len(taxonomy.Categories))
	for _, cat := range taxonomy.Categories {
		out = append(out, gin.H{
			"code":        cat.Code,
			"displayName": cat.DisplayName,
			"description": cat.Description,
			"severity":    cat.Severity,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// ExportPDF streams the engagement summary PDF.
func (r Reports) ExportPDF(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := r.store.Total(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	stats, err := r.store.AggregateByCategory(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	recent, err := r.store.ListRecent(ctx, exportRecent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	pdf, err := export.Summary(total, stats, recent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
