package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/report"
)

// bindFilter reads a report filter. An absent or empty body selects everything.
func bindFilter(c *gin.Context) (report.Filter, bool) {
	var f report.Filter
	if err := c.ShouldBindJSON(&f); err != nil && !errors.Is(err, io.EOF) {
		badBody(c)
		return f, false
	}
	return f, true
}

func (h *Handler) projectActivityReport(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chart": report.ProjectActivity(h.svc.State(), f)})
}

func (h *Handler) subsystemActivityReport(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chart": report.SubsystemActivity(h.svc.State(), f)})
}

func (h *Handler) timelineReport(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "timeline": report.Timeline(h.svc.State(), f)})
}

// reportCSV serves /reports/<kind>.csv with the filter taken from the query
// string, e.g. ?projectIds=proj-1,proj-2. A missing parameter selects all.
func (h *Handler) reportCSV(c *gin.Context) {
	file := c.Param("file")
	kind, isCSV := strings.CutSuffix(file, ".csv")
	if !isCSV {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown report"})
		return
	}

	f := report.Filter{
		ProjectIDs:   queryList(c, "projectIds"),
		SubsystemIDs: queryList(c, "subsystemIds"),
		ActivityIDs:  queryList(c, "activityIds"),
	}
	s := h.svc.State()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+file+`"`)

	var err error
	switch kind {
	case "project-activity":
		err = report.WriteChartCSV(c.Writer, report.ProjectActivity(s, f))
	case "subsystem-activity":
		err = report.WriteChartCSV(c.Writer, report.SubsystemActivity(s, f))
	case "timeline":
		err = report.WriteTimelineCSV(c.Writer, report.Timeline(s, f))
	default:
		c.Header("Content-Disposition", "")
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown report"})
		return
	}
	// The status line is already out, so a failed write can only be logged.
	if err != nil {
		h.log.Error("write report csv", zap.String("report", kind), zap.Error(err))
	}
}

// queryList returns nil when key is absent and an empty list when it is blank.
func queryList(c *gin.Context, key string) []string {
	raw, present := c.GetQuery(key)
	if !present {
		return nil
	}
	out := []string{}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
