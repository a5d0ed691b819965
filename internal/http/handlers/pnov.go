package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"pnovbridge/internal/domain"
	"pnovbridge/internal/http/middleware"
	"pnovbridge/internal/metrics"
	"pnovbridge/internal/services"
	"pnovbridge/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	formatText = "text"
	formatPDF  = "pdf"
)

// PNOVHandler serves the missing-missort report endpoints.
type PNOVHandler struct {
	Builder        services.ReportBuilder
	Metrics        metrics.Collector
	MaxUploadBytes int64
	Now            func() time.Time
}

// Options answers a bare OPTIONS request; browser preflights are handled
// by the CORS middleware.
func (h PNOVHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// POST /pnov-bridge
func (h PNOVHandler) Report(c *gin.Context) {
	report, err := h.build(c, formatText)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report.String()})
}

// POST /pnov-bridge/pdf
func (h PNOVHandler) ReportPDF(c *gin.Context) {
	report, err := h.build(c, formatPDF)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdfBytes, filename, err := services.RenderReportPDF(report, h.now())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "render pdf", Err: err})
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h PNOVHandler) build(c *gin.Context, format string) (services.Report, error) {
	start := time.Now()
	rid := middleware.GetRequestID(c)

	report, rows, err := h.parseAndBuild(c, rid)
	outcome := "ok"
	if err != nil {
		_, outcome = errorCode(err)
		utils.LogEvent(rid, "pnov", "build_report_failed", err.Error())
	} else {
		utils.LogEvent(rid, "pnov", "build_report", fmt.Sprintf("format=%s rows=%d carriers=%d repeat=%d high_value=%d",
			format, rows, len(report.Carriers), len(report.RepeatMisses), len(report.HighValue)))
	}
	h.metrics().ObserveReport(format, outcome, rows, time.Since(start))
	return report, err
}

func (h PNOVHandler) parseAndBuild(c *gin.Context, rid string) (services.Report, int, error) {
	if h.MaxUploadBytes > 0 {
		if c.Request.ContentLength > h.MaxUploadBytes {
			return services.Report{}, 0, domain.TooLargeError{Limit: h.MaxUploadBytes}
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return services.Report{}, 0, domain.TooLargeError{Limit: h.MaxUploadBytes}
		}
		return services.Report{}, 0, domain.MissingFileError{}
	}
	f, err := fh.Open()
	if err != nil {
		return services.Report{}, 0, domain.InternalError{Msg: "open upload", Err: err}
	}
	defer f.Close()

	table, err := services.IngestService{RequestID: rid}.Parse(fh.Filename, f)
	if err != nil {
		return services.Report{}, 0, err
	}
	report, err := h.Builder.Build(table)
	return report, len(table.Rows), err
}

func (h PNOVHandler) metrics() metrics.Collector {
	if h.Metrics != nil {
		return h.Metrics
	}
	return metrics.NopCollector{}
}

func (h PNOVHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
