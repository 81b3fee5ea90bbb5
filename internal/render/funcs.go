package render

import (
	"fmt"
	"html/template"
	"time"

	"github.com/acarl005/stripansi"

	"htmlreporter/internal/domain"
	"htmlreporter/internal/report"
)

// FuncMap returns the functions available to report templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDuration": formatDuration,
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04:05")
		},
		"statusClass": func(s domain.Status) string {
			return "status-" + statusName(s)
		},
		"statusText": func(s domain.Status) string {
			return statusName(s)
		},
		"groupClass": func(g report.GroupReport) string {
			switch {
			case g.Error > 0:
				return "error"
			case g.Fail > 0:
				return "fail"
			case g.Pass > 0:
				return "pass"
			default:
				return "skip"
			}
		},
		"stripANSI": stripansi.Strip,
		"passRate": func(rate float64) string {
			return fmt.Sprintf("%.1f%%", rate)
		},
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}

func statusName(s domain.Status) string {
	switch s {
	case domain.StatusPass:
		return "pass"
	case domain.StatusFail:
		return "fail"
	case domain.StatusError:
		return "error"
	case domain.StatusSkip:
		return "skip"
	default:
		return "unknown"
	}
}
