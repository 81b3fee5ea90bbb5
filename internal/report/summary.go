package report

import (
	"time"

	"htmlreporter/internal/domain"
)

// Summary holds run-level figures shown above the group table
type Summary struct {
	domain.RunCounts
	Total    int           `json:"total"`
	PassRate float64       `json:"pass_rate"`
	Duration time.Duration `json:"duration"`
	Status   string        `json:"status"`
}

// Summarize computes the run summary
func Summarize(counts domain.RunCounts, start, stop time.Time) Summary {
	s := Summary{
		RunCounts: counts,
		Total:     counts.Total(),
		Status:    "passed",
	}
	if s.Total > 0 {
		s.PassRate = float64(counts.Pass) / float64(s.Total) * 100
	}
	if !stop.IsZero() && stop.After(start) {
		s.Duration = stop.Sub(start)
	}
	if counts.Fail > 0 || counts.Error > 0 {
		s.Status = "failed"
	} else if s.Total == 0 {
		s.Status = "empty"
	}
	return s
}
