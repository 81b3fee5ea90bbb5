package ui

import (
	"htmlreporter/internal/domain"
	"htmlreporter/internal/report"
)

// Viewer displays report results in an interactive TUI
type Viewer interface {
	View(groups []report.GroupReport) error
}

// Failure is a failed or errored test together with its group
type Failure struct {
	Group string
	Case  report.CaseReport
}

// Failures returns the FAIL and ERROR cases of groups in report order
func Failures(groups []report.GroupReport) []Failure {
	var failures []Failure
	for _, g := range groups {
		for _, c := range g.Cases {
			if c.Status == domain.StatusFail || c.Status == domain.StatusError {
				failures = append(failures, Failure{Group: g.Desc, Case: c})
			}
		}
	}
	return failures
}
