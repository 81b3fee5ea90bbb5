package report

import (
	"fmt"

	"htmlreporter/internal/domain"
)

// CaseReport is the rendering record of one test
type CaseReport struct {
	ID       string        `json:"id"`
	Desc     string        `json:"desc"`
	Status   domain.Status `json:"status"`
	Detail   *string       `json:"detail,omitempty"`
	Output   string        `json:"-"`
	Duration float64       `json:"duration_seconds"`
}

// GroupReport is the rendering record of one class
type GroupReport struct {
	ID    string       `json:"id"`
	Desc  string       `json:"desc"`
	Pass  int          `json:"pass"`
	Fail  int          `json:"fail"`
	Error int          `json:"error"`
	Skip  int          `json:"skip"`
	Cases []CaseReport `json:"cases"`
}

// Total returns the number of tests in the group
func (g GroupReport) Total() int {
	return g.Pass + g.Fail + g.Error + g.Skip
}

// Counts returns the group's subtotals
func (g GroupReport) Counts() domain.RunCounts {
	return domain.RunCounts{Pass: g.Pass, Fail: g.Fail, Error: g.Error, Skip: g.Skip}
}

// Build groups outcomes by class and numbers every test. Classes from
// mainModule are shown without their module prefix.
func Build(outcomes []domain.TestOutcome, mainModule string) []GroupReport {
	groups := GroupByClass(outcomes)
	reports := make([]GroupReport, 0, len(groups))

	for gi, g := range groups {
		counts := domain.CountOutcomes(g.Outcomes)
		gr := GroupReport{
			ID:    fmt.Sprintf("c%d", gi+1),
			Desc:  ClassDescription(g.Class, mainModule),
			Pass:  counts.Pass,
			Fail:  counts.Fail,
			Error: counts.Error,
			Skip:  counts.Skip,
			Cases: make([]CaseReport, 0, len(g.Outcomes)),
		}
		for ti, o := range g.Outcomes {
			gr.Cases = append(gr.Cases, buildCase(gi, ti, o))
		}
		reports = append(reports, gr)
	}
	return reports
}

// ClassDescription formats "<qualified name>: <first doc line>", or just the
// qualified name when the class has no doc
func ClassDescription(class domain.Class, mainModule string) string {
	name := class.QualifiedName(mainModule)
	if doc := class.DocFirstLine(); doc != "" {
		return name + ": " + doc
	}
	return name
}

// DisplayID returns ids like "ft1.2" for a failure, first group, second test.
// Indexes are zero based.
func DisplayID(status domain.Status, group, index int) string {
	return fmt.Sprintf("%st%d.%d", status.Code(), group+1, index+1)
}

func buildCase(group, index int, o domain.TestOutcome) CaseReport {
	id := DisplayID(o.Status, group, index)

	desc := domain.MethodName(o.Test)
	if doc := o.Test.ShortDescription(); doc != "" {
		desc += ": " + doc
	}

	var detail *string
	if o.Output != "" || o.Detail != "" {
		s := id + ": " + o.Output + o.Detail
		detail = &s
	}

	return CaseReport{
		ID:       id,
		Desc:     desc,
		Status:   o.Status,
		Detail:   detail,
		Output:   o.Output,
		Duration: o.Duration.Seconds(),
	}
}
