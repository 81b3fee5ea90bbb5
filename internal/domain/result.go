package domain

import "time"

// TestOutcome is the recorded result of one executed test
type TestOutcome struct {
	Status   Status
	Test     TestCase
	Output   string        // Stdout and stderr captured during the test, merged in write order
	Detail   string        // Failure or error text, or the skip reason
	Duration time.Duration // Time between start and completion
}

// RunCounts holds the per-status totals of a run
type RunCounts struct {
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
	Error int `json:"error"`
	Skip  int `json:"skip"`
}

// Total returns the number of tests counted
func (c RunCounts) Total() int {
	return c.Pass + c.Fail + c.Error + c.Skip
}

// Add increments the counter matching status
func (c *RunCounts) Add(status Status) {
	switch status {
	case StatusPass:
		c.Pass++
	case StatusFail:
		c.Fail++
	case StatusError:
		c.Error++
	case StatusSkip:
		c.Skip++
	}
}

// CountOutcomes tallies a list of outcomes
func CountOutcomes(outcomes []TestOutcome) RunCounts {
	var c RunCounts
	for _, o := range outcomes {
		c.Add(o.Status)
	}
	return c
}
