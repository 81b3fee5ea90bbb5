// Package parser replays `go test -json` output into a result collector.
package parser

import "htmlreporter/internal/domain"

// Parsed is a finished test's output, split the way the report shows it
type Parsed struct {
	Status domain.Status
	Output string // what the test printed
	Detail string // failure text, panic trace or skip reason
}

// Parser classifies the raw output lines of a finished test
type Parser interface {
	ParseResult(action string, lines []string) Parsed
}
