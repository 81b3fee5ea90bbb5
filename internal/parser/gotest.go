package parser

import (
	"regexp"
	"strings"

	"htmlreporter/internal/domain"
)

var (
	// === RUN, === PAUSE, === CONT, === NAME
	frameworkLine = regexp.MustCompile(`^=== (RUN|PAUSE|CONT|NAME)\b`)
	// --- PASS: TestX (0.00s), indented for subtests
	resultLine = regexp.MustCompile(`^\s*--- (PASS|FAIL|SKIP): `)
	// t.Log / t.Error output: "    user_test.go:12: message"
	messageLine = regexp.MustCompile(`^\s+[\w.\-/]+\.go:\d+: ?(.*)$`)
	panicLine   = regexp.MustCompile(`^panic: `)
)

// messageIndent prefixes the continuation lines of a multi-line message
const messageIndent = "        "

// GoTestParser parses the output go test prints for a single test
type GoTestParser struct{}

// NewGoTestParser creates a new GoTestParser
func NewGoTestParser() *GoTestParser {
	return &GoTestParser{}
}

// ParseResult maps a test2json terminal action and the lines the test
// printed to a status, captured output and detail. A failed test that
// panicked becomes ERROR with the panic trace as detail. A failed test
// keeps its "--- FAIL" lines and log messages as detail. A skipped test
// uses its last log message as the reason.
func (p *GoTestParser) ParseResult(action string, lines []string) Parsed {
	var body []bodyLine
	var trace []string
	lastMessage, lastStart := "", -1
	inMessage := false

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")

		switch {
		case trace != nil:
			// everything after a panic belongs to the trace
			trace = append(trace, line)
		case action == ActionFail && panicLine.MatchString(line):
			trace = append(trace, line)
		case frameworkLine.MatchString(line):
			inMessage = false
		case resultLine.MatchString(line):
			inMessage = false
			if strings.Contains(line, "--- FAIL: ") {
				body = append(body, bodyLine{text: line, header: true})
			}
		case messageLine.MatchString(line):
			inMessage = true
			lastMessage = messageLine.FindStringSubmatch(line)[1]
			lastStart = len(body)
			body = append(body, bodyLine{text: line, message: true})
		case inMessage && strings.HasPrefix(line, messageIndent):
			lastMessage += "\n" + strings.TrimPrefix(line, messageIndent)
			body = append(body, bodyLine{text: line, message: true})
		default:
			inMessage = false
			body = append(body, bodyLine{text: line})
		}
	}

	switch {
	case trace != nil:
		return Parsed{
			Status: domain.StatusError,
			Output: joinBody(body, func(l bodyLine) bool { return !l.header }),
			Detail: joinLines(trace),
		}
	case action == ActionFail:
		return Parsed{
			Status: domain.StatusFail,
			Output: joinBody(body, func(l bodyLine) bool { return !l.header && !l.message }),
			Detail: joinBody(body, func(l bodyLine) bool { return l.header || l.message }),
		}
	case action == ActionSkip:
		if lastStart >= 0 {
			// the skip reason is logged last; drop it from the output
			body = append(body[:lastStart:lastStart], trailingOutput(body[lastStart:])...)
		}
		return Parsed{
			Status: domain.StatusSkip,
			Output: joinBody(body, func(l bodyLine) bool { return !l.header }),
			Detail: lastMessage,
		}
	default:
		return Parsed{
			Status: domain.StatusPass,
			Output: joinBody(body, func(l bodyLine) bool { return !l.header }),
		}
	}
}

type bodyLine struct {
	text    string
	message bool
	header  bool
}

// trailingOutput drops the leading message lines of tail
func trailingOutput(tail []bodyLine) []bodyLine {
	i := 0
	for i < len(tail) && tail[i].message {
		i++
	}
	return tail[i:]
}

func joinBody(body []bodyLine, keep func(bodyLine) bool) string {
	var lines []string
	for _, l := range body {
		if keep(l) {
			lines = append(lines, l.text)
		}
	}
	return joinLines(lines)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
