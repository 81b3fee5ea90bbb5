package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// testFuncPattern matches top-level test functions:
//
//	func TestCreateUser(t *testing.T)
//	func Test_userLogin(t *testing.T)
var testFuncPattern = regexp.MustCompile(`(?m)^func\s+(Test[A-Z_0-9]\w*|Test)\s*\(\s*\w+\s+\*testing\.T\s*\)`)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases returns the sorted names of the test functions declared in
// a Go test file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	var testCases []string
	for _, match := range testFuncPattern.FindAllStringSubmatch(string(content), -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			testCases = append(testCases, match[1])
		}
	}

	// Sort for consistent output
	sort.Strings(testCases)
	return testCases, nil
}

// FindPackageTestCases returns the test functions of every _test.go file in
// dir, sorted
func (p *Parser) FindPackageTestCases(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_test.go"))
	if err != nil {
		return nil, fmt.Errorf("failed to search for test files: %w", err)
	}

	var all []string
	for _, file := range files {
		cases, err := p.FindTestCases(file)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	sort.Strings(all)
	return all, nil
}
