package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/report"
)

// Formatter formats and displays terminal output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, parser *discovery.Parser, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    out,
	}
}

// PrintSummary prints the per-group table and, when anything failed, a tree
// of the failed tests
func (f *Formatter) PrintSummary(summary report.Summary, groups []report.GroupReport) {
	fmt.Fprintln(f.out)
	fmt.Fprint(f.out, f.SummaryTable(summary, groups))
	fmt.Fprintln(f.out)

	switch summary.Status {
	case "empty":
		color.New(color.FgYellow).Fprintln(f.out, "No tests were run")
	case "passed":
		color.New(color.FgGreen).Fprintln(f.out, "✓ All tests passed!")
	default:
		color.New(color.FgRed).Fprintf(f.out, "✗ %d test(s) failed, %d error(s)\n", summary.Fail, summary.Error)
		fmt.Fprintln(f.out)
		f.printFailedTestsTree(Failures(groups))
	}
}

// SummaryTable renders the per-group table
func (f *Formatter) SummaryTable(summary report.Summary, groups []report.GroupReport) string {
	t := table.NewWriter()
	t.SetTitle(f.config.Title)

	t.AppendHeader(table.Row{
		"ID", "Group", "Duration", "Tests", "Pass", "Fail", "Error", "Skip",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Group", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Pass", Align: text.AlignRight},
		{Name: "Fail", Align: text.AlignRight},
		{Name: "Error", Align: text.AlignRight},
		{Name: "Skip", Align: text.AlignRight},
	})

	for _, g := range groups {
		var seconds float64
		for _, c := range g.Cases {
			seconds += c.Duration
		}
		t.AppendRow(table.Row{
			g.ID, g.Desc, fmt.Sprintf("%.2fs", seconds), g.Total(), g.Pass, g.Fail, g.Error, g.Skip,
		})
	}

	// Table style follows the overall result
	switch {
	case summary.Fail > 0 || summary.Error > 0:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case summary.Skip > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("pass rate %.1f%%", summary.PassRate),
		fmt.Sprintf("%.2fs", summary.Duration.Seconds()),
		summary.Total,
		summary.Pass,
		summary.Fail,
		summary.Error,
		summary.Skip,
	})

	return t.Render() + "\n"
}

// TreeNode represents a node in the failure tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []Failure
	IsGroup  bool
}

// printFailedTestsTree prints failed tests under their group, with group
// names split on "/" so packages nest by path
func (f *Formatter) printFailedTestsTree(failures []Failure) {
	if len(failures) == 0 {
		return
	}

	groupMap := make(map[string][]Failure)
	for _, failure := range failures {
		groupMap[failure.Group] = append(groupMap[failure.Group], failure)
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for group, groupFailures := range groupMap {
		parts := strings.Split(group, "/")
		current := root

		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
				}
			}
			current = current.Children[part]

			if i == len(parts)-1 {
				current.IsGroup = true
				current.Failures = groupFailures
			}
		}
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isRoot bool) {
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		connector := prefix + "├── "
		childPrefix := prefix + "│   "
		if isLastChild {
			connector = prefix + "└── "
			childPrefix = prefix + "    "
		}
		if isRoot {
			connector = ""
			childPrefix = ""
		}

		if child.IsGroup {
			color.New(color.FgYellow).Fprintf(f.out, "%s%s\n", connector, child.Name)
		} else {
			color.New(color.FgCyan).Fprintf(f.out, "%s%s\n", connector, child.Name)
		}

		// Failed tests of the group come before nested groups
		for j, failure := range child.Failures {
			caseConnector := childPrefix + "├── "
			if j == len(child.Failures)-1 && len(child.Children) == 0 {
				caseConnector = childPrefix + "└── "
			}
			color.New(color.FgRed).Fprintf(f.out, "%s%s %s\n", caseConnector, failure.Case.ID, failure.Case.Desc)
		}

		f.printTreeNode(child, childPrefix, false)
	}
}

// PrintPackageList prints the packages that contain tests, optionally with
// their test functions
func (f *Formatter) PrintPackageList(packages []string, showTestCases bool) error {
	if !showTestCases {
		color.New(color.FgGreen).Fprintf(f.out, "Found %d package(s) with tests:\n\n", len(packages))
		for i, pkg := range packages {
			if i == len(packages)-1 {
				color.New(color.FgCyan).Fprintf(f.out, "└── %s\n", pkg)
			} else {
				color.New(color.FgCyan).Fprintf(f.out, "├── %s\n", pkg)
			}
		}
		return nil
	}

	color.New(color.FgGreen).Fprintf(f.out, "Found %d package(s) with test cases:\n\n", len(packages))
	for i, pkg := range packages {
		testCases, err := f.parser.FindPackageTestCases(filepath.Join(f.config.GetTestPath(), pkg))
		if err != nil {
			color.New(color.FgRed).Fprintf(f.out, "Error reading package %s: %v\n", pkg, err)
			continue
		}

		isLastPkg := i == len(packages)-1
		branch, indent := "├── ", "│   "
		if isLastPkg {
			branch, indent = "└── ", "    "
		}
		color.New(color.FgCyan).Fprintf(f.out, "%s%s\n", branch, pkg)

		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no test cases found)"))
		}
		for j, testCase := range testCases {
			leaf := "├── "
			if j == len(testCases)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, leaf, color.YellowString(testCase))
		}

		// Spacing between packages
		if !isLastPkg {
			fmt.Fprintln(f.out)
		}
	}
	return nil
}

// CountTestCases returns the number of test functions across packages
func (f *Formatter) CountTestCases(packages []string) (int, error) {
	var total int
	for _, pkg := range packages {
		cases, err := f.parser.FindPackageTestCases(filepath.Join(f.config.GetTestPath(), pkg))
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}
