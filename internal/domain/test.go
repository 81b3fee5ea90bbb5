package domain

import "strings"

// DefaultMainModule is the module name treated as the program entry module
const DefaultMainModule = "main"

// Class identifies the group a test case was defined in
type Class struct {
	Module string // Package or module the class lives in
	Name   string // Class name
	Doc    string // Optional doc string, may span several lines
}

// Key returns the identity used for grouping
func (c Class) Key() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Module + "." + c.Name
}

// QualifiedName returns the display name, omitting the module prefix when
// the class belongs to the entry module
func (c Class) QualifiedName(mainModule string) string {
	if c.Module == "" || c.Module == mainModule {
		return c.Name
	}
	return c.Module + "." + c.Name
}

// DocFirstLine returns the first line of the doc string
func (c Class) DocFirstLine() string {
	return firstLine(c.Doc)
}

// TestCase is the identity of a test as supplied by the host framework
type TestCase interface {
	// ID returns a stable dotted identifier ending in the method name
	ID() string
	// ShortDescription returns the first line of the test's doc, if any
	ShortDescription() string
	// Class returns the containing class
	Class() Class
}

// MethodName returns the method of a Case, or the last dotted component of
// the id for other test cases
func MethodName(tc TestCase) string {
	switch c := tc.(type) {
	case Case:
		return c.Method
	case *Case:
		return c.Method
	}
	id := tc.ID()
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Case is a plain TestCase value, used by hosts that have no richer identity
type Case struct {
	Method string
	Doc    string
	Owner  Class
}

// ID returns <module>.<class>.<method>
func (c Case) ID() string {
	return c.Owner.Key() + "." + c.Method
}

// ShortDescription returns the first line of Doc
func (c Case) ShortDescription() string {
	return firstLine(c.Doc)
}

// Class returns the owning class
func (c Case) Class() Class {
	return c.Owner
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
