// Package report turns the flat outcome list of a run into per-class
// records ready for rendering.
package report

import "htmlreporter/internal/domain"

// Group holds the outcomes of one class in the order they completed
type Group struct {
	Class    domain.Class
	Outcomes []domain.TestOutcome
}

// GroupByClass partitions outcomes by class, keeping classes in the order
// they were first seen and outcomes in completion order within a class.
func GroupByClass(outcomes []domain.TestOutcome) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, o := range outcomes {
		class := o.Test.Class()
		key := class.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Class: class})
		}
		groups[i].Outcomes = append(groups[i].Outcomes, o)
	}
	return groups
}
