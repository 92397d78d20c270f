package exsplit

import (
	"slices"

	"gitlab.com/tozd/go/errors"
)

// ConditionList is the ordered set of conditions a user builds up before a
// run. Order determines partition order.
type ConditionList struct {
	items []Condition
}

// Add validates c and appends it. An invalid condition leaves the list unchanged.
func (l *ConditionList) Add(c Condition) error {
	if err := c.Validate(); err != nil {
		return err
	}
	l.items = append(l.items, c)
	return nil
}

// Delete removes the conditions at the given positions. Duplicate indices
// are ignored; an out-of-range index fails without removing anything.
func (l *ConditionList) Delete(indices ...int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= len(l.items) {
			return errors.Errorf("condition index %d out of range [0,%d)", idx, len(l.items))
		}
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for i := len(sorted) - 1; i >= 0; i-- {
		l.items = slices.Delete(l.items, sorted[i], sorted[i]+1)
	}
	return nil
}

// Clear removes every condition.
func (l *ConditionList) Clear() {
	l.items = nil
}

// Len returns the number of conditions.
func (l *ConditionList) Len() int {
	return len(l.items)
}

// Snapshot returns a copy of the conditions, frozen for a run.
func (l *ConditionList) Snapshot() []Condition {
	return slices.Clone(l.items)
}
