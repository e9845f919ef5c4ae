// Package selection tracks which fields are toggled for plotting, in the
// order they were toggled.
package selection

import "fmt"

// UnknownFieldError is returned when a toggle names a field outside the set
// fixed at load time.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// InsufficientError is returned by Pair when fewer than two fields are selected.
type InsufficientError struct {
	Selected int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("not enough fields were selected (%d); please select at least 2", e.Selected)
}

// Pair is the (x, y) field pair used for a scatter plot.
type Pair struct {
	X, Y string
}

// State is the ordered selection over a fixed set of fields.
type State struct {
	fields []string
	active map[string]bool
	order  []string
}

// New returns an empty selection over fields.
func New(fields []string) *State {
	s := &State{
		fields: append([]string(nil), fields...),
		active: make(map[string]bool, len(fields)),
	}
	for _, f := range fields {
		s.active[f] = false
	}
	return s
}

// Toggle flips field and reports whether it is now selected. Selecting
// appends to the order, deselecting removes it.
func (s *State) Toggle(field string) (bool, error) {
	on, ok := s.active[field]
	if !ok {
		return false, &UnknownFieldError{Field: field}
	}
	on = !on
	s.active[field] = on
	if on {
		s.order = append(s.order, field)
		return true, nil
	}
	for i, f := range s.order {
		if f == field {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return false, nil
}

// Count returns the number of selected fields.
func (s *State) Count() int {
	return len(s.order)
}

// Selected returns the selected fields in toggle order.
func (s *State) Selected() []string {
	return append([]string(nil), s.order...)
}

// IsSelected reports whether field is currently selected.
func (s *State) IsSelected(field string) bool {
	return s.active[field]
}

// Fields returns the selectable fields in their original order.
func (s *State) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Pair returns the first two selected fields as (x, y). Any further
// selections are returned as ignored.
func (s *State) Pair() (Pair, []string, error) {
	if len(s.order) < 2 {
		return Pair{}, nil, &InsufficientError{Selected: len(s.order)}
	}
	var ignored []string
	if len(s.order) > 2 {
		ignored = append(ignored, s.order[2:]...)
	}
	return Pair{X: s.order[0], Y: s.order[1]}, ignored, nil
}
