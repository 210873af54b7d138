package roster

import (
	"fmt"
	"time"

	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// ConflictType classifies assignment conflicts detected at
// shift-assignment time.
type ConflictType string

const (
	ConflictInsufficientRest ConflictType = "insufficient_rest"
	ConflictOverlap          ConflictType = "overlap"
	ConflictForbiddenPair    ConflictType = "forbidden_together"
	ConflictUnavailable      ConflictType = "unavailable"
)

// Conflict is one detected problem with a candidate assignment. Every
// conflict carries a human-readable reason so the caller can require
// explicit confirmation to override.
type Conflict struct {
	Type     ConflictType
	PersonID string
	ShiftID  string
	Reason   string
}

// AssignmentCheck bundles the context for checking one candidate
// assignment of a person to a shift.
type AssignmentCheck struct {
	Person *model.Person
	Shift  model.Shift

	// OtherShifts is the person's and the target shift's surrounding shift
	// context (the candidate shift itself may be included; it is skipped).
	OtherShifts []model.Shift

	// People resolves assigned person IDs for inter-person checks.
	People map[string]*model.Person

	InterPerson []model.InterPersonConstraint

	// Scheduling carries the organization's scheduling rules; a min-rest
	// rule replaces the built-in default for shifts without their own.
	Scheduling []model.SchedulingConstraint

	// Effective is the person's resolved availability for the shift date.
	Effective *availability.Effective
}

// CheckAssignment runs every conflict check for a candidate assignment
// and returns all detected conflicts. An empty result means the
// assignment is safe without confirmation.
func CheckAssignment(c AssignmentCheck) []Conflict {
	var conflicts []Conflict
	if c.Person == nil {
		return conflicts
	}

	if conflict, ok := checkRest(c); ok {
		conflicts = append(conflicts, conflict)
	}
	conflicts = append(conflicts, checkOverlap(c)...)
	conflicts = append(conflicts, checkForbiddenPairs(c)...)
	if conflict, ok := checkAvailability(c); ok {
		conflicts = append(conflicts, conflict)
	}
	return conflicts
}

// checkRest finds the person's most recently ended shift finishing at or
// before the candidate's start; the required rest is that prior shift's
// configured minimum, or the organization's min-rest rule when the shift
// has none.
func checkRest(c AssignmentCheck) (Conflict, bool) {
	var prior *model.Shift
	for i := range c.OtherShifts {
		s := &c.OtherShifts[i]
		if s.ID == c.Shift.ID || s.Cancelled || !s.IsAssigned(c.Person.ID) {
			continue
		}
		if s.End.After(c.Shift.Start) {
			continue
		}
		if prior == nil || s.End.After(prior.End) {
			prior = s
		}
	}
	if prior == nil {
		return Conflict{}, false
	}

	required := prior.RestRequirement()
	if prior.MinRestHours <= 0 {
		if floor, ok := model.MinRestFloor(c.Scheduling); ok {
			required = floor
		}
	}
	gap := c.Shift.Start.Sub(prior.End)
	if gap >= required {
		return Conflict{}, false
	}
	return Conflict{
		Type:     ConflictInsufficientRest,
		PersonID: c.Person.ID,
		ShiftID:  c.Shift.ID,
		Reason: fmt.Sprintf("only %s rest since previous shift ending %s (requires %s)",
			formatGap(gap), prior.End.Format("15:04"), formatGap(required)),
	}, true
}

func formatGap(d time.Duration) string {
	return d.Round(time.Minute).String()
}

// checkOverlap flags any other non-cancelled shift of the person whose
// interval intersects the candidate's.
func checkOverlap(c AssignmentCheck) []Conflict {
	var conflicts []Conflict
	for i := range c.OtherShifts {
		s := &c.OtherShifts[i]
		if s.ID == c.Shift.ID || s.Cancelled || !s.IsAssigned(c.Person.ID) {
			continue
		}
		if s.Overlaps(c.Shift) {
			conflicts = append(conflicts, Conflict{
				Type:     ConflictOverlap,
				PersonID: c.Person.ID,
				ShiftID:  c.Shift.ID,
				Reason: fmt.Sprintf("overlaps shift %s (%s-%s)",
					s.ID, s.Start.Format("15:04"), s.End.Format("15:04")),
			})
		}
	}
	return conflicts
}

// checkForbiddenPairs flags assignments where the candidate matches one
// side of a forbidden-together constraint and someone already on the
// shift matches the other side.
func checkForbiddenPairs(c AssignmentCheck) []Conflict {
	var conflicts []Conflict
	for _, constraint := range c.InterPerson {
		if constraint.Kind != model.InterPersonConstraintForbidden {
			continue
		}
		side := constraint.Matches(c.Person)
		if side == 0 {
			continue
		}
		for _, id := range c.Shift.AssignedPersonIDs {
			other, ok := c.People[id]
			if !ok || other.ID == c.Person.ID {
				continue
			}
			otherSide := constraint.Matches(other)
			if otherSide == 0 || otherSide == side {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Type:     ConflictForbiddenPair,
				PersonID: c.Person.ID,
				ShiftID:  c.Shift.ID,
				Reason: fmt.Sprintf("cannot serve with %s %s (%s=%s conflicts with %s=%s)",
					other.FirstName, other.LastName,
					constraint.FieldA, constraint.ValueA, constraint.FieldB, constraint.ValueB),
			})
		}
	}
	return conflicts
}

// checkAvailability uses the resolved availability for the shift date: a
// person at home, arriving after the shift starts, leaving before it
// ends, or blocked during any part of it cannot be silently assigned.
func checkAvailability(c AssignmentCheck) (Conflict, bool) {
	if c.Effective == nil {
		return Conflict{}, false
	}
	ok, reason := c.Effective.ForWindow(
		c.Shift.Start.Format("15:04"),
		c.Shift.End.Format("15:04"),
	)
	if ok {
		return Conflict{}, false
	}
	return Conflict{
		Type:     ConflictUnavailable,
		PersonID: c.Person.ID,
		ShiftID:  c.Shift.ID,
		Reason:   reason,
	}, true
}
