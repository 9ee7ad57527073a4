package lineup

import "strings"

// Outcome describes what a resolved drop did to the map.
type Outcome string

const (
	OutcomeNoOp      Outcome = "noop"
	OutcomePlaced    Outcome = "placed"
	OutcomeMoved     Outcome = "moved"
	OutcomeSwapped   Outcome = "swapped"
	OutcomeDisplaced Outcome = "displaced"
)

// Drop is one placement gesture. FromSlotID is set when the player is dragged
// out of a slot; otherwise PlayerID names the picked or dragged player.
type Drop struct {
	PlayerID            string
	FromSlotID          string
	ToSlotID            string
	Position            string
	PerformanceCategory PerformanceCategory
}

// Resolve applies drop to current and returns the new map. current is never
// mutated. Invalid or redundant drops return an unchanged copy with OutcomeNoOp.
func Resolve(current Map, drop Drop) (Map, Outcome) {
	toSlotID := strings.TrimSpace(drop.ToSlotID)
	fromSlotID := strings.TrimSpace(drop.FromSlotID)
	if toSlotID == "" || fromSlotID == toSlotID {
		return current.Clone(), OutcomeNoOp
	}

	source, dragging := current[fromSlotID]
	dragging = dragging && fromSlotID != "" && source.PlayerID != ""

	playerID := strings.TrimSpace(drop.PlayerID)
	if dragging {
		playerID = source.PlayerID
	}
	if playerID == "" {
		return current.Clone(), OutcomeNoOp
	}

	occupant, occupied := current[toSlotID]
	if occupied && occupant.PlayerID == playerID {
		return current.Clone(), OutcomeNoOp
	}

	position := strings.TrimSpace(drop.Position)
	if position == "" {
		position = toSlotID
	}

	next := current.Clone()
	outcome := OutcomePlaced
	if dragging {
		delete(next, fromSlotID)
		outcome = OutcomeMoved
	} else if slotID, found := current.SlotOf(playerID, fromSlotID); found {
		delete(next, slotID)
		outcome = OutcomeMoved
	}

	next[toSlotID] = Assignment{
		PlayerID:            playerID,
		Position:            position,
		IsSubstitution:      IsSubstitutionLabel(position),
		PerformanceCategory: drop.PerformanceCategory,
	}

	if !occupied || occupant.PlayerID == "" {
		return next, outcome
	}

	if dragging {
		occupant.Position = source.Position
		occupant.IsSubstitution = source.IsSubstitution
		next[fromSlotID] = occupant
		return next, OutcomeSwapped
	}

	for slotID, a := range next {
		if slotID != toSlotID && a.PlayerID == occupant.PlayerID {
			delete(next, slotID)
		}
	}
	return next, OutcomeDisplaced
}
