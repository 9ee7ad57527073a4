package lineup

import (
	"sort"
	"strconv"
	"strings"
)

// PerformanceCategory tags a team/period; assignments made in that period inherit it.
type PerformanceCategory string

const (
	CategoryNone         PerformanceCategory = ""
	CategoryElite        PerformanceCategory = "elite"
	CategoryAdvanced     PerformanceCategory = "advanced"
	CategoryIntermediate PerformanceCategory = "intermediate"
	CategoryDevelopment  PerformanceCategory = "development"
)

var AllCategories = map[PerformanceCategory]struct{}{
	CategoryElite:        {},
	CategoryAdvanced:     {},
	CategoryIntermediate: {},
	CategoryDevelopment:  {},
}

func ParseCategory(raw string) (PerformanceCategory, bool) {
	value := PerformanceCategory(strings.ToLower(strings.TrimSpace(raw)))
	if value == CategoryNone {
		return CategoryNone, true
	}
	_, ok := AllCategories[value]
	return value, ok
}

const benchSlotPrefix = "sub-"

// Assignment binds one player to one slot.
type Assignment struct {
	PlayerID            string
	Position            string
	IsSubstitution      bool
	PerformanceCategory PerformanceCategory
}

// Map is the selection map of one team-period scope, keyed by slot id.
type Map map[string]Assignment

// IsSubstitutionLabel reports whether a position label names a bench slot.
// The flag is derived from the label, so relabeling a slot changes it.
func IsSubstitutionLabel(label string) bool {
	return strings.Contains(strings.ToUpper(label), "SUB")
}

// BenchSlotID returns the slot id of the n-th bench position.
func BenchSlotID(n int) string {
	return benchSlotPrefix + strconv.Itoa(n)
}

func (m Map) Clone() Map {
	out := make(Map, len(m))
	for slotID, a := range m {
		out[slotID] = a
	}
	return out
}

// Equal reports whether both maps hold the same assignments.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for slotID, a := range m {
		b, ok := other[slotID]
		if !ok || a != b {
			return false
		}
	}
	return true
}

// SlotIDs returns the occupied slot ids in ascending order.
func (m Map) SlotIDs() []string {
	out := make([]string, 0, len(m))
	for slotID := range m {
		out = append(out, slotID)
	}
	sort.Strings(out)
	return out
}

// SlotOf returns the slot holding playerID, skipping the excluded slot.
func (m Map) SlotOf(playerID, exclude string) (string, bool) {
	if playerID == "" {
		return "", false
	}
	for _, slotID := range m.SlotIDs() {
		if slotID == exclude {
			continue
		}
		if m[slotID].PlayerID == playerID {
			return slotID, true
		}
	}
	return "", false
}

// PlayerIDs returns the set of players present in the map.
func (m Map) PlayerIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for _, a := range m {
		if a.PlayerID != "" {
			out[a.PlayerID] = struct{}{}
		}
	}
	return out
}

// Normalize drops empty slots and resolves duplicate players by keeping the
// lowest slot id, so the result always satisfies the one-slot-per-player rule.
// Slot ids are trimmed; when two raw ids trim to the same slot the lowest raw
// id wins.
func (m Map) Normalize() Map {
	out := make(Map, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, slotID := range m.SlotIDs() {
		a := m[slotID]
		slotID = strings.TrimSpace(slotID)
		a.PlayerID = strings.TrimSpace(a.PlayerID)
		if slotID == "" || a.PlayerID == "" {
			continue
		}
		if _, taken := out[slotID]; taken {
			continue
		}
		if _, dup := seen[a.PlayerID]; dup {
			continue
		}
		seen[a.PlayerID] = struct{}{}
		if a.Position == "" {
			a.Position = slotID
		}
		out[slotID] = a
	}
	return out
}
