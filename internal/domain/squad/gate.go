package squad

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/player"
)

// Mode is the active editing mode of a fixture board.
type Mode string

const (
	ModePickingSquad       Mode = "picking_squad"
	ModeAssigningPositions Mode = "assigning_positions"
)

var (
	ErrEmptySquad  = errors.New("squad must contain at least one player")
	ErrUnknownMode = errors.New("unknown squad mode")
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModePickingSquad:
		return ModePickingSquad, nil
	case ModeAssigningPositions:
		return ModeAssigningPositions, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Gate tracks which roster players are eligible for assignment in a fixture.
// It does not own assignments: removing a member leaves any slot they hold alone.
type Gate struct {
	members map[string]struct{}
	mode    Mode
}

func NewGate(members []string, mode Mode) *Gate {
	g := &Gate{members: make(map[string]struct{}, len(members)), mode: mode}
	for _, id := range members {
		g.Add(id)
	}
	if g.mode == "" {
		g.mode = ModePickingSquad
	}
	return g
}

// Add reports whether the player was newly added.
func (g *Gate) Add(playerID string) bool {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return false
	}
	if _, ok := g.members[playerID]; ok {
		return false
	}
	g.members[playerID] = struct{}{}
	return true
}

// Remove reports whether the player was a member.
func (g *Gate) Remove(playerID string) bool {
	if _, ok := g.members[playerID]; !ok {
		return false
	}
	delete(g.members, playerID)
	return true
}

func (g *Gate) Contains(playerID string) bool {
	_, ok := g.members[playerID]
	return ok
}

func (g *Gate) Len() int {
	return len(g.members)
}

func (g *Gate) Members() []string {
	out := make([]string, 0, len(g.members))
	for id := range g.members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (g *Gate) Mode() Mode {
	return g.mode
}

// SetMode switches modes. Leaving squad picking needs a non-empty squad.
func (g *Gate) SetMode(mode Mode) error {
	if mode != ModePickingSquad && mode != ModeAssigningPositions {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if g.mode == ModePickingSquad && mode != ModePickingSquad && len(g.members) == 0 {
		return ErrEmptySquad
	}
	g.mode = mode
	return nil
}

// Available returns squad members, in roster order, that hold no slot in any of maps.
func (g *Gate) Available(roster []player.Player, maps ...lineup.Map) []player.Player {
	assigned := make(map[string]struct{})
	for _, m := range maps {
		for id := range m.PlayerIDs() {
			assigned[id] = struct{}{}
		}
	}

	out := make([]player.Player, 0, len(g.members))
	for _, p := range roster {
		if !g.Contains(p.ID) {
			continue
		}
		if _, taken := assigned[p.ID]; taken {
			continue
		}
		out = append(out, p)
	}
	return out
}
