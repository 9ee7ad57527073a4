package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	playersByClub map[string][]player.Player
}

// NewPlayerRepository keeps players in the order given, which is the roster order.
func NewPlayerRepository(players []player.Player) *PlayerRepository {
	playersByClub := make(map[string][]player.Player)
	for _, p := range players {
		playersByClub[p.ClubID] = append(playersByClub[p.ClubID], clonePlayer(p))
	}

	return &PlayerRepository{playersByClub: playersByClub}
}

func (r *PlayerRepository) ListByClub(_ context.Context, clubID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByClub[clubID]
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		out = append(out, clonePlayer(p))
	}

	return out, nil
}

func clonePlayer(p player.Player) player.Player {
	if p.SquadNumber != nil {
		number := *p.SquadNumber
		p.SquadNumber = &number
	}
	return p
}
